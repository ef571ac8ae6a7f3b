package template

import (
	"time"

	"github.com/gofrs/uuid"
)

// Channel is the delivery channel a template is written for.
type Channel string

const (
	ChannelEmail    Channel = "EMAIL"
	ChannelTelegram Channel = "TELEGRAM"
)

// TextTemplate is reusable message content with {{var}} placeholders,
// keyed by code and channel.
type TextTemplate struct {
	ID        uuid.UUID
	Code      string
	Subject   string
	Content   string
	Variables string // JSON descriptor of placeholder names and types, informational
	Channel   Channel
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TextTemplateQuery filters reads. Code is a case-insensitive substring match.
type TextTemplateQuery struct {
	ID       *uuid.UUID
	Code     string
	Channel  Channel
	IsActive *bool
}

// ITextTemplateService defines the interface for text template operations
type ITextTemplateService interface {
	GetAll(query *TextTemplateQuery) (*[]TextTemplate, error)
	Create(template *TextTemplate) (*TextTemplate, error)
	GetByCode(code string, channel Channel) (*TextTemplate, error)
	Update(id uuid.UUID, templateMap map[string]interface{}) (*TextTemplate, error)
	Delete(id uuid.UUID) (*TextTemplate, error)
	Render(content string, vars map[string]string) string
}
