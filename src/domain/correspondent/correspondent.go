package correspondent

import (
	"time"

	"github.com/gofrs/uuid"
)

// EmailCorrespondent is a configured SMTP sending identity.
type EmailCorrespondent struct {
	ID        uuid.UUID
	Name      string
	Host      string
	Port      int
	Username  string
	Password  string // SMTP password or app password, never logged
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TelegramCorrespondent is a configured Telegram bot sending identity.
type TelegramCorrespondent struct {
	ID        uuid.UUID
	Name      string
	BotToken  string // never logged
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmailCorrespondentQuery filters reads. Nil pointer fields are ignored;
// Name is a case-insensitive substring match.
type EmailCorrespondentQuery struct {
	ID       *uuid.UUID
	Name     string
	IsActive *bool
}

// TelegramCorrespondentQuery filters reads, same semantics as the email query.
type TelegramCorrespondentQuery struct {
	ID       *uuid.UUID
	Name     string
	IsActive *bool
}

// IEmailCorrespondentService defines the interface for email correspondent operations
type IEmailCorrespondentService interface {
	GetAll(query *EmailCorrespondentQuery) (*[]EmailCorrespondent, error)
	Create(correspondent *EmailCorrespondent) (*EmailCorrespondent, error)
	GetByName(name string) (*EmailCorrespondent, error)
	Update(id uuid.UUID, correspondentMap map[string]interface{}) (*EmailCorrespondent, error)
	Delete(id uuid.UUID) (*EmailCorrespondent, error)
}

// ITelegramCorrespondentService defines the interface for telegram correspondent operations
type ITelegramCorrespondentService interface {
	GetAll(query *TelegramCorrespondentQuery) (*[]TelegramCorrespondent, error)
	Create(correspondent *TelegramCorrespondent) (*TelegramCorrespondent, error)
	Update(id uuid.UUID, correspondentMap map[string]interface{}) (*TelegramCorrespondent, error)
	Delete(id uuid.UUID) (*TelegramCorrespondent, error)
}
