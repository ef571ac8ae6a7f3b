package message

import (
	"time"

	"github.com/gofrs/uuid"

	"notification-dispatch-api/src/domain/template"
)

// MessageStatus is the lifecycle state of an outbound message.
type MessageStatus string

const (
	StatusPending       MessageStatus = "PENDING"
	StatusSending       MessageStatus = "SENDING"
	StatusSent          MessageStatus = "SENT"
	StatusPartialFailed MessageStatus = "PARTIAL_FAILED"
	StatusFailed        MessageStatus = "FAILED"
)

// DeliveryStatus is the provider-reported state of one delivery attempt.
type DeliveryStatus string

const (
	DeliveryQueued    DeliveryStatus = "QUEUED"
	DeliverySent      DeliveryStatus = "SENT"
	DeliveryFailed    DeliveryStatus = "FAILED"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryOpened    DeliveryStatus = "OPENED"
	DeliveryClicked   DeliveryStatus = "CLICKED"
	DeliveryBounced   DeliveryStatus = "BOUNCED"
)

// Message is one outbound message. It carries either inline subject/body
// content or a reference to a template, and fans out to zero or more
// recipients. Recipients are owned by the message and removed with it.
type Message struct {
	ID          uuid.UUID
	Subject     string
	Body        string
	TemplateID  *uuid.UUID
	Payload     string // arbitrary JSON data attached by the producer
	Status      MessageStatus
	ScheduledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Recipients  []Recipient
}

// Recipient is one addressee of one message on one channel.
type Recipient struct {
	ID         uuid.UUID
	MessageID  uuid.UUID
	UserID     *uuid.UUID
	Channel    template.Channel
	Address    string // email address, phone number or chat id
	Locale     string
	Timezone   string
	CreatedAt  time.Time
	Deliveries []Delivery
}

// Delivery is one attempted transmission of a message to one recipient via
// one provider. Attempt starts at 1 and increments on retry.
type Delivery struct {
	ID                uuid.UUID
	RecipientID       uuid.UUID
	Attempt           int
	Provider          string
	Status            DeliveryStatus
	ProviderMessageID string
	ErrorCode         string
	ErrorMessage      string
	QueuedAt          time.Time
	SentAt            *time.Time
	FinalizedAt       *time.Time
}

// MessageQuery filters message reads.
type MessageQuery struct {
	ID     *uuid.UUID
	Status MessageStatus
}

// IMessageService defines the interface for message lifecycle operations
type IMessageService interface {
	GetAll(query *MessageQuery) (*[]Message, error)
	Create(msg *Message) (*Message, error)
	GetByID(id uuid.UUID) (*Message, error)
	UpdateStatus(id uuid.UUID, status MessageStatus) (*Message, error)
	Delete(id uuid.UUID) error
	RecordDelivery(delivery *Delivery) (*Delivery, error)
}
