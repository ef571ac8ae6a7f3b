package message

import (
	"errors"
	"time"

	domainErrors "notification-dispatch-api/src/domain/errors"
	domainMessage "notification-dispatch-api/src/domain/message"
	domainTemplate "notification-dispatch-api/src/domain/template"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Message is the database model for outbound messages. Recipients are owned
// by the message and removed with it.
type Message struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Subject     string      `gorm:"column:subject"`
	Body        string      `gorm:"column:body;type:text"`
	TemplateID  *uuid.UUID  `gorm:"column:template_id;type:uuid;index"`
	Payload     string      `gorm:"column:payload;type:text"`
	Status      string      `gorm:"column:status;index"`
	ScheduledAt *time.Time  `gorm:"column:scheduled_at"`
	CreatedAt   time.Time   `gorm:"autoCreateTime:mili"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime:mili"`
	Recipients  []Recipient `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		m.ID = id
	}
	return nil
}

// Recipient is the database model for message addressees.
type Recipient struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MessageID  uuid.UUID  `gorm:"column:message_id;type:uuid;index"`
	UserID     *uuid.UUID `gorm:"column:user_id;type:uuid"`
	Channel    string     `gorm:"column:channel"`
	Address    string     `gorm:"column:address"`
	Locale     string     `gorm:"column:locale"`
	Timezone   string     `gorm:"column:timezone"`
	CreatedAt  time.Time  `gorm:"autoCreateTime:mili"`
	Deliveries []Delivery `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
}

func (Recipient) TableName() string {
	return "recipients"
}

func (r *Recipient) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		r.ID = id
	}
	return nil
}

// Delivery is the database model for delivery attempts.
type Delivery struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID       uuid.UUID  `gorm:"column:recipient_id;type:uuid;index"`
	Attempt           int        `gorm:"column:attempt;default:1"`
	Provider          string     `gorm:"column:provider"`
	Status            string     `gorm:"column:status;index"`
	ProviderMessageID string     `gorm:"column:provider_message_id"`
	ErrorCode         string     `gorm:"column:error_code"`
	ErrorMessage      string     `gorm:"column:error_message;type:text"`
	QueuedAt          time.Time  `gorm:"column:queued_at"`
	SentAt            *time.Time `gorm:"column:sent_at"`
	FinalizedAt       *time.Time `gorm:"column:finalized_at"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		d.ID = id
	}
	return nil
}

// MessageRepositoryInterface defines the interface for message repository operations
type MessageRepositoryInterface interface {
	GetAll(query *domainMessage.MessageQuery) (*[]domainMessage.Message, error)
	Create(messageDomain *domainMessage.Message) (*domainMessage.Message, error)
	GetByID(id uuid.UUID) (*domainMessage.Message, error)
	UpdateStatus(id uuid.UUID, status domainMessage.MessageStatus) (*domainMessage.Message, error)
	Delete(id uuid.UUID) error
}

type MessageRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewMessageRepository(db *gorm.DB, loggerInstance *logger.Logger) MessageRepositoryInterface {
	return &MessageRepository{DB: db, Logger: loggerInstance}
}

func (r *MessageRepository) GetAll(query *domainMessage.MessageQuery) (*[]domainMessage.Message, error) {
	var messages []Message
	tx := r.DB.Model(&Message{}).Preload("Recipients").Preload("Recipients.Deliveries")
	if query != nil {
		if query.ID != nil {
			tx = tx.Where("id = ?", *query.ID)
		}
		if query.Status != "" {
			tx = tx.Where("status = ?", string(query.Status))
		}
	}
	if err := tx.Order("created_at DESC").Find(&messages).Error; err != nil {
		r.Logger.Error("Error getting messages", zap.Error(err))
		return nil, translateError(err)
	}
	return messageArrayToDomainMapper(&messages), nil
}

// Create inserts the message together with its recipients in one transaction
// so a crash mid-sequence never leaves a message without its recipients.
func (r *MessageRepository) Create(messageDomain *domainMessage.Message) (*domainMessage.Message, error) {
	messageRepository := messageFromDomainMapper(messageDomain)
	if messageRepository.Status == "" {
		messageRepository.Status = string(domainMessage.StatusPending)
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(messageRepository).Error
	})
	if err != nil {
		r.Logger.Error("Error creating message", zap.Error(err))
		return &domainMessage.Message{}, translateError(err)
	}
	r.Logger.Info("Successfully created message",
		zap.String("id", messageRepository.ID.String()),
		zap.Int("recipients", len(messageRepository.Recipients)))
	return messageRepository.toDomainMapper(), nil
}

func (r *MessageRepository) GetByID(id uuid.UUID) (*domainMessage.Message, error) {
	var messageObj Message
	err := r.DB.Preload("Recipients").Preload("Recipients.Deliveries").
		Where("id = ?", id).
		First(&messageObj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.Logger.Warn("Message not found", zap.String("id", id.String()))
			return &domainMessage.Message{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		}
		r.Logger.Error("Error getting message by ID", zap.Error(err), zap.String("id", id.String()))
		return &domainMessage.Message{}, translateError(err)
	}
	return messageObj.toDomainMapper(), nil
}

func (r *MessageRepository) UpdateStatus(id uuid.UUID, status domainMessage.MessageStatus) (*domainMessage.Message, error) {
	tx := r.DB.Model(&Message{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		r.Logger.Error("Error updating message status", zap.Error(tx.Error), zap.String("id", id.String()))
		return &domainMessage.Message{}, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Message not found for status update", zap.String("id", id.String()))
		return &domainMessage.Message{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return r.GetByID(id)
}

func (r *MessageRepository) Delete(id uuid.UUID) error {
	tx := r.DB.Delete(&Message{}, "id = ?", id)
	if tx.Error != nil {
		r.Logger.Error("Error deleting message", zap.Error(tx.Error), zap.String("id", id.String()))
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Message not found for deletion", zap.String("id", id.String()))
		return domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	r.Logger.Info("Successfully deleted message", zap.String("id", id.String()))
	return nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domainErrors.NewAppErrorWithType(domainErrors.ResourceAlreadyExists)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return domainErrors.NewAppError(err, domainErrors.RepositoryError)
}

// Mappers
func (m *Message) toDomainMapper() *domainMessage.Message {
	recipients := make([]domainMessage.Recipient, len(m.Recipients))
	for i, recipientObj := range m.Recipients {
		recipients[i] = *recipientObj.toDomainMapper()
	}
	return &domainMessage.Message{
		ID:          m.ID,
		Subject:     m.Subject,
		Body:        m.Body,
		TemplateID:  m.TemplateID,
		Payload:     m.Payload,
		Status:      domainMessage.MessageStatus(m.Status),
		ScheduledAt: m.ScheduledAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Recipients:  recipients,
	}
}

func messageFromDomainMapper(m *domainMessage.Message) *Message {
	recipients := make([]Recipient, len(m.Recipients))
	for i, recipientObj := range m.Recipients {
		recipients[i] = *recipientFromDomainMapper(&recipientObj)
	}
	return &Message{
		ID:          m.ID,
		Subject:     m.Subject,
		Body:        m.Body,
		TemplateID:  m.TemplateID,
		Payload:     m.Payload,
		Status:      string(m.Status),
		ScheduledAt: m.ScheduledAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Recipients:  recipients,
	}
}

func (rec *Recipient) toDomainMapper() *domainMessage.Recipient {
	deliveries := make([]domainMessage.Delivery, len(rec.Deliveries))
	for i, deliveryObj := range rec.Deliveries {
		deliveries[i] = *deliveryObj.toDomainMapper()
	}
	return &domainMessage.Recipient{
		ID:         rec.ID,
		MessageID:  rec.MessageID,
		UserID:     rec.UserID,
		Channel:    domainTemplate.Channel(rec.Channel),
		Address:    rec.Address,
		Locale:     rec.Locale,
		Timezone:   rec.Timezone,
		CreatedAt:  rec.CreatedAt,
		Deliveries: deliveries,
	}
}

func recipientFromDomainMapper(rec *domainMessage.Recipient) *Recipient {
	return &Recipient{
		ID:        rec.ID,
		MessageID: rec.MessageID,
		UserID:    rec.UserID,
		Channel:   string(rec.Channel),
		Address:   rec.Address,
		Locale:    rec.Locale,
		Timezone:  rec.Timezone,
		CreatedAt: rec.CreatedAt,
	}
}

func messageArrayToDomainMapper(messages *[]Message) *[]domainMessage.Message {
	messagesDomain := make([]domainMessage.Message, len(*messages))
	for i, messageObj := range *messages {
		messagesDomain[i] = *messageObj.toDomainMapper()
	}
	return &messagesDomain
}
