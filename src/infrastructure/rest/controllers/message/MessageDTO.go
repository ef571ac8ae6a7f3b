package message

import (
	"time"

	domainMessage "notification-dispatch-api/src/domain/message"
	domainTemplate "notification-dispatch-api/src/domain/template"

	"github.com/gofrs/uuid"
)

type NewRecipientRequest struct {
	UserID   string `json:"userId,omitempty" binding:"omitempty,uuid"`
	Channel  string `json:"channel" binding:"required,oneof=EMAIL TELEGRAM"`
	Address  string `json:"address" binding:"required"`
	Locale   string `json:"locale,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type NewMessageRequest struct {
	Subject     string                `json:"subject,omitempty"`
	Body        string                `json:"body,omitempty"`
	TemplateID  string                `json:"templateId,omitempty" binding:"omitempty,uuid"`
	Payload     string                `json:"payload,omitempty"`
	ScheduledAt *time.Time            `json:"scheduledAt,omitempty"`
	Recipients  []NewRecipientRequest `json:"recipients" binding:"required,min=1,dive"`
}

type DeliveryResponse struct {
	ID                string     `json:"id"`
	Attempt           int        `json:"attempt"`
	Provider          string     `json:"provider"`
	Status            string     `json:"status"`
	ProviderMessageID string     `json:"providerMessageId,omitempty"`
	ErrorCode         string     `json:"errorCode,omitempty"`
	ErrorMessage      string     `json:"errorMessage,omitempty"`
	QueuedAt          time.Time  `json:"queuedAt"`
	SentAt            *time.Time `json:"sentAt,omitempty"`
	FinalizedAt       *time.Time `json:"finalizedAt,omitempty"`
}

type RecipientResponse struct {
	ID         string             `json:"id"`
	Channel    string             `json:"channel"`
	Address    string             `json:"address"`
	Locale     string             `json:"locale,omitempty"`
	Timezone   string             `json:"timezone,omitempty"`
	Deliveries []DeliveryResponse `json:"deliveries"`
}

type MessageResponse struct {
	ID          string              `json:"id"`
	Subject     string              `json:"subject,omitempty"`
	Body        string              `json:"body,omitempty"`
	TemplateID  string              `json:"templateId,omitempty"`
	Status      string              `json:"status"`
	ScheduledAt *time.Time          `json:"scheduledAt,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Recipients  []RecipientResponse `json:"recipients"`
}

func (r *NewMessageRequest) toDomain() (*domainMessage.Message, error) {
	msg := &domainMessage.Message{
		Subject:     r.Subject,
		Body:        r.Body,
		Payload:     r.Payload,
		ScheduledAt: r.ScheduledAt,
	}
	if r.TemplateID != "" {
		templateID, err := uuid.FromString(r.TemplateID)
		if err != nil {
			return nil, err
		}
		msg.TemplateID = &templateID
	}
	msg.Recipients = make([]domainMessage.Recipient, len(r.Recipients))
	for i, recipient := range r.Recipients {
		msg.Recipients[i] = domainMessage.Recipient{
			Channel:  domainTemplate.Channel(recipient.Channel),
			Address:  recipient.Address,
			Locale:   recipient.Locale,
			Timezone: recipient.Timezone,
		}
		if recipient.UserID != "" {
			userID, err := uuid.FromString(recipient.UserID)
			if err != nil {
				return nil, err
			}
			msg.Recipients[i].UserID = &userID
		}
	}
	return msg, nil
}

func toResponse(msg *domainMessage.Message) *MessageResponse {
	response := &MessageResponse{
		ID:          msg.ID.String(),
		Subject:     msg.Subject,
		Body:        msg.Body,
		Status:      string(msg.Status),
		ScheduledAt: msg.ScheduledAt,
		CreatedAt:   msg.CreatedAt,
		UpdatedAt:   msg.UpdatedAt,
		Recipients:  make([]RecipientResponse, len(msg.Recipients)),
	}
	if msg.TemplateID != nil {
		response.TemplateID = msg.TemplateID.String()
	}
	for i, recipient := range msg.Recipients {
		recipientResponse := RecipientResponse{
			ID:         recipient.ID.String(),
			Channel:    string(recipient.Channel),
			Address:    recipient.Address,
			Locale:     recipient.Locale,
			Timezone:   recipient.Timezone,
			Deliveries: make([]DeliveryResponse, len(recipient.Deliveries)),
		}
		for j, delivery := range recipient.Deliveries {
			recipientResponse.Deliveries[j] = DeliveryResponse{
				ID:                delivery.ID.String(),
				Attempt:           delivery.Attempt,
				Provider:          delivery.Provider,
				Status:            string(delivery.Status),
				ProviderMessageID: delivery.ProviderMessageID,
				ErrorCode:         delivery.ErrorCode,
				ErrorMessage:      delivery.ErrorMessage,
				QueuedAt:          delivery.QueuedAt,
				SentAt:            delivery.SentAt,
				FinalizedAt:       delivery.FinalizedAt,
			}
		}
		response.Recipients[i] = recipientResponse
	}
	return response
}

func toResponseArray(messages *[]domainMessage.Message) []MessageResponse {
	response := make([]MessageResponse, len(*messages))
	for i, msg := range *messages {
		response[i] = *toResponse(&msg)
	}
	return response
}
