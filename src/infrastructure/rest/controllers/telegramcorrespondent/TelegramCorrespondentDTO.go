package telegramcorrespondent

import (
	"time"

	domainCorrespondent "notification-dispatch-api/src/domain/correspondent"
)

type NewTelegramCorrespondentRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	BotToken string `json:"botToken" binding:"required"`
}

type UpdateTelegramCorrespondentRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	BotToken *string `json:"botToken,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// TelegramCorrespondentResponse never carries the bot token.
type TelegramCorrespondentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(correspondent *domainCorrespondent.TelegramCorrespondent) *TelegramCorrespondentResponse {
	return &TelegramCorrespondentResponse{
		ID:        correspondent.ID.String(),
		Name:      correspondent.Name,
		IsActive:  correspondent.IsActive,
		CreatedAt: correspondent.CreatedAt,
		UpdatedAt: correspondent.UpdatedAt,
	}
}

func toResponseArray(correspondents *[]domainCorrespondent.TelegramCorrespondent) []TelegramCorrespondentResponse {
	response := make([]TelegramCorrespondentResponse, len(*correspondents))
	for i, correspondent := range *correspondents {
		response[i] = *toResponse(&correspondent)
	}
	return response
}

func (r *UpdateTelegramCorrespondentRequest) toPatchMap() map[string]interface{} {
	patch := make(map[string]interface{})
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.BotToken != nil {
		patch["botToken"] = *r.BotToken
	}
	if r.IsActive != nil {
		patch["isActive"] = *r.IsActive
	}
	return patch
}
