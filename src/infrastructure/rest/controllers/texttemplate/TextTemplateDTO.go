package texttemplate

import (
	"time"

	domainTemplate "notification-dispatch-api/src/domain/template"
)

type NewTextTemplateRequest struct {
	Code      string `json:"code" binding:"required,min=1,max=200"`
	Channel   string `json:"channel" binding:"required,oneof=EMAIL TELEGRAM"`
	Subject   string `json:"subject"`
	Content   string `json:"content" binding:"required"`
	Variables string `json:"variables"`
}

type UpdateTextTemplateRequest struct {
	Code      *string `json:"code,omitempty" binding:"omitempty,min=1,max=200"`
	Channel   *string `json:"channel,omitempty" binding:"omitempty,oneof=EMAIL TELEGRAM"`
	Subject   *string `json:"subject,omitempty"`
	Content   *string `json:"content,omitempty"`
	Variables *string `json:"variables,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

type TextTemplateResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Channel   string    `json:"channel"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Variables string    `json:"variables,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(template *domainTemplate.TextTemplate) *TextTemplateResponse {
	return &TextTemplateResponse{
		ID:        template.ID.String(),
		Code:      template.Code,
		Channel:   string(template.Channel),
		Subject:   template.Subject,
		Content:   template.Content,
		Variables: template.Variables,
		IsActive:  template.IsActive,
		CreatedAt: template.CreatedAt,
		UpdatedAt: template.UpdatedAt,
	}
}

func toResponseArray(templates *[]domainTemplate.TextTemplate) []TextTemplateResponse {
	response := make([]TextTemplateResponse, len(*templates))
	for i, template := range *templates {
		response[i] = *toResponse(&template)
	}
	return response
}

func (r *UpdateTextTemplateRequest) toPatchMap() map[string]interface{} {
	patch := make(map[string]interface{})
	if r.Code != nil {
		patch["code"] = *r.Code
	}
	if r.Channel != nil {
		patch["channel"] = *r.Channel
	}
	if r.Subject != nil {
		patch["subject"] = *r.Subject
	}
	if r.Content != nil {
		patch["content"] = *r.Content
	}
	if r.Variables != nil {
		patch["variables"] = *r.Variables
	}
	if r.IsActive != nil {
		patch["isActive"] = *r.IsActive
	}
	return patch
}
