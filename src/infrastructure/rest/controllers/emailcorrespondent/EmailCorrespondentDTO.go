package emailcorrespondent

import (
	"time"

	domainCorrespondent "notification-dispatch-api/src/domain/correspondent"
)

type NewEmailCorrespondentRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Host     string `json:"host" binding:"required"`
	Port     int    `json:"port" binding:"required,gte=1,lte=65535"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateEmailCorrespondentRequest is a partial patch: nil fields stay
// untouched.
type UpdateEmailCorrespondentRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Host     *string `json:"host,omitempty"`
	Port     *int    `json:"port,omitempty" binding:"omitempty,gte=1,lte=65535"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// EmailCorrespondentResponse never carries the SMTP password.
type EmailCorrespondentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(correspondent *domainCorrespondent.EmailCorrespondent) *EmailCorrespondentResponse {
	return &EmailCorrespondentResponse{
		ID:        correspondent.ID.String(),
		Name:      correspondent.Name,
		Host:      correspondent.Host,
		Port:      correspondent.Port,
		Username:  correspondent.Username,
		IsActive:  correspondent.IsActive,
		CreatedAt: correspondent.CreatedAt,
		UpdatedAt: correspondent.UpdatedAt,
	}
}

func toResponseArray(correspondents *[]domainCorrespondent.EmailCorrespondent) []EmailCorrespondentResponse {
	response := make([]EmailCorrespondentResponse, len(*correspondents))
	for i, correspondent := range *correspondents {
		response[i] = *toResponse(&correspondent)
	}
	return response
}

func (r *UpdateEmailCorrespondentRequest) toPatchMap() map[string]interface{} {
	patch := make(map[string]interface{})
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.Host != nil {
		patch["host"] = *r.Host
	}
	if r.Port != nil {
		patch["port"] = *r.Port
	}
	if r.Username != nil {
		patch["username"] = *r.Username
	}
	if r.Password != nil {
		patch["password"] = *r.Password
	}
	if r.IsActive != nil {
		patch["isActive"] = *r.IsActive
	}
	return patch
}
