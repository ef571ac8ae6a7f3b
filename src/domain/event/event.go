package event

import "time"

// VerifiedEvent is the queue payload signaling a user action that requires
// an outbound verification message. It is transient: consumed once and not
// retained after processing succeeds. EventID doubles as the idempotency key
// under at-least-once delivery.
type VerifiedEvent struct {
	Event            string    `json:"event" binding:"required"`
	EventID          string    `json:"event_id" binding:"required"`
	OccurredAt       time.Time `json:"occurred_at"`
	VerificationID   string    `json:"verification_id"`
	UserID           string    `json:"user_id"`
	Email            string    `json:"email" binding:"required,email"`
	VerificationCode string    `json:"verification_code" binding:"required"`
}
