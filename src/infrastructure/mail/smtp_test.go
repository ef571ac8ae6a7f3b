package mail

import (
	"testing"
	"time"

	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func TestNewSMTPSender(t *testing.T) {
	sender := NewSMTPSender(setupLogger(t))

	assert.NotNil(t, sender)
	assert.Equal(t, 10*time.Second, sender.Timeout)
}

func TestSMTPSender_Send_UnreachableHostIsTransportError(t *testing.T) {
	sender := NewSMTPSender(setupLogger(t))
	sender.Timeout = 200 * time.Millisecond

	err := sender.Send(&SendCommand{
		Host:     "127.0.0.1",
		Port:     1, // nothing listens here
		Username: "mailer@example.com",
		Password: "secret",
		To:       "alice@example.com",
		Subject:  "Verify your account",
		Body:     "Code: 582341",
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrRecipientRejected)
	// The error text must not leak the password.
	assert.NotContains(t, err.Error(), "secret")
}
