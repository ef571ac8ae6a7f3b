package mail

import (
	"errors"
	"fmt"
	"time"

	logger "notification-dispatch-api/src/infrastructure/logger"

	"go.uber.org/zap"
	gomail "gopkg.in/mail.v2"
)

// Sentinels for the two failure classes the orchestrator distinguishes:
// ErrTransport covers connect/TLS/auth failures and is worth retrying,
// ErrRecipientRejected means the server took the session but refused the
// message.
var (
	ErrTransport         = errors.New("smtp transport error")
	ErrRecipientRejected = errors.New("smtp recipient rejected")
)

// SendCommand carries everything one send needs. Credentials come from the
// correspondent resolved per event, not from process configuration.
type SendCommand struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string
	Subject  string
	Body     string
}

// Sender sends exactly one message to exactly one recipient.
type Sender interface {
	Send(cmd *SendCommand) error
}

type SMTPSender struct {
	Timeout time.Duration
	Logger  *logger.Logger
}

func NewSMTPSender(loggerInstance *logger.Logger) *SMTPSender {
	return &SMTPSender{
		Timeout: 10 * time.Second,
		Logger:  loggerInstance,
	}
}

// Send opens an authenticated STARTTLS session and sends the message.
// Host, port, recipient and subject are logged; credentials never are.
func (s *SMTPSender) Send(cmd *SendCommand) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cmd.Username)
	m.SetHeader("To", cmd.To)
	m.SetHeader("Subject", cmd.Subject)
	m.SetBody("text/plain", cmd.Body)

	d := gomail.NewDialer(cmd.Host, cmd.Port, cmd.Username, cmd.Password)
	d.Timeout = s.Timeout
	d.StartTLSPolicy = gomail.MandatoryStartTLS

	sendCloser, err := d.Dial()
	if err != nil {
		s.Logger.Error("SMTP dial failed",
			zap.String("host", cmd.Host),
			zap.Int("port", cmd.Port),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer sendCloser.Close()

	if err := gomail.Send(sendCloser, m); err != nil {
		s.Logger.Error("SMTP send rejected",
			zap.String("host", cmd.Host),
			zap.String("to", cmd.To),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRecipientRejected, err)
	}

	s.Logger.Info("Email sent successfully",
		zap.String("host", cmd.Host),
		zap.String("to", cmd.To))
	return nil
}
