package sender

import (
	"context"
	"errors"
	"fmt"
	"time"

	templateUseCase "notification-dispatch-api/src/application/usecases/template"
	domainErrors "notification-dispatch-api/src/domain/errors"
	domainEvent "notification-dispatch-api/src/domain/event"
	domainMessage "notification-dispatch-api/src/domain/message"
	domainTemplate "notification-dispatch-api/src/domain/template"
	"notification-dispatch-api/src/infrastructure/cache"
	logger "notification-dispatch-api/src/infrastructure/logger"
	"notification-dispatch-api/src/infrastructure/mail"
	correspondentRepo "notification-dispatch-api/src/infrastructure/repository/postgres/correspondent"
	messageRepo "notification-dispatch-api/src/infrastructure/repository/postgres/message"
	templateRepo "notification-dispatch-api/src/infrastructure/repository/postgres/template"

	"go.uber.org/zap"
)

// Failure kinds of the send pipeline. Lookup misses and lookup failures are
// reported separately so the worker can tell configuration gaps from an
// unhealthy database.
var (
	ErrCorrespondentNotFound  = errors.New("email correspondent not found")
	ErrCorrespondentReadError = errors.New("failed to read email correspondent")
	ErrTemplateNotFound       = errors.New("text template not found")
	ErrTemplateReadError      = errors.New("failed to read text template")
)

const (
	smtpProvider      = "smtp"
	idempotencyPrefix = "verified_event:"
	idempotencyTTL    = 24 * time.Hour
)

// ISendPipeline drives one verified event through lookup, render, send and
// delivery bookkeeping.
type ISendPipeline interface {
	ProcessEvent(ctx context.Context, ev *domainEvent.VerifiedEvent) error
}

// SendPipeline implements ISendPipeline
type SendPipeline struct {
	correspondentRepository correspondentRepo.EmailCorrespondentRepositoryInterface
	templateRepository      templateRepo.TextTemplateRepositoryInterface
	messageRepository       messageRepo.MessageRepositoryInterface
	deliveryRepository      messageRepo.DeliveryRepositoryInterface
	mailSender              mail.Sender
	cacheClient             cache.ClientInterface
	Logger                  *logger.Logger
}

// NewSendPipeline creates a new SendPipeline
func NewSendPipeline(
	correspondentRepository correspondentRepo.EmailCorrespondentRepositoryInterface,
	templateRepository templateRepo.TextTemplateRepositoryInterface,
	messageRepository messageRepo.MessageRepositoryInterface,
	deliveryRepository messageRepo.DeliveryRepositoryInterface,
	mailSender mail.Sender,
	cacheClient cache.ClientInterface,
	loggerInstance *logger.Logger,
) ISendPipeline {
	return &SendPipeline{
		correspondentRepository: correspondentRepository,
		templateRepository:      templateRepository,
		messageRepository:       messageRepository,
		deliveryRepository:      deliveryRepository,
		mailSender:              mailSender,
		cacheClient:             cacheClient,
		Logger:                  loggerInstance,
	}
}

// ProcessEvent resolves the sending identity and template named by the
// event, renders the content and sends it to the event's email address.
// A delivery record is written whether the send succeeds or fails, so
// message state never stays silently inconsistent.
func (s *SendPipeline) ProcessEvent(ctx context.Context, ev *domainEvent.VerifiedEvent) error {
	if s.alreadyProcessed(ctx, ev.EventID) {
		s.Logger.Info("Skipping already processed event", zap.String("eventID", ev.EventID))
		return nil
	}

	correspondent, err := s.correspondentRepository.GetByName(ev.Event)
	if err != nil {
		if domainErrors.TypeOf(err) == domainErrors.NotFound {
			s.Logger.Error("No active correspondent for event", zap.String("event", ev.Event))
			return fmt.Errorf("%w: %q", ErrCorrespondentNotFound, ev.Event)
		}
		s.Logger.Error("Correspondent lookup failed", zap.String("event", ev.Event), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrCorrespondentReadError, err)
	}

	textTemplate, err := s.templateRepository.GetByCode(ev.Event, domainTemplate.ChannelEmail)
	if err != nil {
		if domainErrors.TypeOf(err) == domainErrors.NotFound {
			s.Logger.Error("No active email template for event", zap.String("event", ev.Event))
			return fmt.Errorf("%w: %q", ErrTemplateNotFound, ev.Event)
		}
		s.Logger.Error("Template lookup failed", zap.String("event", ev.Event), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrTemplateReadError, err)
	}

	rendered := templateUseCase.Render(textTemplate.Content, map[string]string{
		"username":          ev.Email,
		"verification_code": ev.VerificationCode,
	})

	msg, err := s.messageRepository.Create(&domainMessage.Message{
		Subject:    textTemplate.Subject,
		Body:       rendered,
		TemplateID: &textTemplate.ID,
		Status:     domainMessage.StatusSending,
		Recipients: []domainMessage.Recipient{{
			Channel: domainTemplate.ChannelEmail,
			Address: ev.Email,
		}},
	})
	if err != nil {
		s.Logger.Error("Failed to record message for event", zap.String("eventID", ev.EventID), zap.Error(err))
		return err
	}

	sendErr := s.mailSender.Send(&mail.SendCommand{
		Host:     correspondent.Host,
		Port:     correspondent.Port,
		Username: correspondent.Username,
		Password: correspondent.Password,
		To:       ev.Email,
		Subject:  textTemplate.Subject,
		Body:     rendered,
	})

	s.recordOutcome(msg, sendErr)
	s.markProcessed(ctx, ev.EventID)

	if sendErr != nil {
		return fmt.Errorf("sending email for event %q: %w", ev.EventID, sendErr)
	}
	return nil
}

// recordOutcome writes the delivery row and final message status for both the
// success and the failure branch of a send.
func (s *SendPipeline) recordOutcome(msg *domainMessage.Message, sendErr error) {
	delivery := &domainMessage.Delivery{
		RecipientID: msg.Recipients[0].ID,
		Attempt:     1,
		Provider:    smtpProvider,
	}

	messageStatus := domainMessage.StatusSent
	now := time.Now()
	if sendErr != nil {
		delivery.Status = domainMessage.DeliveryFailed
		delivery.ErrorCode = classifySendError(sendErr)
		delivery.ErrorMessage = sendErr.Error()
		delivery.FinalizedAt = &now
		messageStatus = domainMessage.StatusFailed
	} else {
		delivery.Status = domainMessage.DeliverySent
		delivery.SentAt = &now
	}

	if _, err := s.deliveryRepository.Create(delivery); err != nil {
		s.Logger.Error("Failed to record delivery", zap.String("messageID", msg.ID.String()), zap.Error(err))
	}
	if _, err := s.messageRepository.UpdateStatus(msg.ID, messageStatus); err != nil {
		s.Logger.Error("Failed to update message status", zap.String("messageID", msg.ID.String()), zap.Error(err))
	}
}

func classifySendError(err error) string {
	switch {
	case errors.Is(err, mail.ErrTransport):
		return "TRANSPORT"
	case errors.Is(err, mail.ErrRecipientRejected):
		return "REJECTED"
	}
	return "UNKNOWN"
}

// alreadyProcessed checks the idempotency key for redelivered events. Cache
// failures only disable deduplication for this event, they never block the
// pipeline.
func (s *SendPipeline) alreadyProcessed(ctx context.Context, eventID string) bool {
	if eventID == "" {
		return false
	}
	_, err := s.cacheClient.Get(ctx, idempotencyPrefix+eventID)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrNotFound) {
		s.Logger.Warn("Idempotency check failed, processing event anyway",
			zap.String("eventID", eventID), zap.Error(err))
	}
	return false
}

func (s *SendPipeline) markProcessed(ctx context.Context, eventID string) {
	if eventID == "" {
		return
	}
	if err := s.cacheClient.Set(ctx, idempotencyPrefix+eventID, "1", idempotencyTTL); err != nil {
		s.Logger.Warn("Failed to record idempotency key", zap.String("eventID", eventID), zap.Error(err))
	}
}
