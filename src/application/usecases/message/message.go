package message

import (
	domainErrors "notification-dispatch-api/src/domain/errors"
	domainMessage "notification-dispatch-api/src/domain/message"
	logger "notification-dispatch-api/src/infrastructure/logger"
	messageRepo "notification-dispatch-api/src/infrastructure/repository/postgres/message"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// MessageUseCase implements the IMessageService interface
type MessageUseCase struct {
	messageRepository  messageRepo.MessageRepositoryInterface
	deliveryRepository messageRepo.DeliveryRepositoryInterface
	Logger             *logger.Logger
}

// NewMessageUseCase creates a new MessageUseCase
func NewMessageUseCase(
	messageRepository messageRepo.MessageRepositoryInterface,
	deliveryRepository messageRepo.DeliveryRepositoryInterface,
	loggerInstance *logger.Logger,
) domainMessage.IMessageService {
	return &MessageUseCase{
		messageRepository:  messageRepository,
		deliveryRepository: deliveryRepository,
		Logger:             loggerInstance,
	}
}

func (uc *MessageUseCase) GetAll(query *domainMessage.MessageQuery) (*[]domainMessage.Message, error) {
	return uc.messageRepository.GetAll(query)
}

func (uc *MessageUseCase) Create(msg *domainMessage.Message) (*domainMessage.Message, error) {
	if msg.Body == "" && msg.TemplateID == nil {
		uc.Logger.Warn("Rejecting message with neither inline body nor template reference")
		return nil, domainErrors.NewAppErrorWithType(domainErrors.ValidationError)
	}
	if msg.Status == "" {
		msg.Status = domainMessage.StatusPending
	}
	uc.Logger.Info("Creating message", zap.Int("recipients", len(msg.Recipients)))
	return uc.messageRepository.Create(msg)
}

func (uc *MessageUseCase) GetByID(id uuid.UUID) (*domainMessage.Message, error) {
	return uc.messageRepository.GetByID(id)
}

func (uc *MessageUseCase) UpdateStatus(id uuid.UUID, status domainMessage.MessageStatus) (*domainMessage.Message, error) {
	uc.Logger.Info("Updating message status",
		zap.String("id", id.String()),
		zap.String("status", string(status)))
	return uc.messageRepository.UpdateStatus(id, status)
}

func (uc *MessageUseCase) Delete(id uuid.UUID) error {
	uc.Logger.Info("Deleting message", zap.String("id", id.String()))
	return uc.messageRepository.Delete(id)
}

func (uc *MessageUseCase) RecordDelivery(delivery *domainMessage.Delivery) (*domainMessage.Delivery, error) {
	if delivery.Status == "" {
		delivery.Status = domainMessage.DeliveryQueued
	}
	return uc.deliveryRepository.Create(delivery)
}
