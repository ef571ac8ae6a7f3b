package message

import (
	"time"

	domainErrors "notification-dispatch-api/src/domain/errors"
	domainMessage "notification-dispatch-api/src/domain/message"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeliveryRepositoryInterface defines the interface for delivery repository operations
type DeliveryRepositoryInterface interface {
	Create(deliveryDomain *domainMessage.Delivery) (*domainMessage.Delivery, error)
	GetByRecipient(recipientID uuid.UUID) (*[]domainMessage.Delivery, error)
	UpdateStatus(id uuid.UUID, status domainMessage.DeliveryStatus, errorCode, errorMessage string) (*domainMessage.Delivery, error)
}

type DeliveryRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewDeliveryRepository(db *gorm.DB, loggerInstance *logger.Logger) DeliveryRepositoryInterface {
	return &DeliveryRepository{DB: db, Logger: loggerInstance}
}

func (r *DeliveryRepository) Create(deliveryDomain *domainMessage.Delivery) (*domainMessage.Delivery, error) {
	deliveryRepository := deliveryFromDomainMapper(deliveryDomain)
	if deliveryRepository.Attempt == 0 {
		deliveryRepository.Attempt = 1
	}
	if deliveryRepository.QueuedAt.IsZero() {
		deliveryRepository.QueuedAt = time.Now()
	}
	if err := r.DB.Create(deliveryRepository).Error; err != nil {
		r.Logger.Error("Error creating delivery", zap.Error(err),
			zap.String("recipientID", deliveryDomain.RecipientID.String()))
		return &domainMessage.Delivery{}, translateError(err)
	}
	r.Logger.Info("Successfully created delivery",
		zap.String("id", deliveryRepository.ID.String()),
		zap.String("status", deliveryRepository.Status))
	return deliveryRepository.toDomainMapper(), nil
}

func (r *DeliveryRepository) GetByRecipient(recipientID uuid.UUID) (*[]domainMessage.Delivery, error) {
	var deliveries []Delivery
	err := r.DB.Where("recipient_id = ?", recipientID).
		Order("queued_at DESC").
		Find(&deliveries).Error
	if err != nil {
		r.Logger.Error("Error getting deliveries by recipient", zap.Error(err),
			zap.String("recipientID", recipientID.String()))
		return nil, translateError(err)
	}
	return deliveryArrayToDomainMapper(&deliveries), nil
}

func (r *DeliveryRepository) UpdateStatus(id uuid.UUID, status domainMessage.DeliveryStatus, errorCode, errorMessage string) (*domainMessage.Delivery, error) {
	now := time.Now()
	updateData := map[string]interface{}{
		"status":        string(status),
		"error_code":    errorCode,
		"error_message": errorMessage,
		"finalized_at":  &now,
	}
	if status == domainMessage.DeliverySent {
		updateData["sent_at"] = &now
	}

	tx := r.DB.Model(&Delivery{}).Where("id = ?", id).Updates(updateData)
	if tx.Error != nil {
		r.Logger.Error("Error updating delivery status", zap.Error(tx.Error), zap.String("id", id.String()))
		return &domainMessage.Delivery{}, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Delivery not found for status update", zap.String("id", id.String()))
		return &domainMessage.Delivery{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}

	var deliveryObj Delivery
	if err := r.DB.Where("id = ?", id).First(&deliveryObj).Error; err != nil {
		r.Logger.Error("Error retrieving updated delivery", zap.Error(err), zap.String("id", id.String()))
		return &domainMessage.Delivery{}, translateError(err)
	}
	return deliveryObj.toDomainMapper(), nil
}

// Mappers
func (d *Delivery) toDomainMapper() *domainMessage.Delivery {
	return &domainMessage.Delivery{
		ID:                d.ID,
		RecipientID:       d.RecipientID,
		Attempt:           d.Attempt,
		Provider:          d.Provider,
		Status:            domainMessage.DeliveryStatus(d.Status),
		ProviderMessageID: d.ProviderMessageID,
		ErrorCode:         d.ErrorCode,
		ErrorMessage:      d.ErrorMessage,
		QueuedAt:          d.QueuedAt,
		SentAt:            d.SentAt,
		FinalizedAt:       d.FinalizedAt,
	}
}

func deliveryFromDomainMapper(d *domainMessage.Delivery) *Delivery {
	return &Delivery{
		ID:                d.ID,
		RecipientID:       d.RecipientID,
		Attempt:           d.Attempt,
		Provider:          d.Provider,
		Status:            string(d.Status),
		ProviderMessageID: d.ProviderMessageID,
		ErrorCode:         d.ErrorCode,
		ErrorMessage:      d.ErrorMessage,
		QueuedAt:          d.QueuedAt,
		SentAt:            d.SentAt,
		FinalizedAt:       d.FinalizedAt,
	}
}

func deliveryArrayToDomainMapper(deliveries *[]Delivery) *[]domainMessage.Delivery {
	deliveriesDomain := make([]domainMessage.Delivery, len(*deliveries))
	for i, deliveryObj := range *deliveries {
		deliveriesDomain[i] = *deliveryObj.toDomainMapper()
	}
	return &deliveriesDomain
}
