package correspondent

import (
	"strings"
	"time"

	domainCorrespondent "notification-dispatch-api/src/domain/correspondent"
	domainErrors "notification-dispatch-api/src/domain/errors"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TelegramCorrespondent is the database model for telegram bot identities
type TelegramCorrespondent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;index:idx_telegram_correspondents_active_name,unique,where:is_active"`
	BotToken  string    `gorm:"column:bot_token"`
	IsActive  bool      `gorm:"column:is_active;default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:mili"`
}

func (TelegramCorrespondent) TableName() string {
	return "telegram_correspondents"
}

func (c *TelegramCorrespondent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		c.ID = id
	}
	return nil
}

var ColumnsTelegramCorrespondentMapping = map[string]string{
	"id":        "id",
	"name":      "name",
	"botToken":  "bot_token",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// TelegramCorrespondentRepositoryInterface defines the interface for telegram correspondent repository operations
type TelegramCorrespondentRepositoryInterface interface {
	GetAll(query *domainCorrespondent.TelegramCorrespondentQuery) (*[]domainCorrespondent.TelegramCorrespondent, error)
	Create(correspondentDomain *domainCorrespondent.TelegramCorrespondent) (*domainCorrespondent.TelegramCorrespondent, error)
	Update(id uuid.UUID, correspondentMap map[string]interface{}) (*domainCorrespondent.TelegramCorrespondent, error)
	Delete(id uuid.UUID) (*domainCorrespondent.TelegramCorrespondent, error)
}

type TelegramCorrespondentRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewTelegramCorrespondentRepository(db *gorm.DB, loggerInstance *logger.Logger) TelegramCorrespondentRepositoryInterface {
	return &TelegramCorrespondentRepository{DB: db, Logger: loggerInstance}
}

func (r *TelegramCorrespondentRepository) GetAll(query *domainCorrespondent.TelegramCorrespondentQuery) (*[]domainCorrespondent.TelegramCorrespondent, error) {
	var correspondents []TelegramCorrespondent
	tx := r.DB.Model(&TelegramCorrespondent{})
	if query != nil {
		if query.ID != nil {
			tx = tx.Where("id = ?", *query.ID)
		}
		if query.Name != "" {
			tx = tx.Where("name ILIKE ?", "%"+strings.TrimSpace(query.Name)+"%")
		}
		if query.IsActive != nil {
			tx = tx.Where("is_active = ?", *query.IsActive)
		}
	}
	if err := tx.Order("created_at DESC").Find(&correspondents).Error; err != nil {
		r.Logger.Error("Error getting telegram correspondents", zap.Error(err))
		return nil, translateError(err)
	}
	return telegramArrayToDomainMapper(&correspondents), nil
}

func (r *TelegramCorrespondentRepository) Create(correspondentDomain *domainCorrespondent.TelegramCorrespondent) (*domainCorrespondent.TelegramCorrespondent, error) {
	r.Logger.Info("Creating new telegram correspondent", zap.String("name", correspondentDomain.Name))
	correspondentRepository := telegramFromDomainMapper(correspondentDomain)
	correspondentRepository.IsActive = true
	if err := r.DB.Create(correspondentRepository).Error; err != nil {
		r.Logger.Error("Error creating telegram correspondent", zap.Error(err), zap.String("name", correspondentDomain.Name))
		return &domainCorrespondent.TelegramCorrespondent{}, translateError(err)
	}
	r.Logger.Info("Successfully created telegram correspondent",
		zap.String("name", correspondentDomain.Name),
		zap.String("id", correspondentRepository.ID.String()))
	return correspondentRepository.toDomainMapper(), nil
}

func (r *TelegramCorrespondentRepository) Update(id uuid.UUID, correspondentMap map[string]interface{}) (*domainCorrespondent.TelegramCorrespondent, error) {
	var correspondentObj TelegramCorrespondent
	correspondentObj.ID = id

	updateData := make(map[string]interface{})
	for k, v := range correspondentMap {
		if column, ok := ColumnsTelegramCorrespondentMapping[k]; ok {
			updateData[column] = v
		} else {
			updateData[k] = v
		}
	}

	tx := r.DB.Model(&correspondentObj).
		Select("name", "bot_token", "is_active").
		Updates(updateData)
	if tx.Error != nil {
		r.Logger.Error("Error updating telegram correspondent", zap.Error(tx.Error), zap.String("id", id.String()))
		return &domainCorrespondent.TelegramCorrespondent{}, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Telegram correspondent not found for update", zap.String("id", id.String()))
		return &domainCorrespondent.TelegramCorrespondent{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	if err := r.DB.Where("id = ?", id).First(&correspondentObj).Error; err != nil {
		r.Logger.Error("Error retrieving updated telegram correspondent", zap.Error(err), zap.String("id", id.String()))
		return &domainCorrespondent.TelegramCorrespondent{}, translateError(err)
	}
	r.Logger.Info("Successfully updated telegram correspondent", zap.String("id", id.String()))
	return correspondentObj.toDomainMapper(), nil
}

// Delete performs a soft delete: the row stays, the active flag flips.
func (r *TelegramCorrespondentRepository) Delete(id uuid.UUID) (*domainCorrespondent.TelegramCorrespondent, error) {
	tx := r.DB.Model(&TelegramCorrespondent{}).
		Where("id = ?", id).
		Update("is_active", false)
	if tx.Error != nil {
		r.Logger.Error("Error deleting telegram correspondent", zap.Error(tx.Error), zap.String("id", id.String()))
		return &domainCorrespondent.TelegramCorrespondent{}, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Telegram correspondent not found for deletion", zap.String("id", id.String()))
		return &domainCorrespondent.TelegramCorrespondent{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}

	var correspondentObj TelegramCorrespondent
	if err := r.DB.Where("id = ?", id).First(&correspondentObj).Error; err != nil {
		r.Logger.Error("Error retrieving deleted telegram correspondent", zap.Error(err), zap.String("id", id.String()))
		return &domainCorrespondent.TelegramCorrespondent{}, translateError(err)
	}
	r.Logger.Info("Successfully deactivated telegram correspondent", zap.String("id", id.String()))
	return correspondentObj.toDomainMapper(), nil
}

// Mappers
func (c *TelegramCorrespondent) toDomainMapper() *domainCorrespondent.TelegramCorrespondent {
	return &domainCorrespondent.TelegramCorrespondent{
		ID:        c.ID,
		Name:      c.Name,
		BotToken:  c.BotToken,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func telegramFromDomainMapper(c *domainCorrespondent.TelegramCorrespondent) *TelegramCorrespondent {
	return &TelegramCorrespondent{
		ID:        c.ID,
		Name:      c.Name,
		BotToken:  c.BotToken,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func telegramArrayToDomainMapper(correspondents *[]TelegramCorrespondent) *[]domainCorrespondent.TelegramCorrespondent {
	correspondentsDomain := make([]domainCorrespondent.TelegramCorrespondent, len(*correspondents))
	for i, correspondent := range *correspondents {
		correspondentsDomain[i] = *correspondent.toDomainMapper()
	}
	return &correspondentsDomain
}
