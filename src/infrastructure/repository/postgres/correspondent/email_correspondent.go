package correspondent

import (
	"errors"
	"strings"
	"time"

	domainCorrespondent "notification-dispatch-api/src/domain/correspondent"
	domainErrors "notification-dispatch-api/src/domain/errors"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmailCorrespondent is the database model for email sending identities
type EmailCorrespondent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;index:idx_email_correspondents_active_name,unique,where:is_active"`
	Host      string    `gorm:"column:host"`
	Port      int       `gorm:"column:port"`
	Username  string    `gorm:"column:username"`
	Password  string    `gorm:"column:password"`
	IsActive  bool      `gorm:"column:is_active;default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:mili"`
}

func (EmailCorrespondent) TableName() string {
	return "email_correspondents"
}

func (c *EmailCorrespondent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		c.ID = id
	}
	return nil
}

var ColumnsEmailCorrespondentMapping = map[string]string{
	"id":        "id",
	"name":      "name",
	"host":      "host",
	"port":      "port",
	"username":  "username",
	"password":  "password",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// EmailCorrespondentRepositoryInterface defines the interface for email correspondent repository operations
type EmailCorrespondentRepositoryInterface interface {
	GetAll(query *domainCorrespondent.EmailCorrespondentQuery) (*[]domainCorrespondent.EmailCorrespondent, error)
	Create(correspondentDomain *domainCorrespondent.EmailCorrespondent) (*domainCorrespondent.EmailCorrespondent, error)
	GetByName(name string) (*domainCorrespondent.EmailCorrespondent, error)
	Update(id uuid.UUID, correspondentMap map[string]interface{}) (*domainCorrespondent.EmailCorrespondent, error)
	Delete(id uuid.UUID) (*domainCorrespondent.EmailCorrespondent, error)
}

type EmailCorrespondentRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewEmailCorrespondentRepository(db *gorm.DB, loggerInstance *logger.Logger) EmailCorrespondentRepositoryInterface {
	return &EmailCorrespondentRepository{DB: db, Logger: loggerInstance}
}

func (r *EmailCorrespondentRepository) GetAll(query *domainCorrespondent.EmailCorrespondentQuery) (*[]domainCorrespondent.EmailCorrespondent, error) {
	var correspondents []EmailCorrespondent
	tx := r.DB.Model(&EmailCorrespondent{})
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
		r.Logger.Error("Error getting email correspondents", zap.Error(err))
		return nil, translateError(err)
	}
	return emailArrayToDomainMapper(&correspondents), nil
}

func (r *EmailCorrespondentRepository) Create(correspondentDomain *domainCorrespondent.EmailCorrespondent) (*domainCorrespondent.EmailCorrespondent, error) {
	r.Logger.Info("Creating new email correspondent", zap.String("name", correspondentDomain.Name))
	correspondentRepository := emailFromDomainMapper(correspondentDomain)
	correspondentRepository.IsActive = true
	if err := r.DB.Create(correspondentRepository).Error; err != nil {
		r.Logger.Error("Error creating email correspondent", zap.Error(err), zap.String("name", correspondentDomain.Name))
		return &domainCorrespondent.EmailCorrespondent{}, translateError(err)
	}
	r.Logger.Info("Successfully created email correspondent",
		zap.String("name", correspondentDomain.Name),
		zap.String("id", correspondentRepository.ID.String()))
	return correspondentRepository.toDomainMapper(), nil
}

// GetByName resolves the newest active correspondent with the exact name.
// This is the lookup the sender worker uses.
func (r *EmailCorrespondentRepository) GetByName(name string) (*domainCorrespondent.EmailCorrespondent, error) {
	var correspondent EmailCorrespondent
	err := r.DB.Where("name = ? AND is_active = ?", name, true).
		Order("created_at DESC").
		First(&correspondent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.Logger.Warn("Email correspondent not found", zap.String("name", name))
			return &domainCorrespondent.EmailCorrespondent{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		}
		r.Logger.Error("Error getting email correspondent by name", zap.Error(err), zap.String("name", name))
		return &domainCorrespondent.EmailCorrespondent{}, translateError(err)
	}
	return correspondent.toDomainMapper(), nil
}

func (r *EmailCorrespondentRepository) Update(id uuid.UUID, correspondentMap map[string]interface{}) (*domainCorrespondent.EmailCorrespondent, error) {
	var correspondentObj EmailCorrespondent
	correspondentObj.ID = id

	updateData := make(map[string]interface{})
	for k, v := range correspondentMap {
		if column, ok := ColumnsEmailCorrespondentMapping[k]; ok {
			updateData[column] = v
		} else {
			updateData[k] = v
		}
	}

	tx := r.DB.Model(&correspondentObj).
		Select("name", "host", "port", "username", "password", "is_active").
		Updates(updateData)
	if tx.Error != nil {
		r.Logger.Error("Error updating email correspondent", zap.Error(tx.Error), zap.String("id", id.String()))
		return &domainCorrespondent.EmailCorrespondent{}, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Email correspondent not found for update", zap.String("id", id.String()))
		return &domainCorrespondent.EmailCorrespondent{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	if err := r.DB.Where("id = ?", id).First(&correspondentObj).Error; err != nil {
		r.Logger.Error("Error retrieving updated email correspondent", zap.Error(err), zap.String("id", id.String()))
		return &domainCorrespondent.EmailCorrespondent{}, translateError(err)
	}
	r.Logger.Info("Successfully updated email correspondent", zap.String("id", id.String()))
	return correspondentObj.toDomainMapper(), nil
}

// Delete performs a soft delete: the row stays, the active flag flips.
func (r *EmailCorrespondentRepository) Delete(id uuid.UUID) (*domainCorrespondent.EmailCorrespondent, error) {
	tx := r.DB.Model(&EmailCorrespondent{}).
		Where("id = ?", id).
		Update("is_active", false)
	if tx.Error != nil {
		r.Logger.Error("Error deleting email correspondent", zap.Error(tx.Error), zap.String("id", id.String()))
		return &domainCorrespondent.EmailCorrespondent{}, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Email correspondent not found for deletion", zap.String("id", id.String()))
		return &domainCorrespondent.EmailCorrespondent{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}

	var correspondentObj EmailCorrespondent
	if err := r.DB.Where("id = ?", id).First(&correspondentObj).Error; err != nil {
		r.Logger.Error("Error retrieving deleted email correspondent", zap.Error(err), zap.String("id", id.String()))
		return &domainCorrespondent.EmailCorrespondent{}, translateError(err)
	}
	r.Logger.Info("Successfully deactivated email correspondent", zap.String("id", id.String()))
	return correspondentObj.toDomainMapper(), nil
}

// translateError maps driver errors onto the domain taxonomy. Postgres code
// 23505 is a unique constraint violation.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domainErrors.NewAppErrorWithType(domainErrors.ResourceAlreadyExists)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return domainErrors.NewAppError(err, domainErrors.RepositoryError)
}

// Mappers
func (c *EmailCorrespondent) toDomainMapper() *domainCorrespondent.EmailCorrespondent {
	return &domainCorrespondent.EmailCorrespondent{
		ID:        c.ID,
		Name:      c.Name,
		Host:      c.Host,
		Port:      c.Port,
		Username:  c.Username,
		Password:  c.Password,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func emailFromDomainMapper(c *domainCorrespondent.EmailCorrespondent) *EmailCorrespondent {
	return &EmailCorrespondent{
		ID:        c.ID,
		Name:      c.Name,
		Host:      c.Host,
		Port:      c.Port,
		Username:  c.Username,
		Password:  c.Password,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func emailArrayToDomainMapper(correspondents *[]EmailCorrespondent) *[]domainCorrespondent.EmailCorrespondent {
	correspondentsDomain := make([]domainCorrespondent.EmailCorrespondent, len(*correspondents))
	for i, correspondent := range *correspondents {
		correspondentsDomain[i] = *correspondent.toDomainMapper()
	}
	return &correspondentsDomain
}
