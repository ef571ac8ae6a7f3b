package template

import (
	"errors"
	"strings"
	"time"

	domainErrors "notification-dispatch-api/src/domain/errors"
	domainTemplate "notification-dispatch-api/src/domain/template"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TextTemplate is the database model for text templates
type TextTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"column:code;index:idx_text_templates_active_code_channel,unique,where:is_active"`
	Channel   string    `gorm:"column:channel;index:idx_text_templates_active_code_channel,unique,where:is_active"`
	Subject   string    `gorm:"column:subject"`
	Content   string    `gorm:"column:content;type:text"`
	Variables string    `gorm:"column:variables;type:text"`
	IsActive  bool      `gorm:"column:is_active;default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:mili"`
}

func (TextTemplate) TableName() string {
	return "text_templates"
}

func (t *TextTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		t.ID = id
	}
	return nil
}

var ColumnsTextTemplateMapping = map[string]string{
	"id":        "id",
	"code":      "code",
	"channel":   "channel",
	"subject":   "subject",
	"content":   "content",
	"variables": "variables",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// TextTemplateRepositoryInterface defines the interface for text template repository operations
type TextTemplateRepositoryInterface interface {
	GetAll(query *domainTemplate.TextTemplateQuery) (*[]domainTemplate.TextTemplate, error)
	Create(templateDomain *domainTemplate.TextTemplate) (*domainTemplate.TextTemplate, error)
	GetByCode(code string, channel domainTemplate.Channel) (*domainTemplate.TextTemplate, error)
	Update(id uuid.UUID, templateMap map[string]interface{}) (*domainTemplate.TextTemplate, error)
	Delete(id uuid.UUID) (*domainTemplate.TextTemplate, error)
}

type TextTemplateRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewTextTemplateRepository(db *gorm.DB, loggerInstance *logger.Logger) TextTemplateRepositoryInterface {
	return &TextTemplateRepository{DB: db, Logger: loggerInstance}
}

func (r *TextTemplateRepository) GetAll(query *domainTemplate.TextTemplateQuery) (*[]domainTemplate.TextTemplate, error) {
	var templates []TextTemplate
	tx := r.DB.Model(&TextTemplate{})
	if query != nil {
		if query.ID != nil {
			tx = tx.Where("id = ?", *query.ID)
		}
		if query.Code != "" {
			tx = tx.Where("code ILIKE ?", "%"+strings.TrimSpace(query.Code)+"%")
		}
		if query.Channel != "" {
			tx = tx.Where("channel = ?", string(query.Channel))
		}
		if query.IsActive != nil {
			tx = tx.Where("is_active = ?", *query.IsActive)
		}
	}
	if err := tx.Order("created_at DESC").Find(&templates).Error; err != nil {
		r.Logger.Error("Error getting text templates", zap.Error(err))
		return nil, translateError(err)
	}
	return arrayToDomainMapper(&templates), nil
}

func (r *TextTemplateRepository) Create(templateDomain *domainTemplate.TextTemplate) (*domainTemplate.TextTemplate, error) {
	r.Logger.Info("Creating new text template",
		zap.String("code", templateDomain.Code),
		zap.String("channel", string(templateDomain.Channel)))
	templateRepository := fromDomainMapper(templateDomain)
	templateRepository.IsActive = true
	if err := r.DB.Create(templateRepository).Error; err != nil {
		r.Logger.Error("Error creating text template", zap.Error(err), zap.String("code", templateDomain.Code))
		return &domainTemplate.TextTemplate{}, translateError(err)
	}
	r.Logger.Info("Successfully created text template",
		zap.String("code", templateDomain.Code),
		zap.String("id", templateRepository.ID.String()))
	return templateRepository.toDomainMapper(), nil
}

// GetByCode resolves the newest active template for an exact (code, channel)
// pair. This is the lookup the sender worker uses.
func (r *TextTemplateRepository) GetByCode(code string, channel domainTemplate.Channel) (*domainTemplate.TextTemplate, error) {
	var templateObj TextTemplate
	err := r.DB.Where("code = ? AND channel = ? AND is_active = ?", code, string(channel), true).
		Order("created_at DESC").
		First(&templateObj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.Logger.Warn("Text template not found",
				zap.String("code", code),
				zap.String("channel", string(channel)))
			return &domainTemplate.TextTemplate{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		}
		r.Logger.Error("Error getting text template by code", zap.Error(err), zap.String("code", code))
		return &domainTemplate.TextTemplate{}, translateError(err)
	}
	return templateObj.toDomainMapper(), nil
}

func (r *TextTemplateRepository) Update(id uuid.UUID, templateMap map[string]interface{}) (*domainTemplate.TextTemplate, error) {
	var templateObj TextTemplate
	templateObj.ID = id

	updateData := make(map[string]interface{})
	for k, v := range templateMap {
		if column, ok := ColumnsTextTemplateMapping[k]; ok {
			updateData[column] = v
		} else {
			updateData[k] = v
		}
	}

	tx := r.DB.Model(&templateObj).
		Select("code", "channel", "subject", "content", "variables", "is_active").
		Updates(updateData)
	if tx.Error != nil {
		r.Logger.Error("Error updating text template", zap.Error(tx.Error), zap.String("id", id.String()))
		return &domainTemplate.TextTemplate{}, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Text template not found for update", zap.String("id", id.String()))
		return &domainTemplate.TextTemplate{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	if err := r.DB.Where("id = ?", id).First(&templateObj).Error; err != nil {
		r.Logger.Error("Error retrieving updated text template", zap.Error(err), zap.String("id", id.String()))
		return &domainTemplate.TextTemplate{}, translateError(err)
	}
	r.Logger.Info("Successfully updated text template", zap.String("id", id.String()))
	return templateObj.toDomainMapper(), nil
}

// Delete performs a soft delete: the row stays, the active flag flips.
func (r *TextTemplateRepository) Delete(id uuid.UUID) (*domainTemplate.TextTemplate, error) {
	tx := r.DB.Model(&TextTemplate{}).
		Where("id = ?", id).
		Update("is_active", false)
	if tx.Error != nil {
		r.Logger.Error("Error deleting text template", zap.Error(tx.Error), zap.String("id", id.String()))
		return &domainTemplate.TextTemplate{}, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		r.Logger.Warn("Text template not found for deletion", zap.String("id", id.String()))
		return &domainTemplate.TextTemplate{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}

	var templateObj TextTemplate
	if err := r.DB.Where("id = ?", id).First(&templateObj).Error; err != nil {
		r.Logger.Error("Error retrieving deleted text template", zap.Error(err), zap.String("id", id.String()))
		return &domainTemplate.TextTemplate{}, translateError(err)
	}
	r.Logger.Info("Successfully deactivated text template", zap.String("id", id.String()))
	return templateObj.toDomainMapper(), nil
}

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
func (t *TextTemplate) toDomainMapper() *domainTemplate.TextTemplate {
	return &domainTemplate.TextTemplate{
		ID:        t.ID,
		Code:      t.Code,
		Subject:   t.Subject,
		Content:   t.Content,
		Variables: t.Variables,
		Channel:   domainTemplate.Channel(t.Channel),
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func fromDomainMapper(t *domainTemplate.TextTemplate) *TextTemplate {
	return &TextTemplate{
		ID:        t.ID,
		Code:      t.Code,
		Subject:   t.Subject,
		Content:   t.Content,
		Variables: t.Variables,
		Channel:   string(t.Channel),
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func arrayToDomainMapper(templates *[]TextTemplate) *[]domainTemplate.TextTemplate {
	templatesDomain := make([]domainTemplate.TextTemplate, len(*templates))
	for i, templateObj := range *templates {
		templatesDomain[i] = *templateObj.toDomainMapper()
	}
	return &templatesDomain
}
