package template

import (
	domainTemplate "notification-dispatch-api/src/domain/template"
	logger "notification-dispatch-api/src/infrastructure/logger"
	templateRepo "notification-dispatch-api/src/infrastructure/repository/postgres/template"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// TextTemplateUseCase implements the ITextTemplateService interface
type TextTemplateUseCase struct {
	templateRepository templateRepo.TextTemplateRepositoryInterface
	Logger             *logger.Logger
}

// NewTextTemplateUseCase creates a new TextTemplateUseCase
func NewTextTemplateUseCase(
	templateRepository templateRepo.TextTemplateRepositoryInterface,
	loggerInstance *logger.Logger,
) domainTemplate.ITextTemplateService {
	return &TextTemplateUseCase{
		templateRepository: templateRepository,
		Logger:             loggerInstance,
	}
}

func (uc *TextTemplateUseCase) GetAll(query *domainTemplate.TextTemplateQuery) (*[]domainTemplate.TextTemplate, error) {
	return uc.templateRepository.GetAll(query)
}

func (uc *TextTemplateUseCase) Create(template *domainTemplate.TextTemplate) (*domainTemplate.TextTemplate, error) {
	uc.Logger.Info("Creating text template",
		zap.String("code", template.Code),
		zap.String("channel", string(template.Channel)))
	return uc.templateRepository.Create(template)
}

func (uc *TextTemplateUseCase) GetByCode(code string, channel domainTemplate.Channel) (*domainTemplate.TextTemplate, error) {
	return uc.templateRepository.GetByCode(code, channel)
}

func (uc *TextTemplateUseCase) Update(id uuid.UUID, templateMap map[string]interface{}) (*domainTemplate.TextTemplate, error) {
	uc.Logger.Info("Updating text template", zap.String("id", id.String()))
	return uc.templateRepository.Update(id, templateMap)
}

func (uc *TextTemplateUseCase) Delete(id uuid.UUID) (*domainTemplate.TextTemplate, error) {
	uc.Logger.Info("Deactivating text template", zap.String("id", id.String()))
	return uc.templateRepository.Delete(id)
}

func (uc *TextTemplateUseCase) Render(content string, vars map[string]string) string {
	return Render(content, vars)
}
