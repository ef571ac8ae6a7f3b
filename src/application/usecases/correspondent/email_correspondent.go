package correspondent

import (
	domainCorrespondent "notification-dispatch-api/src/domain/correspondent"
	logger "notification-dispatch-api/src/infrastructure/logger"
	correspondentRepo "notification-dispatch-api/src/infrastructure/repository/postgres/correspondent"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// EmailCorrespondentUseCase implements the IEmailCorrespondentService interface
type EmailCorrespondentUseCase struct {
	correspondentRepository correspondentRepo.EmailCorrespondentRepositoryInterface
	Logger                  *logger.Logger
}

// NewEmailCorrespondentUseCase creates a new EmailCorrespondentUseCase
func NewEmailCorrespondentUseCase(
	correspondentRepository correspondentRepo.EmailCorrespondentRepositoryInterface,
	loggerInstance *logger.Logger,
) domainCorrespondent.IEmailCorrespondentService {
	return &EmailCorrespondentUseCase{
		correspondentRepository: correspondentRepository,
		Logger:                  loggerInstance,
	}
}

func (uc *EmailCorrespondentUseCase) GetAll(query *domainCorrespondent.EmailCorrespondentQuery) (*[]domainCorrespondent.EmailCorrespondent, error) {
	return uc.correspondentRepository.GetAll(query)
}

func (uc *EmailCorrespondentUseCase) Create(correspondent *domainCorrespondent.EmailCorrespondent) (*domainCorrespondent.EmailCorrespondent, error) {
	uc.Logger.Info("Creating email correspondent", zap.String("name", correspondent.Name))
	return uc.correspondentRepository.Create(correspondent)
}

func (uc *EmailCorrespondentUseCase) GetByName(name string) (*domainCorrespondent.EmailCorrespondent, error) {
	return uc.correspondentRepository.GetByName(name)
}

func (uc *EmailCorrespondentUseCase) Update(id uuid.UUID, correspondentMap map[string]interface{}) (*domainCorrespondent.EmailCorrespondent, error) {
	// The patch never carries more than the whitelisted columns; passwords
	// pass through to the store without being logged.
	uc.Logger.Info("Updating email correspondent", zap.String("id", id.String()))
	return uc.correspondentRepository.Update(id, correspondentMap)
}

func (uc *EmailCorrespondentUseCase) Delete(id uuid.UUID) (*domainCorrespondent.EmailCorrespondent, error) {
	uc.Logger.Info("Deactivating email correspondent", zap.String("id", id.String()))
	return uc.correspondentRepository.Delete(id)
}
