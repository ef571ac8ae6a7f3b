package correspondent

import (
	domainCorrespondent "notification-dispatch-api/src/domain/correspondent"
	logger "notification-dispatch-api/src/infrastructure/logger"
	correspondentRepo "notification-dispatch-api/src/infrastructure/repository/postgres/correspondent"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// TelegramCorrespondentUseCase implements the ITelegramCorrespondentService interface
type TelegramCorrespondentUseCase struct {
	correspondentRepository correspondentRepo.TelegramCorrespondentRepositoryInterface
	Logger                  *logger.Logger
}

// NewTelegramCorrespondentUseCase creates a new TelegramCorrespondentUseCase
func NewTelegramCorrespondentUseCase(
	correspondentRepository correspondentRepo.TelegramCorrespondentRepositoryInterface,
	loggerInstance *logger.Logger,
) domainCorrespondent.ITelegramCorrespondentService {
	return &TelegramCorrespondentUseCase{
		correspondentRepository: correspondentRepository,
		Logger:                  loggerInstance,
	}
}

func (uc *TelegramCorrespondentUseCase) GetAll(query *domainCorrespondent.TelegramCorrespondentQuery) (*[]domainCorrespondent.TelegramCorrespondent, error) {
	return uc.correspondentRepository.GetAll(query)
}

func (uc *TelegramCorrespondentUseCase) Create(correspondent *domainCorrespondent.TelegramCorrespondent) (*domainCorrespondent.TelegramCorrespondent, error) {
	uc.Logger.Info("Creating telegram correspondent", zap.String("name", correspondent.Name))
	return uc.correspondentRepository.Create(correspondent)
}

func (uc *TelegramCorrespondentUseCase) Update(id uuid.UUID, correspondentMap map[string]interface{}) (*domainCorrespondent.TelegramCorrespondent, error) {
	uc.Logger.Info("Updating telegram correspondent", zap.String("id", id.String()))
	return uc.correspondentRepository.Update(id, correspondentMap)
}

func (uc *TelegramCorrespondentUseCase) Delete(id uuid.UUID) (*domainCorrespondent.TelegramCorrespondent, error) {
	uc.Logger.Info("Deactivating telegram correspondent", zap.String("id", id.String()))
	return uc.correspondentRepository.Delete(id)
}
