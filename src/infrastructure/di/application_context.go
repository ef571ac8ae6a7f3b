package di

import (
	"sync"

	"notification-dispatch-api/src/domain/common"
	"notification-dispatch-api/src/infrastructure/helper"

	correspondentUseCase "notification-dispatch-api/src/application/usecases/correspondent"
	messageUseCase "notification-dispatch-api/src/application/usecases/message"
	senderUseCase "notification-dispatch-api/src/application/usecases/sender"
	templateUseCase "notification-dispatch-api/src/application/usecases/template"
	"notification-dispatch-api/src/infrastructure/cache"
	logger "notification-dispatch-api/src/infrastructure/logger"
	"notification-dispatch-api/src/infrastructure/mail"
	"notification-dispatch-api/src/infrastructure/queue"
	"notification-dispatch-api/src/infrastructure/repository/postgres"
	correspondentRepo "notification-dispatch-api/src/infrastructure/repository/postgres/correspondent"
	messageRepo "notification-dispatch-api/src/infrastructure/repository/postgres/message"
	templateRepo "notification-dispatch-api/src/infrastructure/repository/postgres/template"
	emailCorrespondentController "notification-dispatch-api/src/infrastructure/rest/controllers/emailcorrespondent"
	messageController "notification-dispatch-api/src/infrastructure/rest/controllers/message"
	telegramCorrespondentController "notification-dispatch-api/src/infrastructure/rest/controllers/telegramcorrespondent"
	textTemplateController "notification-dispatch-api/src/infrastructure/rest/controllers/texttemplate"
	"notification-dispatch-api/src/infrastructure/worker"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplicationContext holds all application dependencies and services
type ApplicationContext struct {
	DB                              *gorm.DB
	Logger                          *logger.Logger
	EmailCorrespondentController    emailCorrespondentController.IEmailCorrespondentController
	TelegramCorrespondentController telegramCorrespondentController.ITelegramCorrespondentController
	TextTemplateController          textTemplateController.ITextTemplateController
	MessageController               messageController.IMessageController
	CommonService                   common.CommonService
	EmailCorrespondentRepository    correspondentRepo.EmailCorrespondentRepositoryInterface
	TelegramCorrespondentRepository correspondentRepo.TelegramCorrespondentRepositoryInterface
	TextTemplateRepository          templateRepo.TextTemplateRepositoryInterface
	MessageRepository               messageRepo.MessageRepositoryInterface
	DeliveryRepository              messageRepo.DeliveryRepositoryInterface
	QueueClient                     *queue.Client
	CacheClient                     *cache.Client
	MailSender                      mail.Sender
	SendPipeline                    senderUseCase.ISendPipeline
	EmailSenderWorker               *worker.EmailSenderWorker
}

var (
	loggerInstance *logger.Logger
	loggerOnce     sync.Once
)

func GetLogger() *logger.Logger {
	loggerOnce.Do(func() {
		loggerInstance, _ = logger.NewLogger()
	})
	return loggerInstance
}

// SetupDependencies creates a new application context with all dependencies
func SetupDependencies(loggerInstance *logger.Logger) (*ApplicationContext, error) {
	// Initialize database with logger
	db, err := postgres.InitPostgresDB(loggerInstance)
	if err != nil {
		return nil, err
	}

	cacheClient, err := cache.NewClient(loggerInstance)
	if err != nil {
		return nil, err
	}

	queueClient, err := queue.NewClient(loggerInstance)
	if err != nil {
		return nil, err
	}

	validator := helper.NewValidator(loggerInstance)
	commonService := common.NewCommonService(validator)

	// Initialize repositories with logger
	emailCorrespondentRepository := correspondentRepo.NewEmailCorrespondentRepository(db, loggerInstance)
	telegramCorrespondentRepository := correspondentRepo.NewTelegramCorrespondentRepository(db, loggerInstance)
	textTemplateRepository := templateRepo.NewTextTemplateRepository(db, loggerInstance)
	messageRepository := messageRepo.NewMessageRepository(db, loggerInstance)
	deliveryRepository := messageRepo.NewDeliveryRepository(db, loggerInstance)

	// Initialize use cases with logger
	emailCorrespondentUC := correspondentUseCase.NewEmailCorrespondentUseCase(emailCorrespondentRepository, loggerInstance)
	telegramCorrespondentUC := correspondentUseCase.NewTelegramCorrespondentUseCase(telegramCorrespondentRepository, loggerInstance)
	textTemplateUC := templateUseCase.NewTextTemplateUseCase(textTemplateRepository, loggerInstance)
	messageUC := messageUseCase.NewMessageUseCase(messageRepository, deliveryRepository, loggerInstance)

	mailSender := mail.NewSMTPSender(loggerInstance)

	sendPipeline := senderUseCase.NewSendPipeline(
		emailCorrespondentRepository,
		textTemplateRepository,
		messageRepository,
		deliveryRepository,
		mailSender,
		cacheClient,
		loggerInstance,
	)

	emailSenderWorker := worker.NewEmailSenderWorker(queueClient, sendPipeline, loggerInstance)

	// Initialize controllers with logger
	emailController := emailCorrespondentController.NewEmailCorrespondentController(commonService, emailCorrespondentUC, loggerInstance)
	telegramController := telegramCorrespondentController.NewTelegramCorrespondentController(commonService, telegramCorrespondentUC, loggerInstance)
	templateController := textTemplateController.NewTextTemplateController(commonService, textTemplateUC, loggerInstance)
	msgController := messageController.NewMessageController(commonService, messageUC, loggerInstance)

	return &ApplicationContext{
		DB:                              db,
		Logger:                          loggerInstance,
		EmailCorrespondentController:    emailController,
		TelegramCorrespondentController: telegramController,
		TextTemplateController:          templateController,
		MessageController:               msgController,
		CommonService:                   commonService,
		EmailCorrespondentRepository:    emailCorrespondentRepository,
		TelegramCorrespondentRepository: telegramCorrespondentRepository,
		TextTemplateRepository:          textTemplateRepository,
		MessageRepository:               messageRepository,
		DeliveryRepository:              deliveryRepository,
		QueueClient:                     queueClient,
		CacheClient:                     cacheClient,
		MailSender:                      mailSender,
		SendPipeline:                    sendPipeline,
		EmailSenderWorker:               emailSenderWorker,
	}, nil
}

// Close releases the context's external connections. Safe to call once
// after the HTTP server and worker have stopped.
func (ac *ApplicationContext) Close() {
	if ac.QueueClient != nil {
		if err := ac.QueueClient.Close(); err != nil {
			ac.Logger.Error("Error closing queue connection", zap.Error(err))
		}
	}
	if ac.CacheClient != nil {
		if err := ac.CacheClient.Close(); err != nil {
			ac.Logger.Error("Error closing cache connection", zap.Error(err))
		}
	}
	if ac.DB != nil {
		if sqlDB, err := ac.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				ac.Logger.Error("Error closing database connection", zap.Error(err))
			}
		}
	}
}

// NewTestApplicationContext creates an application context for testing with mocked dependencies
func NewTestApplicationContext(
	mockEmailCorrespondentRepo correspondentRepo.EmailCorrespondentRepositoryInterface,
	mockTelegramCorrespondentRepo correspondentRepo.TelegramCorrespondentRepositoryInterface,
	mockTextTemplateRepo templateRepo.TextTemplateRepositoryInterface,
	mockMessageRepo messageRepo.MessageRepositoryInterface,
	mockDeliveryRepo messageRepo.DeliveryRepositoryInterface,
	loggerInstance *logger.Logger,
) *ApplicationContext {
	validator := helper.NewValidator(loggerInstance)
	commonService := common.NewCommonService(validator)

	emailCorrespondentUC := correspondentUseCase.NewEmailCorrespondentUseCase(mockEmailCorrespondentRepo, loggerInstance)
	telegramCorrespondentUC := correspondentUseCase.NewTelegramCorrespondentUseCase(mockTelegramCorrespondentRepo, loggerInstance)
	textTemplateUC := templateUseCase.NewTextTemplateUseCase(mockTextTemplateRepo, loggerInstance)
	messageUC := messageUseCase.NewMessageUseCase(mockMessageRepo, mockDeliveryRepo, loggerInstance)

	emailController := emailCorrespondentController.NewEmailCorrespondentController(commonService, emailCorrespondentUC, loggerInstance)
	telegramController := telegramCorrespondentController.NewTelegramCorrespondentController(commonService, telegramCorrespondentUC, loggerInstance)
	templateController := textTemplateController.NewTextTemplateController(commonService, textTemplateUC, loggerInstance)
	msgController := messageController.NewMessageController(commonService, messageUC, loggerInstance)

	return &ApplicationContext{
		Logger:                          loggerInstance,
		EmailCorrespondentController:    emailController,
		TelegramCorrespondentController: telegramController,
		TextTemplateController:          templateController,
		MessageController:               msgController,
		CommonService:                   commonService,
		EmailCorrespondentRepository:    mockEmailCorrespondentRepo,
		TelegramCorrespondentRepository: mockTelegramCorrespondentRepo,
		TextTemplateRepository:          mockTextTemplateRepo,
		MessageRepository:               mockMessageRepo,
		DeliveryRepository:              mockDeliveryRepo,
	}
}
