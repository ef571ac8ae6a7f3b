package telegramcorrespondent

import (
	"errors"
	"net/http"
	"strconv"

	"notification-dispatch-api/src/domain/common"
	domainCorrespondent "notification-dispatch-api/src/domain/correspondent"
	domainErrors "notification-dispatch-api/src/domain/errors"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type ITelegramCorrespondentController interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type TelegramCorrespondentController struct {
	commonService                common.CommonService
	telegramCorrespondentService domainCorrespondent.ITelegramCorrespondentService
	Logger                       *logger.Logger
}

func NewTelegramCorrespondentController(
	commonService common.CommonService,
	telegramCorrespondentService domainCorrespondent.ITelegramCorrespondentService,
	loggerInstance *logger.Logger,
) ITelegramCorrespondentController {
	return &TelegramCorrespondentController{
		commonService:                commonService,
		telegramCorrespondentService: telegramCorrespondentService,
		Logger:                       loggerInstance,
	}
}

func (c *TelegramCorrespondentController) Create(ctx *gin.Context) {
	var request NewTelegramCorrespondentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		c.Logger.Error("Couldn't process request - invalid request", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	created, err := c.telegramCorrespondentService.Create(&domainCorrespondent.TelegramCorrespondent{
		Name:     request.Name,
		BotToken: request.BotToken,
	})
	if err != nil {
		c.Logger.Error("Error creating telegram correspondent", zap.Error(err), zap.String("name", request.Name))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, toResponse(created))
}

func (c *TelegramCorrespondentController) GetAll(ctx *gin.Context) {
	query := &domainCorrespondent.TelegramCorrespondentQuery{
		Name: ctx.Query("name"),
	}
	if rawID := ctx.Query("id"); rawID != "" {
		id, err := uuid.FromString(rawID)
		if err != nil {
			_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
			return
		}
		query.ID = &id
	}
	if rawActive := ctx.Query("isActive"); rawActive != "" {
		isActive, err := strconv.ParseBool(rawActive)
		if err != nil {
			_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
			return
		}
		query.IsActive = &isActive
	}

	correspondents, err := c.telegramCorrespondentService.GetAll(query)
	if err != nil {
		c.Logger.Error("Error getting telegram correspondents", zap.Error(err))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponseArray(correspondents))
}

func (c *TelegramCorrespondentController) Update(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	var request UpdateTelegramCorrespondentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		c.Logger.Error("Couldn't process request - invalid request", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	patch := request.toPatchMap()
	if len(patch) == 0 {
		_ = ctx.Error(domainErrors.NewAppErrorWithType(domainErrors.ValidationError))
		return
	}

	updated, err := c.telegramCorrespondentService.Update(id, patch)
	if err != nil {
		c.Logger.Error("Error updating telegram correspondent", zap.Error(err), zap.String("id", id.String()))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(updated))
}

func (c *TelegramCorrespondentController) Delete(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	deleted, err := c.telegramCorrespondentService.Delete(id)
	if err != nil {
		c.Logger.Error("Error deleting telegram correspondent", zap.Error(err), zap.String("id", id.String()))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(deleted))
}
