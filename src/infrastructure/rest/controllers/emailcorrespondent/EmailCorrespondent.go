package emailcorrespondent

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

type IEmailCorrespondentController interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type EmailCorrespondentController struct {
	commonService             common.CommonService
	emailCorrespondentService domainCorrespondent.IEmailCorrespondentService
	Logger                    *logger.Logger
}

func NewEmailCorrespondentController(
	commonService common.CommonService,
	emailCorrespondentService domainCorrespondent.IEmailCorrespondentService,
	loggerInstance *logger.Logger,
) IEmailCorrespondentController {
	return &EmailCorrespondentController{
		commonService:             commonService,
		emailCorrespondentService: emailCorrespondentService,
		Logger:                    loggerInstance,
	}
}

func (c *EmailCorrespondentController) Create(ctx *gin.Context) {
	var request NewEmailCorrespondentRequest
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

	created, err := c.emailCorrespondentService.Create(&domainCorrespondent.EmailCorrespondent{
		Name:     request.Name,
		Host:     request.Host,
		Port:     request.Port,
		Username: request.Username,
		Password: request.Password,
	})
	if err != nil {
		c.Logger.Error("Error creating email correspondent", zap.Error(err), zap.String("name", request.Name))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, toResponse(created))
}

func (c *EmailCorrespondentController) GetAll(ctx *gin.Context) {
	query := &domainCorrespondent.EmailCorrespondentQuery{
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

	correspondents, err := c.emailCorrespondentService.GetAll(query)
	if err != nil {
		c.Logger.Error("Error getting email correspondents", zap.Error(err))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponseArray(correspondents))
}

func (c *EmailCorrespondentController) Update(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	var request UpdateEmailCorrespondentRequest
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

	updated, err := c.emailCorrespondentService.Update(id, patch)
	if err != nil {
		c.Logger.Error("Error updating email correspondent", zap.Error(err), zap.String("id", id.String()))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(updated))
}

func (c *EmailCorrespondentController) Delete(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	deleted, err := c.emailCorrespondentService.Delete(id)
	if err != nil {
		c.Logger.Error("Error deleting email correspondent", zap.Error(err), zap.String("id", id.String()))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(deleted))
}
