package texttemplate

import (
	"errors"
	"net/http"
	"strconv"

	"notification-dispatch-api/src/domain/common"
	domainErrors "notification-dispatch-api/src/domain/errors"
	domainTemplate "notification-dispatch-api/src/domain/template"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type ITextTemplateController interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type TextTemplateController struct {
	commonService       common.CommonService
	textTemplateService domainTemplate.ITextTemplateService
	Logger              *logger.Logger
}

func NewTextTemplateController(
	commonService common.CommonService,
	textTemplateService domainTemplate.ITextTemplateService,
	loggerInstance *logger.Logger,
) ITextTemplateController {
	return &TextTemplateController{
		commonService:       commonService,
		textTemplateService: textTemplateService,
		Logger:              loggerInstance,
	}
}

func (c *TextTemplateController) Create(ctx *gin.Context) {
	var request NewTextTemplateRequest
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

	created, err := c.textTemplateService.Create(&domainTemplate.TextTemplate{
		Code:      request.Code,
		Channel:   domainTemplate.Channel(request.Channel),
		Subject:   request.Subject,
		Content:   request.Content,
		Variables: request.Variables,
	})
	if err != nil {
		c.Logger.Error("Error creating text template", zap.Error(err), zap.String("code", request.Code))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, toResponse(created))
}

func (c *TextTemplateController) GetAll(ctx *gin.Context) {
	query := &domainTemplate.TextTemplateQuery{
		Code:    ctx.Query("code"),
		Channel: domainTemplate.Channel(ctx.Query("channel")),
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

	templates, err := c.textTemplateService.GetAll(query)
	if err != nil {
		c.Logger.Error("Error getting text templates", zap.Error(err))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponseArray(templates))
}

func (c *TextTemplateController) Update(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	var request UpdateTextTemplateRequest
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

	updated, err := c.textTemplateService.Update(id, patch)
	if err != nil {
		c.Logger.Error("Error updating text template", zap.Error(err), zap.String("id", id.String()))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(updated))
}

func (c *TextTemplateController) Delete(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	deleted, err := c.textTemplateService.Delete(id)
	if err != nil {
		c.Logger.Error("Error deleting text template", zap.Error(err), zap.String("id", id.String()))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(deleted))
}
