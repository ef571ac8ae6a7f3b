package message

import (
	"errors"
	"net/http"

	"notification-dispatch-api/src/domain/common"
	domainErrors "notification-dispatch-api/src/domain/errors"
	domainMessage "notification-dispatch-api/src/domain/message"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type IMessageController interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetStatus(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type MessageController struct {
	commonService  common.CommonService
	messageService domainMessage.IMessageService
	Logger         *logger.Logger
}

func NewMessageController(
	commonService common.CommonService,
	messageService domainMessage.IMessageService,
	loggerInstance *logger.Logger,
) IMessageController {
	return &MessageController{
		commonService:  commonService,
		messageService: messageService,
		Logger:         loggerInstance,
	}
}

func (c *MessageController) Create(ctx *gin.Context) {
	var request NewMessageRequest
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

	msg, err := request.toDomain()
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	created, err := c.messageService.Create(msg)
	if err != nil {
		c.Logger.Error("Error creating message", zap.Error(err))
		_ = ctx.Error(err)
		return
	}

	c.Logger.Info("Message created", zap.String("id", created.ID.String()))
	ctx.JSON(http.StatusCreated, toResponse(created))
}

func (c *MessageController) GetAll(ctx *gin.Context) {
	query := &domainMessage.MessageQuery{
		Status: domainMessage.MessageStatus(ctx.Query("status")),
	}
	if rawID := ctx.Query("id"); rawID != "" {
		id, err := uuid.FromString(rawID)
		if err != nil {
			_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
			return
		}
		query.ID = &id
	}

	messages, err := c.messageService.GetAll(query)
	if err != nil {
		c.Logger.Error("Error getting messages", zap.Error(err))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponseArray(messages))
}

func (c *MessageController) GetStatus(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	msg, err := c.messageService.GetByID(id)
	if err != nil {
		c.Logger.Error("Error getting message status", zap.Error(err), zap.String("id", id.String()))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(msg))
}

func (c *MessageController) Delete(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	if err := c.messageService.Delete(id); err != nil {
		c.Logger.Error("Error deleting message", zap.Error(err), zap.String("id", id.String()))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id.String(), "deleted": true})
}
