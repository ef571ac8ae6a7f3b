package routes

import (
	"net/http"

	"notification-dispatch-api/src/infrastructure/di"

	"github.com/gin-gonic/gin"
)

func ApplicationRouter(router *gin.Engine, appContext *di.ApplicationContext) {
	v1 := router.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Service is running",
		})
	})

	EmailCorrespondentRoutes(v1, appContext.EmailCorrespondentController)
	TelegramCorrespondentRoutes(v1, appContext.TelegramCorrespondentController)
	TextTemplateRoutes(v1, appContext.TextTemplateController)
	MessageRoutes(v1, appContext.MessageController)
}
