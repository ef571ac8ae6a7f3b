package routes

import (
	"notification-dispatch-api/src/infrastructure/rest/controllers/telegramcorrespondent"

	"github.com/gin-gonic/gin"
)

func TelegramCorrespondentRoutes(router *gin.RouterGroup, controller telegramcorrespondent.ITelegramCorrespondentController) {
	route := router.Group("/telegram_correspondent")
	{
		route.POST("/create", controller.Create)
		route.GET("", controller.GetAll)
		route.PATCH("/update/:id", controller.Update)
		route.DELETE("/delete/:id", controller.Delete)
	}
}
