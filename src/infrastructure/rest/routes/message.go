package routes

import (
	"notification-dispatch-api/src/infrastructure/rest/controllers/message"

	"github.com/gin-gonic/gin"
)

func MessageRoutes(router *gin.RouterGroup, controller message.IMessageController) {
	route := router.Group("/message")
	{
		route.POST("/create", controller.Create)
		route.GET("", controller.GetAll)
		route.GET("/:id/status", controller.GetStatus)
		route.DELETE("/delete/:id", controller.Delete)
	}
}
