package routes

import (
	"notification-dispatch-api/src/infrastructure/rest/controllers/texttemplate"

	"github.com/gin-gonic/gin"
)

func TextTemplateRoutes(router *gin.RouterGroup, controller texttemplate.ITextTemplateController) {
	route := router.Group("/text_template")
	{
		route.POST("/create", controller.Create)
		route.GET("", controller.GetAll)
		route.PATCH("/update/:id", controller.Update)
		route.DELETE("/delete/:id", controller.Delete)
	}
}
