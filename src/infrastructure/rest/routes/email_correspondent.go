package routes

import (
	"notification-dispatch-api/src/infrastructure/rest/controllers/emailcorrespondent"

	"github.com/gin-gonic/gin"
)

func EmailCorrespondentRoutes(router *gin.RouterGroup, controller emailcorrespondent.IEmailCorrespondentController) {
	route := router.Group("/email_correspondent")
	{
		route.POST("/create", controller.Create)
		route.GET("", controller.GetAll)
		route.PATCH("/update/:id", controller.Update)
		route.DELETE("/delete/:id", controller.Delete)
	}
}
