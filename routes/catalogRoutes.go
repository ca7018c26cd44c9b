package routes

import (
	"civicreport-be/controllers"
	"civicreport-be/middlewares"

	"github.com/gin-gonic/gin"
)

func CatalogRoutes(r *gin.Engine, cc *controllers.CatalogController, mw Middleware) {
	catalog := r.Group("/api/catalog")
	{
		catalog.GET("/municipalities", cc.Municipalities)
		catalog.GET("/categories", cc.Categories)
		catalog.GET("/fleet", mw.Auth, middlewares.RequireStaff(), cc.Fleet)
	}
}
