package routes

import (
	"civicreport-be/controllers"
	"civicreport-be/middlewares"

	"github.com/gin-gonic/gin"
)

// DashboardRoutes sets up the role dashboards and staff directory
func DashboardRoutes(r *gin.Engine, dc *controllers.DashboardController, sc *controllers.StaffController, mw Middleware) {
	dashboards := r.Group("/api/dashboards", mw.Auth)
	{
		dashboards.GET("", dc.Views)
		dashboards.GET("/:view", dc.View)
	}

	r.GET("/api/staff", mw.Auth, middlewares.RequireStaff(), sc.ListStaff)
}
