package routes

import (
	"civicreport-be/controllers"
	"civicreport-be/middlewares"
	"civicreport-be/models"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up intake, tracking and report management routes
func ReportRoutes(r *gin.Engine, rc *controllers.ReportController, mw Middleware) {
	staff := middlewares.RequireStaff()
	dispatchers := middlewares.RequireRoles(models.UserCallCenter, models.UserDepartmentHead, models.UserMunicipalAdmin)
	managers := middlewares.RequireRoles(models.UserDepartmentHead, models.UserMunicipalAdmin)

	report := r.Group("/api/reports")
	{
		report.POST("/steps/:step", rc.ValidateStep)
		report.POST("", mw.OptionalAuth, mw.ReportLimit, rc.Submit)
		report.GET("/track", rc.Track)
		report.GET("/export", mw.Auth, staff, rc.Export)

		report.GET("/:id", mw.Auth, staff, rc.GetReport)
		report.PATCH("/:id/status", mw.Auth, staff, rc.UpdateStatus)
		report.POST("/:id/assign", mw.Auth, dispatchers, rc.Assign)
		report.POST("/:id/escalate", mw.Auth, staff, rc.Escalate)
		report.POST("/:id/notes", mw.Auth, staff, rc.AddNote)
		report.POST("/:id/feedback", rc.SubmitFeedback)
		report.DELETE("/:id", mw.Auth, managers, rc.DeleteReport)
	}

	r.GET("/api/analytics", mw.Auth, staff, rc.Analytics)
	r.GET("/api/departments/:id/stats", mw.Auth, staff, rc.DepartmentStats)
}
