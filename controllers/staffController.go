package controllers

import (
	"net/http"

	"civicreport-be/middlewares"
	"civicreport-be/models"
	"civicreport-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StaffController struct {
	staff  *services.StaffService
	logger *zap.Logger
}

func NewStaffController(staff *services.StaffService, logger *zap.Logger) *StaffController {
	return &StaffController{staff: staff, logger: logger}
}

// ListStaff returns staff with their open workload. Department heads only
// see their own department.
func (sc *StaffController) ListStaff(c *gin.Context) {
	department := c.Query("department")
	if sess, ok := middlewares.CurrentSession(c); ok && sess.Type == models.UserDepartmentHead {
		department = sess.DepartmentID
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	staff, err := sc.staff.List(ctx, department)
	if err != nil {
		respondError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff, "total": len(staff)})
}
