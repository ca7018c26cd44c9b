package controllers

import (
	"net/http"

	"civicreport-be/dashboard"
	"civicreport-be/middlewares"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardController struct {
	board  *dashboard.Board
	logger *zap.Logger
}

func NewDashboardController(board *dashboard.Board, logger *zap.Logger) *DashboardController {
	return &DashboardController{board: board, logger: logger}
}

// Views lists the dashboards available to the signed-in user
func (dc *DashboardController) Views(c *gin.Context) {
	sess, _ := middlewares.CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{"views": dashboard.ViewsFor(sess.Type)})
}

// View renders one role dashboard with search, filters, sorting and paging
func (dc *DashboardController) View(c *gin.Context) {
	req, err := dashboard.ParseRequest(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	sess, _ := middlewares.CurrentSession(c)
	result, err := dc.board.View(ctx, dashboard.View(c.Param("view")), sess, req)
	if err != nil {
		respondError(c, dc.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
