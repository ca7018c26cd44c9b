package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"civicreport-be/dashboard"
	"civicreport-be/export"
	"civicreport-be/intake"
	"civicreport-be/middlewares"
	"civicreport-be/models"
	"civicreport-be/query"
	"civicreport-be/services"
	"civicreport-be/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportController struct {
	reports *services.ReportService
	intake  *intake.Intake
	logger  *zap.Logger
	now     func() time.Time
}

func NewReportController(reports *services.ReportService, in *intake.Intake, logger *zap.Logger) *ReportController {
	return &ReportController{reports: reports, intake: in, logger: logger, now: time.Now}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}

// actor names the signed-in user in communication log entries.
func actor(sess models.Session) string {
	if sess.StaffID != "" {
		return sess.StaffID
	}
	return sess.Email
}

// The form is decoded without binding so partially filled forms reach the
// per-step validator.
func decodeForm(c *gin.Context) (intake.Form, bool) {
	var form intake.Form
	if err := json.NewDecoder(c.Request.Body).Decode(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return intake.Form{}, false
	}
	return form, true
}

// ValidateStep checks one step of the report form
func (rc *ReportController) ValidateStep(c *gin.Context) {
	step, ok := intake.ParseStep(c.Param("step"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown form step"})
		return
	}
	form, ok := decodeForm(c)
	if !ok {
		return
	}

	if fields := rc.intake.ValidateStep(step, form); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step", "step": step, "fields": fields})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step, "valid": true})
}

// Submit handles the creation of a new report from the completed form
func (rc *ReportController) Submit(c *gin.Context) {
	form, ok := decodeForm(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	report, err := rc.intake.Submit(ctx, form)
	if err != nil {
		respondError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// Track lists the reports submitted with an email address, newest first
func (rc *ReportController) Track(c *gin.Context) {
	var input struct {
		Email string `form:"email" binding:"required,email"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	reports, err := rc.reports.Track(ctx, input.Email)
	if err != nil {
		respondError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": input.Email, "reports": reports, "total": len(reports)})
}

// load fetches a report and hides those outside the session's municipality,
// including reports that carry none.
func (rc *ReportController) load(c *gin.Context, ctx context.Context) (models.Report, models.Session, bool) {
	sess, _ := middlewares.CurrentSession(c)
	report, err := rc.reports.Get(ctx, c.Param("id"))
	if err == nil && (report.Municipality == "" || report.Municipality != sess.Municipality.ID) {
		err = store.ErrReportNotFound
	}
	if err != nil {
		respondError(c, rc.logger, err)
		return models.Report{}, sess, false
	}
	return report, sess, true
}

// GetReport retrieves a single report
func (rc *ReportController) GetReport(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	report, _, ok := rc.load(c, ctx)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// UpdateStatus moves a report through its lifecycle
func (rc *ReportController) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := models.ReportStatus(strings.ToLower(input.Status))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	report, sess, ok := rc.load(c, ctx)
	if !ok {
		return
	}
	updated, err := rc.reports.UpdateStatus(ctx, report.ID, status, actor(sess))
	if err != nil {
		respondError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Assign sets the assignee and vehicle of a report
func (rc *ReportController) Assign(c *gin.Context) {
	var input struct {
		AssignedTo  string `json:"assignedTo"`
		VehicleID   string `json:"vehicleId"`
		AutoAssign  bool   `json:"autoAssign"`
		AutoVehicle bool   `json:"autoVehicle"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.AssignedTo == "" && !input.AutoAssign {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignedTo or autoAssign is required"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	report, sess, ok := rc.load(c, ctx)
	if !ok {
		return
	}
	updated, err := rc.reports.Assign(ctx, report.ID, services.AssignRequest{
		AssignedTo:   input.AssignedTo,
		VehicleID:    input.VehicleID,
		AutoAssignee: input.AutoAssign,
		AutoVehicle:  input.AutoVehicle,
		Actor:        actor(sess),
	})
	if err != nil {
		respondError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Escalate raises a report's escalation level
func (rc *ReportController) Escalate(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	report, sess, ok := rc.load(c, ctx)
	if !ok {
		return
	}
	updated, err := rc.reports.Escalate(ctx, report.ID, input.Reason, actor(sess))
	if err != nil {
		respondError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddNote appends a message to the communication log
func (rc *ReportController) AddNote(c *gin.Context) {
	var input struct {
		Message   string `json:"message" binding:"required,max=2000"`
		Recipient string `json:"recipient"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	report, sess, ok := rc.load(c, ctx)
	if !ok {
		return
	}
	updated, err := rc.reports.AddNote(ctx, report.ID, input.Message, actor(sess), input.Recipient)
	if err != nil {
		respondError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, updated)
}

// SubmitFeedback lets the reporter rate a resolved report
func (rc *ReportController) SubmitFeedback(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Rating   int    `json:"rating" binding:"required"`
		Comments string `json:"comments" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := rc.reports.SubmitFeedback(ctx, c.Param("id"), input.Email, input.Rating, input.Comments)
	if err != nil {
		respondError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":               updated.ID,
		"referenceNumber":  updated.ReferenceNumber,
		"feedbackRating":   updated.FeedbackRating,
		"feedbackComments": updated.FeedbackComments,
	})
}

// DeleteReport permanently removes a report
func (rc *ReportController) DeleteReport(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	report, sess, ok := rc.load(c, ctx)
	if !ok {
		return
	}
	if err := rc.reports.Delete(ctx, report.ID, actor(sess)); err != nil {
		respondError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// municipalityReports lists the reports of the session's municipality
// matching the query string filters.
func (rc *ReportController) municipalityReports(c *gin.Context, ctx context.Context) ([]models.Report, bool) {
	req, err := dashboard.ParseRequest(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	sess, _ := middlewares.CurrentSession(c)
	req.Params.Filters["municipality"] = sess.Municipality.ID

	all, err := rc.reports.List(ctx)
	if err != nil {
		respondError(c, rc.logger, err)
		return nil, false
	}
	return query.Apply(all, dashboard.ReportSchema, req.Params), true
}

// Export downloads the filtered reports as CSV
func (rc *ReportController) Export(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	reports, ok := rc.municipalityReports(c, ctx)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(rc.now())+`"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, reports); err != nil {
		rc.logger.Error("csv export failed", zap.Error(err))
		_ = c.Error(err)
	}
}

// Analytics returns totals and monthly trends
func (rc *ReportController) Analytics(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	reports, ok := rc.municipalityReports(c, ctx)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rc.reports.AnalyticsFor(reports))
}

// DepartmentStats returns counts and averages for one department
func (rc *ReportController) DepartmentStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	reports, ok := rc.municipalityReports(c, ctx)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rc.reports.DepartmentStatsFor(c.Param("id"), reports))
}
