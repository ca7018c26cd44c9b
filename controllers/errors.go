package controllers

import (
	"errors"
	"net/http"

	"civicreport-be/dashboard"
	"civicreport-be/fleet"
	"civicreport-be/intake"
	"civicreport-be/lifecycle"
	"civicreport-be/municipal"
	"civicreport-be/services"
	"civicreport-be/store"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{store.ErrReportNotFound, http.StatusNotFound},
	{store.ErrConflict, http.StatusConflict},
	{store.ErrEmailTaken, http.StatusConflict},
	{store.ErrDuplicateID, http.StatusConflict},
	{store.ErrDuplicateReference, http.StatusConflict},
	{lifecycle.ErrIllegalTransition, http.StatusUnprocessableEntity},
	{fleet.ErrNoVehicleAvailable, http.StatusConflict},
	{intake.ErrOutOfScope, http.StatusUnprocessableEntity},
	{dashboard.ErrUnknownView, http.StatusNotFound},
	{dashboard.ErrForbidden, http.StatusForbidden},
	{municipal.ErrReferenceExhausted, http.StatusServiceUnavailable},
	{services.ErrFeedbackNotAllowed, http.StatusUnprocessableEntity},
	{services.ErrNoAssigneeAvailable, http.StatusUnprocessableEntity},
	{services.ErrInvalidRating, http.StatusBadRequest},
	{services.ErrEmptyMessage, http.StatusBadRequest},
	{services.ErrUnknownStaff, http.StatusBadRequest},
	{services.ErrUnknownWard, http.StatusBadRequest},
	{services.ErrUnknownMunicipality, http.StatusBadRequest},
	{services.ErrInvalidUserType, http.StatusBadRequest},
	{services.ErrNotReporter, http.StatusForbidden},
	{services.ErrNotMunicipalStaff, http.StatusForbidden},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
}

// respondError writes the JSON error for err. Unexpected errors are logged,
// reported to Sentry and hidden from the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *intake.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report", "fields": verr.Fields})
		return
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": err.Error()})
			return
		}
	}

	logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
