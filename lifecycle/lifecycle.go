// Package lifecycle defines which report status changes are legal.
package lifecycle

import (
	"errors"
	"fmt"

	"civicreport-be/models"
)

var ErrIllegalTransition = errors.New("illegal status transition")

// TransitionError describes a rejected status change.
type TransitionError struct {
	From models.ReportStatus
	To   models.ReportStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move report from %q to %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// pending -> assigned -> in-progress -> {resolved, cancelled} -> closed, with
// review and reopen edges. "escalated" is kept for older records; escalation
// itself is tracked on Report.EscalationLevel.
var transitions = map[models.ReportStatus][]models.ReportStatus{
	models.StatusNew:           {models.StatusPending, models.StatusAssigned, models.StatusInProgress, models.StatusCancelled, models.StatusEscalated},
	models.StatusPending:       {models.StatusAssigned, models.StatusInProgress, models.StatusCancelled, models.StatusEscalated},
	models.StatusAssigned:      {models.StatusPending, models.StatusInProgress, models.StatusCancelled, models.StatusEscalated},
	models.StatusInProgress:    {models.StatusAssigned, models.StatusPendingReview, models.StatusResolved, models.StatusCompleted, models.StatusCancelled, models.StatusEscalated},
	models.StatusPendingReview: {models.StatusInProgress, models.StatusResolved, models.StatusCompleted},
	models.StatusResolved:      {models.StatusInProgress, models.StatusCompleted, models.StatusClosed},
	models.StatusCompleted:     {models.StatusInProgress, models.StatusClosed},
	models.StatusCancelled:     {models.StatusPending, models.StatusClosed},
	models.StatusEscalated:     {models.StatusAssigned, models.StatusInProgress, models.StatusCancelled},
	models.StatusClosed:        {},
}

// CanTransition reports whether a report may move from one status to
// another. Re-applying the current status is always allowed.
func CanTransition(from, to models.ReportStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Check returns a *TransitionError when the move is not allowed.
func Check(from, to models.ReportStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	return &TransitionError{From: from, To: to}
}

// Next lists the statuses reachable from the given one.
func Next(from models.ReportStatus) []models.ReportStatus {
	return append([]models.ReportStatus(nil), transitions[from]...)
}

// CanAssign is true while the report can still take an assignee. Terminal
// reports must be reopened through a status change first.
func CanAssign(status models.ReportStatus) bool {
	return !status.IsTerminal() && CanTransition(status, models.StatusInProgress)
}
