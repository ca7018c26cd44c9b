package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"civicreport-be/catalog"
	"civicreport-be/fleet"
	"civicreport-be/lifecycle"
	"civicreport-be/models"
	"civicreport-be/municipal"
	"civicreport-be/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxWriteAttempts     = 3
	maxReferenceAttempts = 5
)

var (
	ErrFeedbackNotAllowed  = errors.New("feedback can only be left on resolved reports")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrNotReporter         = errors.New("email does not match the reporter")
	ErrUnknownStaff        = errors.New("unknown staff member")
	ErrNoAssigneeAvailable = errors.New("no eligible staff member in the department")
	ErrEmptyMessage        = errors.New("message is required")
)

// Dispatcher reserves fleet vehicles for reports.
type Dispatcher interface {
	Dispatch(ctx context.Context, municipalityID, departmentID string, category models.Category, reportID string) (models.FleetVehicle, error)
	Claim(ctx context.Context, municipalityID, vehicleID, reportID string) (models.FleetVehicle, error)
	Release(ctx context.Context, vehicleID, reportID string) error
}

// ReportService applies the report lifecycle on top of a ReportStore.
// Every write is a read-modify-write retried on version conflicts.
type ReportService struct {
	reports    store.ReportStore
	catalog    *catalog.Catalog
	dispatcher Dispatcher
	refs       *municipal.ReferenceGenerator
	logger     *zap.Logger
	now        func() time.Time
}

type ReportServiceOption func(*ReportService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ReportServiceOption {
	return func(s *ReportService) { s.now = now }
}

func WithReferenceGenerator(g *municipal.ReferenceGenerator) ReportServiceOption {
	return func(s *ReportService) { s.refs = g }
}

func NewReportService(reports store.ReportStore, cat *catalog.Catalog, dispatcher Dispatcher, logger *zap.Logger, opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		reports:    reports,
		catalog:    cat,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.refs == nil {
		s.refs = municipal.NewReferenceGenerator(nil, s.now)
	}
	return s
}

func (s *ReportService) Catalog() *catalog.Catalog { return s.catalog }

func (s *ReportService) entry(kind models.EntryType, message, sender, recipient string) models.CommunicationEntry {
	return models.CommunicationEntry{
		ID:        uuid.NewString(),
		Type:      kind,
		Message:   message,
		Sender:    sender,
		Recipient: recipient,
		Timestamp: s.now().UTC(),
	}
}

// Create stores a new report. Identity, timestamps, status and derived
// classification are filled in here; no deduplication is done.
func (s *ReportService) Create(ctx context.Context, r models.Report) (models.Report, error) {
	now := s.now().UTC()

	r.ID = uuid.NewString()
	r.Status = models.StatusPending
	r.Priority = r.Priority.Normalize()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.ActualResolutionTime = nil
	r.ClosedAt = nil
	r.FeedbackRating = nil

	if r.AssignedDepartment == "" {
		r.AssignedDepartment = municipal.AssignDepartment(r.Category)
	}
	if r.EstimatedResolution == "" {
		r.EstimatedResolution = municipal.GetExpectedResolutionTime(s.catalog.Categories, r.Category, r.Priority)
	}

	// The existence check and the insert are not atomic, so a reference
	// taken in between is regenerated. A caller-supplied reference is kept.
	generate := r.ReferenceNumber == ""
	var created models.Report
	for attempt := 0; ; attempt++ {
		if generate {
			ref, err := s.refs.Next(ctx, r.Category, r.Ward, s.reports.ReferenceExists)
			if err != nil {
				return models.Report{}, err
			}
			r.ReferenceNumber = ref
		}
		r.CommunicationLog = []models.CommunicationEntry{
			s.entry(models.EntrySystem,
				fmt.Sprintf("Report %s received and routed to %s. Expected resolution: %s.", r.ReferenceNumber, r.AssignedDepartment, r.EstimatedResolution),
				"system", r.ReporterEmail),
		}

		var err error
		created, err = s.reports.Create(ctx, r)
		if err == nil {
			break
		}
		if !generate || !errors.Is(err, store.ErrDuplicateReference) {
			return models.Report{}, err
		}
		if attempt+1 >= maxReferenceAttempts {
			return models.Report{}, municipal.ErrReferenceExhausted
		}
		s.logger.Debug("reference taken at insert, regenerating", zap.String("reference", r.ReferenceNumber))
	}
	s.logger.Info("report created",
		zap.String("id", created.ID),
		zap.String("reference", created.ReferenceNumber),
		zap.String("category", string(created.Category)),
		zap.String("department", created.AssignedDepartment))
	return created, nil
}

func (s *ReportService) Get(ctx context.Context, id string) (models.Report, error) {
	return s.reports.Get(ctx, id)
}

func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	return s.reports.List(ctx)
}

// Track returns a reporter's reports, newest first.
func (s *ReportService) Track(ctx context.Context, email string) ([]models.Report, error) {
	all, err := s.reports.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Report, 0)
	for _, r := range all {
		if r.ReporterEmail != "" && strings.EqualFold(r.ReporterEmail, email) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Report) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (s *ReportService) mutate(ctx context.Context, id string, fn func(*models.Report) error) (models.Report, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		r, err := s.reports.Get(ctx, id)
		if err != nil {
			return models.Report{}, err
		}
		if err := fn(&r); err != nil {
			return models.Report{}, err
		}
		updated, err := s.reports.Update(ctx, r)
		if errors.Is(err, store.ErrConflict) {
			s.logger.Debug("report write conflict, retrying", zap.String("id", id), zap.Int("attempt", attempt+1))
			continue
		}
		return updated, err
	}
	return models.Report{}, store.ErrConflict
}

// applyStatus moves r to status and stamps the one-time resolution fields.
// Leaving a terminal or resolved status clears the matching stamp.
func (s *ReportService) applyStatus(r *models.Report, status models.ReportStatus) error {
	if err := lifecycle.Check(r.Status, status); err != nil {
		return err
	}
	now := s.now().UTC()
	// a reopened report is no longer closed or resolved
	if r.Status.IsTerminal() && !status.IsTerminal() {
		r.ClosedAt = nil
	}
	if r.Status.IsResolved() && !status.IsResolved() {
		r.ActualResolutionTime = nil
	}
	r.Status = status
	r.UpdatedAt = now
	if status.IsResolved() && r.ActualResolutionTime == nil {
		r.ActualResolutionTime = &now
	}
	if status.IsTerminal() && r.ClosedAt == nil {
		r.ClosedAt = &now
	}
	return nil
}

// UpdateStatus moves a report to a new status if the lifecycle allows it.
func (s *ReportService) UpdateStatus(ctx context.Context, id string, status models.ReportStatus, actor string) (models.Report, error) {
	var previous models.ReportStatus
	updated, err := s.mutate(ctx, id, func(r *models.Report) error {
		previous = r.Status
		if err := s.applyStatus(r, status); err != nil {
			return err
		}
		r.CommunicationLog = append(r.CommunicationLog, s.entry(models.EntryStatusChange,
			fmt.Sprintf("Status changed from %s to %s.", previous, status), actor, r.ReporterEmail))
		return nil
	})
	if err != nil {
		return models.Report{}, err
	}

	if status.IsTerminal() && updated.AssignedVehicle != "" {
		s.releaseVehicle(ctx, updated.AssignedVehicle, updated.ID)
	}
	s.logger.Info("report status changed",
		zap.String("id", id), zap.String("from", string(previous)), zap.String("to", string(status)), zap.String("actor", actor))
	return updated, nil
}

type AssignRequest struct {
	AssignedTo   string
	VehicleID    string
	AutoAssignee bool
	AutoVehicle  bool
	Actor        string
}

// Assign sets the assignee and optionally a vehicle, and forces the report
// into progress.
func (s *ReportService) Assign(ctx context.Context, id string, req AssignRequest) (models.Report, error) {
	current, err := s.reports.Get(ctx, id)
	if err != nil {
		return models.Report{}, err
	}
	if !lifecycle.CanAssign(current.Status) {
		return models.Report{}, &lifecycle.TransitionError{From: current.Status, To: models.StatusInProgress}
	}

	assignee, err := s.resolveAssignee(ctx, current, req)
	if err != nil {
		return models.Report{}, err
	}

	vehicle := ""
	switch {
	case req.VehicleID != "":
		v, err := s.dispatcher.Claim(ctx, current.Municipality, req.VehicleID, id)
		if err != nil {
			return models.Report{}, err
		}
		vehicle = v.ID
	case req.AutoVehicle:
		v, err := s.dispatcher.Dispatch(ctx, current.Municipality, current.AssignedDepartment, current.Category, id)
		if err != nil && !errors.Is(err, fleet.ErrNoVehicleAvailable) {
			return models.Report{}, err
		}
		if err != nil {
			s.logger.Warn("no vehicle available, assigning without one",
				zap.String("id", id), zap.String("department", current.AssignedDepartment))
		}
		vehicle = v.ID
	}

	var previousVehicle string
	updated, err := s.mutate(ctx, id, func(r *models.Report) error {
		previousVehicle = r.AssignedVehicle
		if err := s.applyStatus(r, models.StatusInProgress); err != nil {
			return err
		}
		r.AssignedTo = assignee.ID
		if vehicle != "" {
			r.AssignedVehicle = vehicle
		}
		msg := fmt.Sprintf("Assigned to %s.", assignee.Name)
		if r.AssignedVehicle != "" {
			msg = fmt.Sprintf("Assigned to %s with vehicle %s.", assignee.Name, r.AssignedVehicle)
		}
		r.CommunicationLog = append(r.CommunicationLog, s.entry(models.EntryAssignment, msg, req.Actor, assignee.ID))
		return nil
	})
	if err != nil {
		if vehicle != "" && vehicle != current.AssignedVehicle {
			s.releaseVehicle(ctx, vehicle, id)
		}
		return models.Report{}, err
	}
	if vehicle != "" && previousVehicle != "" && previousVehicle != vehicle {
		s.releaseVehicle(ctx, previousVehicle, id)
	}

	s.logger.Info("report assigned",
		zap.String("id", id), zap.String("assignee", assignee.ID), zap.String("vehicle", updated.AssignedVehicle))
	return updated, nil
}

func (s *ReportService) resolveAssignee(ctx context.Context, r models.Report, req AssignRequest) (models.Staff, error) {
	if req.AssignedTo != "" {
		staff, ok := s.catalog.StaffMember(req.AssignedTo)
		if !ok {
			return models.Staff{}, ErrUnknownStaff
		}
		return staff, nil
	}
	if !req.AutoAssignee {
		return models.Staff{}, ErrUnknownStaff
	}

	all, err := s.reports.List(ctx)
	if err != nil {
		return models.Staff{}, err
	}
	staff, ok := municipal.FindBestAssignee(r.AssignedDepartment, s.catalog.Staff, all)
	if !ok {
		return models.Staff{}, ErrNoAssigneeAvailable
	}
	return staff, nil
}

func (s *ReportService) releaseVehicle(ctx context.Context, vehicleID, reportID string) {
	if err := s.dispatcher.Release(ctx, vehicleID, reportID); err != nil {
		s.logger.Error("failed to release vehicle", zap.String("vehicle", vehicleID), zap.String("report", reportID), zap.Error(err))
	}
}

// Delete removes the report permanently.
func (s *ReportService) Delete(ctx context.Context, id string, actor string) error {
	r, err := s.reports.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	if r.AssignedVehicle != "" {
		s.releaseVehicle(ctx, r.AssignedVehicle, id)
	}
	s.logger.Info("report deleted", zap.String("id", id), zap.String("reference", r.ReferenceNumber), zap.String("actor", actor))
	return nil
}

// Escalate raises the escalation level without changing the status.
func (s *ReportService) Escalate(ctx context.Context, id, reason, actor string) (models.Report, error) {
	return s.mutate(ctx, id, func(r *models.Report) error {
		if !r.Status.IsOpen() {
			return &lifecycle.TransitionError{From: r.Status, To: models.StatusEscalated}
		}
		r.EscalationLevel++
		r.UpdatedAt = s.now().UTC()
		msg := fmt.Sprintf("Escalated to level %d.", r.EscalationLevel)
		if reason = strings.TrimSpace(reason); reason != "" {
			msg += " Reason: " + reason
		}
		r.CommunicationLog = append(r.CommunicationLog, s.entry(models.EntryEscalation, msg, actor, r.AssignedDepartment))
		return nil
	})
}

// AddNote appends a free-text entry to the communication log.
func (s *ReportService) AddNote(ctx context.Context, id, message, sender, recipient string) (models.Report, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Report{}, ErrEmptyMessage
	}
	return s.mutate(ctx, id, func(r *models.Report) error {
		r.UpdatedAt = s.now().UTC()
		r.CommunicationLog = append(r.CommunicationLog, s.entry(models.EntryNote, message, sender, recipient))
		return nil
	})
}

// SubmitFeedback records the reporter's rating once the issue is resolved.
func (s *ReportService) SubmitFeedback(ctx context.Context, id, email string, rating int, comments string) (models.Report, error) {
	if rating < 1 || rating > 5 {
		return models.Report{}, ErrInvalidRating
	}
	return s.mutate(ctx, id, func(r *models.Report) error {
		if !strings.EqualFold(r.ReporterEmail, email) || email == "" {
			return ErrNotReporter
		}
		if !r.Status.IsResolved() {
			return ErrFeedbackNotAllowed
		}
		r.FeedbackRating = &rating
		r.FeedbackComments = strings.TrimSpace(comments)
		r.UpdatedAt = s.now().UTC()
		r.CommunicationLog = append(r.CommunicationLog, s.entry(models.EntryFeedback,
			fmt.Sprintf("Citizen rated the resolution %d/5.", rating), email, r.AssignedDepartment))
		return nil
	})
}

func (s *ReportService) DepartmentStats(ctx context.Context, departmentID string) (models.DepartmentStats, error) {
	all, err := s.reports.List(ctx)
	if err != nil {
		return models.DepartmentStats{}, err
	}
	return s.DepartmentStatsFor(departmentID, all), nil
}

// DepartmentStatsFor computes statistics over an already filtered collection.
func (s *ReportService) DepartmentStatsFor(departmentID string, reports []models.Report) models.DepartmentStats {
	return municipal.CalculateDepartmentStats(departmentID, reports)
}

func (s *ReportService) Analytics(ctx context.Context) (models.ReportAnalytics, error) {
	all, err := s.reports.List(ctx)
	if err != nil {
		return models.ReportAnalytics{}, err
	}
	return s.AnalyticsFor(all), nil
}

func (s *ReportService) AnalyticsFor(reports []models.Report) models.ReportAnalytics {
	return municipal.GenerateReportAnalytics(reports, s.now())
}
