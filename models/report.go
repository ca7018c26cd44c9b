package models

import (
	"strings"
	"time"
)

// Category identifies a fixed issue type
type Category string

const (
	CategoryWater       Category = "water-issues"
	CategoryRoads       Category = "roads-transport"
	CategoryElectricity Category = "electricity"
	CategoryWaste       Category = "waste-management"
	CategoryCrime       Category = "crime-security"
	CategoryParks       Category = "parks-recreation"
	CategoryHousing     Category = "housing"
	CategoryHealth      Category = "health-services"
	CategoryTraffic     Category = "traffic-signals"
	CategoryBuilding    Category = "building-planning"
	CategoryEnvironment Category = "environmental"
	CategoryOther       Category = "other"
)

// Priority is ordered: low < medium < high < emergency
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityEmergency Priority = "emergency"

	// PriorityUrgent is accepted on input and normalized to PriorityEmergency.
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities; unknown values rank below low.
func (p Priority) Rank() int {
	switch p.Normalize() {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityEmergency:
		return 4
	}
	return 0
}

// Normalize lowercases the value and folds urgent into emergency.
func (p Priority) Normalize() Priority {
	v := Priority(strings.ToLower(strings.TrimSpace(string(p))))
	if v == PriorityUrgent {
		return PriorityEmergency
	}
	return v
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ReportStatus enum
type ReportStatus string

const (
	StatusNew           ReportStatus = "new"
	StatusPending       ReportStatus = "pending"
	StatusAssigned      ReportStatus = "assigned"
	StatusInProgress    ReportStatus = "in-progress"
	StatusPendingReview ReportStatus = "pending-review"
	StatusResolved      ReportStatus = "resolved"
	StatusCompleted     ReportStatus = "completed"
	StatusCancelled     ReportStatus = "cancelled"
	StatusClosed        ReportStatus = "closed"
	StatusEscalated     ReportStatus = "escalated"
)

var AllStatuses = []ReportStatus{
	StatusNew, StatusPending, StatusAssigned, StatusInProgress, StatusPendingReview,
	StatusResolved, StatusCompleted, StatusCancelled, StatusClosed, StatusEscalated,
}

func (s ReportStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsOpen reports whether work on the report is still outstanding.
func (s ReportStatus) IsOpen() bool {
	switch s {
	case StatusNew, StatusPending, StatusAssigned, StatusInProgress, StatusPendingReview, StatusEscalated:
		return true
	}
	return false
}

// IsResolved is true for statuses that count as the issue being fixed.
func (s ReportStatus) IsResolved() bool {
	return s == StatusResolved || s == StatusCompleted || s == StatusClosed
}

// IsTerminal is true when no further work will be done.
func (s ReportStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusClosed || s == StatusCancelled
}

// EntryType classifies communication log entries
type EntryType string

const (
	EntryStatusChange EntryType = "status-change"
	EntryAssignment   EntryType = "assignment"
	EntryNote         EntryType = "note"
	EntryEscalation   EntryType = "escalation"
	EntryFeedback     EntryType = "feedback"
	EntrySystem       EntryType = "system"
)

// CommunicationEntry is one append-only audit record on a report
type CommunicationEntry struct {
	ID        string    `bson:"id" json:"id"`
	Type      EntryType `bson:"type" json:"type"`
	Message   string    `bson:"message" json:"message"`
	Sender    string    `bson:"sender" json:"sender"`
	Recipient string    `bson:"recipient,omitempty" json:"recipient,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Report represents a civic issue submitted by a citizen
type Report struct {
	ID              string   `bson:"_id" json:"id"`
	ReferenceNumber string   `bson:"referenceNumber" json:"referenceNumber"`
	Title           string   `bson:"title" json:"title"`
	Description     string   `bson:"description" json:"description"`
	Category        Category `bson:"category" json:"category"`
	Subcategory     string   `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Priority        Priority `bson:"priority" json:"priority"`

	Status          ReportStatus `bson:"status" json:"status"`
	EscalationLevel int          `bson:"escalationLevel" json:"escalationLevel"`

	Location     string   `bson:"location" json:"location"`
	Ward         string   `bson:"ward" json:"ward"`
	Municipality string   `bson:"municipality" json:"municipality"`
	Latitude     *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`

	ReporterName  string `bson:"reporterName,omitempty" json:"reporterName,omitempty"`
	ReporterEmail string `bson:"reporterEmail,omitempty" json:"reporterEmail,omitempty"`
	ReporterPhone string `bson:"reporterPhone,omitempty" json:"reporterPhone,omitempty"`

	AssignedDepartment string `bson:"assignedDepartment,omitempty" json:"assignedDepartment,omitempty"`
	AssignedTo         string `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedVehicle    string `bson:"assignedVehicle,omitempty" json:"assignedVehicle,omitempty"`

	EstimatedResolution  string     `bson:"estimatedResolution" json:"estimatedResolution"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`
	ActualResolutionTime *time.Time `bson:"actualResolutionTime,omitempty" json:"actualResolutionTime,omitempty"`
	ClosedAt             *time.Time `bson:"closedAt,omitempty" json:"closedAt,omitempty"`

	CommunicationLog []CommunicationEntry `bson:"communicationLog" json:"communicationLog"`

	FeedbackRating   *int   `bson:"feedbackRating,omitempty" json:"feedbackRating,omitempty"`
	FeedbackComments string `bson:"feedbackComments,omitempty" json:"feedbackComments,omitempty"`

	// Version is bumped by the store on every successful write.
	Version int64 `bson:"version" json:"version"`
}

// Clone returns a copy that shares no mutable state with r.
func (r Report) Clone() Report {
	c := r
	if r.CommunicationLog != nil {
		c.CommunicationLog = append([]CommunicationEntry(nil), r.CommunicationLog...)
	}
	if r.ActualResolutionTime != nil {
		t := *r.ActualResolutionTime
		c.ActualResolutionTime = &t
	}
	if r.ClosedAt != nil {
		t := *r.ClosedAt
		c.ClosedAt = &t
	}
	if r.FeedbackRating != nil {
		v := *r.FeedbackRating
		c.FeedbackRating = &v
	}
	if r.Latitude != nil {
		v := *r.Latitude
		c.Latitude = &v
	}
	if r.Longitude != nil {
		v := *r.Longitude
		c.Longitude = &v
	}
	return c
}

// ResolutionHours is the elapsed time from creation to resolution, or false
// when the report has no resolution timestamp.
func (r Report) ResolutionHours() (float64, bool) {
	if r.ActualResolutionTime == nil {
		return 0, false
	}
	return r.ActualResolutionTime.Sub(r.CreatedAt).Hours(), true
}
