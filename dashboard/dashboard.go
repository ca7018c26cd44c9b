// Package dashboard builds the role-specific report listings. Every view is
// a scope predicate for the signed-in user followed by query.Apply over
// ReportSchema.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"civicreport-be/models"
	"civicreport-be/query"
)

var (
	ErrUnknownView = errors.New("unknown dashboard view")
	ErrForbidden   = errors.New("this dashboard is not available for your role")
)

type View string

const (
	ViewCitizen        View = "citizen"
	ViewCallCenter     View = "call-center"
	ViewFieldWorker    View = "field-worker"
	ViewWardCouncillor View = "ward-councillor"
	ViewMunicipal      View = "municipal"
	ViewDepartment     View = "department"
)

var viewRoles = map[View][]models.UserType{
	ViewCitizen:        {models.UserCitizen, models.UserCallCenter, models.UserFieldWorker, models.UserWardCouncillor, models.UserDepartmentHead, models.UserMunicipalAdmin},
	ViewCallCenter:     {models.UserCallCenter, models.UserMunicipalAdmin},
	ViewFieldWorker:    {models.UserFieldWorker},
	ViewWardCouncillor: {models.UserWardCouncillor},
	ViewMunicipal:      {models.UserMunicipalAdmin, models.UserDepartmentHead, models.UserCallCenter},
	ViewDepartment:     {models.UserDepartmentHead, models.UserMunicipalAdmin},
}

// Allowed reports whether a session of the given role may open view.
func Allowed(view View, role models.UserType) bool {
	return slices.Contains(viewRoles[view], role)
}

// ViewsFor lists the dashboards a role can open, in a stable order.
func ViewsFor(role models.UserType) []View {
	var out []View
	for _, v := range []View{ViewCitizen, ViewCallCenter, ViewFieldWorker, ViewWardCouncillor, ViewMunicipal, ViewDepartment} {
		if Allowed(v, role) {
			out = append(out, v)
		}
	}
	return out
}

var ReportSchema = query.Schema[models.Report]{
	Search: []func(models.Report) string{
		func(r models.Report) string { return r.Title },
		func(r models.Report) string { return r.Description },
		func(r models.Report) string { return r.ReporterName },
		func(r models.Report) string { return r.ReferenceNumber },
	},
	Filters: map[string]func(models.Report) string{
		"status":       func(r models.Report) string { return string(r.Status) },
		"priority":     func(r models.Report) string { return string(r.Priority.Normalize()) },
		"category":     func(r models.Report) string { return string(r.Category) },
		"ward":         func(r models.Report) string { return r.Ward },
		"department":   func(r models.Report) string { return r.AssignedDepartment },
		"assignee":     func(r models.Report) string { return r.AssignedTo },
		"escalation":   func(r models.Report) string { return strconv.Itoa(r.EscalationLevel) },
		"municipality": func(r models.Report) string { return r.Municipality },
	},
	Time: func(r models.Report) time.Time { return r.CreatedAt },
	Sorts: map[string]query.Compare[models.Report]{
		"createdAt": query.ByTime(func(r models.Report) time.Time { return r.CreatedAt }),
		"updatedAt": query.ByTime(func(r models.Report) time.Time { return r.UpdatedAt }),
		"priority":  query.ByNumber(func(r models.Report) int { return r.Priority.Rank() }),
		"status":    query.ByString(func(r models.Report) string { return string(r.Status) }),
		"title":     query.ByString(func(r models.Report) string { return r.Title }),
		"category":  query.ByString(func(r models.Report) string { return string(r.Category) }),
		"ward":      query.ByNumber(wardOrder),
		"reference": query.ByString(func(r models.Report) string { return r.ReferenceNumber }),
	},
	DefaultSort: "createdAt",
}

// wardOrder sorts numeric wards numerically; other labels go last.
func wardOrder(r models.Report) int {
	n, err := strconv.Atoi(r.Ward)
	if err != nil {
		return 1 << 30
	}
	return n
}

// scope limits the collection to what the session is responsible for.
func scope(view View, sess models.Session) func(models.Report) bool {
	// reports without a municipality belong to no staff scope
	inMunicipality := func(r models.Report) bool {
		return sess.Municipality.ID != "" && strings.EqualFold(r.Municipality, sess.Municipality.ID)
	}
	switch view {
	case ViewCitizen:
		return func(r models.Report) bool { return strings.EqualFold(r.ReporterEmail, sess.Email) }
	case ViewFieldWorker:
		return func(r models.Report) bool { return sess.StaffID != "" && r.AssignedTo == sess.StaffID }
	case ViewWardCouncillor:
		return func(r models.Report) bool { return inMunicipality(r) && r.Ward == sess.Ward }
	case ViewDepartment:
		if sess.Type == models.UserDepartmentHead {
			return func(r models.Report) bool { return inMunicipality(r) && r.AssignedDepartment == sess.DepartmentID }
		}
	}
	return inMunicipality
}

type Summary struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Escalated  int `json:"escalated"`
	Emergency  int `json:"emergency"`
	Unassigned int `json:"unassigned"`
}

func summarize(reports []models.Report) Summary {
	s := Summary{Total: len(reports)}
	for _, r := range reports {
		if r.Status.IsOpen() {
			s.Open++
			if r.AssignedTo == "" {
				s.Unassigned++
			}
			if r.Priority.Normalize() == models.PriorityEmergency {
				s.Emergency++
			}
		}
		if r.Status == models.StatusInProgress {
			s.InProgress++
		}
		if r.Status.IsResolved() {
			s.Resolved++
		}
		if r.EscalationLevel > 0 || r.Status == models.StatusEscalated {
			s.Escalated++
		}
	}
	return s
}

type Request struct {
	Params query.Params
	Page   int
	Limit  int
}

type Result struct {
	View    View            `json:"view"`
	Reports []models.Report `json:"reports"`
	Matched int             `json:"matched"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Summary Summary         `json:"summary"`
}

func check(view View, sess models.Session) error {
	if _, ok := viewRoles[view]; !ok {
		return ErrUnknownView
	}
	if !Allowed(view, sess.Type) {
		return ErrForbidden
	}
	return nil
}

// Build renders one view from an already loaded collection.
func Build(view View, sess models.Session, reports []models.Report, req Request) (Result, error) {
	if err := check(view, sess); err != nil {
		return Result{}, err
	}

	inScope := scope(view, sess)
	scoped := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if inScope(r) {
			scoped = append(scoped, r)
		}
	}

	matched := query.Apply(scoped, ReportSchema, req.Params)
	return Result{
		View:    view,
		Reports: query.Page(matched, req.Page, req.Limit),
		Matched: len(matched),
		Page:    max(req.Page, 1),
		Limit:   req.Limit,
		Summary: summarize(scoped),
	}, nil
}

type Lister interface {
	List(ctx context.Context) ([]models.Report, error)
}

type Board struct {
	reports Lister
}

func NewBoard(reports Lister) *Board {
	return &Board{reports: reports}
}

func (b *Board) View(ctx context.Context, view View, sess models.Session, req Request) (Result, error) {
	if err := check(view, sess); err != nil {
		return Result{}, err
	}
	all, err := b.reports.List(ctx)
	if err != nil {
		return Result{}, err
	}
	return Build(view, sess, all, req)
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ParseRequest reads the listing query string: search, the ReportSchema
// filter names, from/to (YYYY-MM-DD or RFC3339), sort, order, page, limit.
func ParseRequest(values url.Values) (Request, error) {
	p := query.Params{
		Search:  values.Get("search"),
		Filters: map[string]string{},
		SortBy:  values.Get("sort"),
		Desc:    !strings.EqualFold(values.Get("order"), "asc"),
	}
	for name := range ReportSchema.Filters {
		if v := values.Get(name); query.Active(v) {
			p.Filters[name] = v
		}
	}

	var err error
	if p.From, err = parseDate(values.Get("from"), false); err != nil {
		return Request{}, fmt.Errorf("from: %w", err)
	}
	if p.To, err = parseDate(values.Get("to"), true); err != nil {
		return Request{}, fmt.Errorf("to: %w", err)
	}

	page, _ := strconv.Atoi(values.Get("page"))
	limit, err := strconv.Atoi(values.Get("limit"))
	if err != nil || limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return Request{Params: p, Page: max(page, 1), Limit: limit}, nil
}

// parseDate accepts a calendar day or a full timestamp. A bare day used as
// an upper bound covers the whole day.
func parseDate(v string, endOfDay bool) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
