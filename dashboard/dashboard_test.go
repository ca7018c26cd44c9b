package dashboard

import (
	"context"
	"net/url"
	"testing"
	"time"

	"civicreport-be/catalog"
	"civicreport-be/models"
	"civicreport-be/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func sol(t models.UserType) models.Session {
	return models.Session{
		Email:        "someone@solplaatje.org.za",
		Type:         t,
		Municipality: models.SessionMunicipality{ID: "sol-plaatje"},
	}
}

func ids(reports []models.Report) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}

func TestViewScopes(t *testing.T) {
	reports := catalog.SampleReports(now)

	citizen := models.Session{Email: "THANDIWE.SITHOLE@example.com", Type: models.UserCitizen}
	councillor := sol(models.UserWardCouncillor)
	councillor.Ward = "7"
	worker := sol(models.UserFieldWorker)
	worker.StaffID = "staff-001"
	head := sol(models.UserDepartmentHead)
	head.DepartmentID = catalog.DeptWaterSanitation

	tests := []struct {
		name string
		view View
		sess models.Session
		want []string
	}{
		{"citizen sees own reports", ViewCitizen, citizen, []string{"1", "4"}},
		{"councillor sees ward", ViewWardCouncillor, councillor, []string{"1", "4"}},
		{"field worker sees assignments", ViewFieldWorker, worker, []string{"7"}},
		{"department head sees department", ViewDepartment, head, []string{"1", "7"}},
		{"admin sees municipality", ViewMunicipal, sol(models.UserMunicipalAdmin), []string{"5", "1", "2", "3", "7", "4", "6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(tt.view, tt.sess, reports, Request{Params: query.Params{Desc: true}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res.Reports))
			assert.Equal(t, len(tt.want), res.Matched)
		})
	}
}

func TestRoleGating(t *testing.T) {
	reports := catalog.SampleReports(now)

	_, err := Build(ViewCallCenter, sol(models.UserCitizen), reports, Request{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = Build("mayor", sol(models.UserMunicipalAdmin), reports, Request{})
	assert.ErrorIs(t, err, ErrUnknownView)

	assert.Equal(t, []View{ViewCitizen, ViewFieldWorker}, ViewsFor(models.UserFieldWorker))
	assert.True(t, Allowed(ViewDepartment, models.UserMunicipalAdmin))
}

func TestSummaryCountsScopeNotPage(t *testing.T) {
	res, err := Build(ViewMunicipal, sol(models.UserMunicipalAdmin), catalog.SampleReports(now), Request{Page: 3, Limit: 3})
	require.NoError(t, err)

	assert.Len(t, res.Reports, 1)
	assert.Equal(t, 7, res.Matched)
	assert.Equal(t, Summary{Total: 7, Open: 4, InProgress: 2, Resolved: 3, Escalated: 1, Emergency: 1, Unassigned: 1}, res.Summary)
}

func TestFilterSearchAndSort(t *testing.T) {
	reports := catalog.SampleReports(now)
	admin := sol(models.UserMunicipalAdmin)

	res, err := Build(ViewMunicipal, admin, reports, Request{Params: query.Params{
		Filters: map[string]string{"status": "In-Progress", "category": query.All},
		Desc:    true,
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "7"}, ids(res.Reports))

	res, err = Build(ViewMunicipal, admin, reports, Request{Params: query.Params{Search: "POTHOLE"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(res.Reports))

	res, err = Build(ViewMunicipal, admin, reports, Request{Params: query.Params{SortBy: "priority", Desc: true}})
	require.NoError(t, err)
	assert.Equal(t, "5", res.Reports[0].ID)

	res, err = Build(ViewMunicipal, admin, reports, Request{Params: query.Params{SortBy: "ward"}})
	require.NoError(t, err)
	assert.Equal(t, "3", res.Reports[0].ID)

	from := now.AddDate(0, 0, -10)
	res, err = Build(ViewMunicipal, admin, reports, Request{Params: query.Params{From: &from, Filters: map[string]string{"escalation": "1"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, ids(res.Reports))
}

func TestHugePageIsEmpty(t *testing.T) {
	req, err := ParseRequest(url.Values{"page": {"9223372036854775807"}, "limit": {"20"}})
	require.NoError(t, err)

	var res Result
	require.NotPanics(t, func() {
		res, err = Build(ViewCallCenter, sol(models.UserCallCenter), catalog.SampleReports(now), req)
	})
	require.NoError(t, err)
	assert.Empty(t, res.Reports)
	assert.Equal(t, 7, res.Matched)
}

func TestReportsWithoutMunicipalityAreOutOfStaffScope(t *testing.T) {
	orphan := models.Report{ID: "orphan", Ward: "7", AssignedDepartment: catalog.DeptWaterSanitation, ReporterEmail: "nomad@example.com"}
	reports := append(catalog.SampleReports(now), orphan)

	councillor := sol(models.UserWardCouncillor)
	councillor.Ward = "7"
	head := sol(models.UserDepartmentHead)
	head.DepartmentID = catalog.DeptWaterSanitation
	noMunicipality := models.Session{Email: "x@example.com", Type: models.UserMunicipalAdmin}

	for _, tc := range []struct {
		view View
		sess models.Session
	}{
		{ViewMunicipal, sol(models.UserMunicipalAdmin)},
		{ViewCallCenter, sol(models.UserCallCenter)},
		{ViewWardCouncillor, councillor},
		{ViewDepartment, head},
		{ViewMunicipal, noMunicipality},
	} {
		res, err := Build(tc.view, tc.sess, reports, Request{})
		require.NoError(t, err)
		assert.NotContains(t, ids(res.Reports), "orphan", "%s as %s", tc.view, tc.sess.Type)
	}

	res, err := Build(ViewCitizen, models.Session{Email: "nomad@example.com", Type: models.UserCitizen}, reports, Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, ids(res.Reports), "the reporter still sees it")
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(url.Values{
		"search":   {"pipe"},
		"status":   {"pending"},
		"ward":     {"all"},
		"unknown":  {"x"},
		"from":     {"2026-10-01"},
		"to":       {"2026-10-10"},
		"sort":     {"priority"},
		"order":    {"asc"},
		"page":     {"2"},
		"limit":    {"500"},
		"priority": {"high"},
	})
	require.NoError(t, err)

	assert.Equal(t, "pipe", req.Params.Search)
	assert.Equal(t, map[string]string{"status": "pending", "priority": "high"}, req.Params.Filters)
	assert.Equal(t, "priority", req.Params.SortBy)
	assert.False(t, req.Params.Desc)
	require.NotNil(t, req.Params.From)
	require.NotNil(t, req.Params.To)
	assert.Equal(t, time.Date(2026, 10, 10, 23, 59, 59, 999999999, time.UTC), *req.Params.To)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, defaultLimit, req.Limit)

	_, err = ParseRequest(url.Values{"from": {"yesterday"}})
	assert.Error(t, err)

	def, err := ParseRequest(url.Values{})
	require.NoError(t, err)
	assert.True(t, def.Params.Desc)
	assert.Equal(t, 1, def.Page)
}

type listerFunc func(context.Context) ([]models.Report, error)

func (f listerFunc) List(ctx context.Context) ([]models.Report, error) { return f(ctx) }

func TestBoardSkipsLoadWhenForbidden(t *testing.T) {
	called := false
	board := NewBoard(listerFunc(func(context.Context) ([]models.Report, error) {
		called = true
		return catalog.SampleReports(now), nil
	}))

	_, err := board.View(context.Background(), ViewDepartment, sol(models.UserCitizen), Request{})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, called)

	res, err := board.View(context.Background(), ViewCallCenter, sol(models.UserCallCenter), Request{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 7, res.Summary.Total)
}
