package municipal

import (
	"context"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"civicreport-be/catalog"
	"civicreport-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWithinMunicipalScope(t *testing.T) {
	tests := []struct {
		name        string
		category    models.Category
		description string
		want        bool
	}{
		{"known category", models.CategoryWater, "No water in Galeshewe since Monday", true},
		{"legacy category", "potholes", "Deep pothole on Bultfontein Road", true},
		{"unknown category", "space-debris", "Something fell from the sky", false},
		{"denylisted topic", models.CategoryOther, "I need help with my Immigration papers", false},
		{"denylist beats known category", models.CategoryCrime, "dispute in the High Court", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWithinMunicipalScope(tt.category, tt.description))
		})
	}
}

func TestAssignDepartment(t *testing.T) {
	for _, c := range catalog.Default().Categories {
		dept := AssignDepartment(c.ID)
		assert.NotEmpty(t, dept, c.ID)
		assert.Equal(t, dept, AssignDepartment(c.ID), "deterministic for %s", c.ID)
	}
	assert.Equal(t, "water-sanitation", AssignDepartment(models.CategoryWater))
	assert.Equal(t, catalog.DeptWaste, AssignDepartment("illegal-dumping"))
	assert.Equal(t, FallbackDepartment, AssignDepartment("unheard-of"))
	assert.Equal(t, "public-safety", AssignDepartment(""))
}

func TestGetExpectedResolutionTime(t *testing.T) {
	cats := catalog.Default().Categories

	crime := map[models.Priority]string{
		models.PriorityEmergency: "1-4 hours",
		models.PriorityHigh:      "4-24 hours",
		models.PriorityMedium:    "24-48 hours",
		models.PriorityLow:       "2-7 days",
	}
	for p, want := range crime {
		assert.Equal(t, want, GetExpectedResolutionTime(cats, models.CategoryCrime, p))
	}
	assert.Equal(t, "1-4 hours", GetExpectedResolutionTime(cats, models.CategoryCrime, models.PriorityUrgent))

	// Other categories ignore priority and use the catalog text.
	assert.Equal(t, "24-72 hours", GetExpectedResolutionTime(cats, models.CategoryWater, models.PriorityEmergency))
	assert.Equal(t, "24-72 hours", GetExpectedResolutionTime(cats, models.CategoryWater, models.PriorityLow))
	assert.NotEqual(t, GetExpectedResolutionTime(cats, models.CategoryCrime, models.PriorityLow),
		GetExpectedResolutionTime(cats, models.CategoryWater, models.PriorityLow))

	assert.Equal(t, "4-8 hours", GetExpectedResolutionTime(cats, "unknown", models.PriorityEmergency))
	assert.Equal(t, "7-14 days", GetExpectedResolutionTime(cats, "unknown", models.PriorityLow))
	assert.Equal(t, "3-5 days", GetExpectedResolutionTime(cats, "unknown", "bogus"))
}

var referencePattern = regexp.MustCompile(`^SPM-\d{8}-W\d{2}-[A-Z]{2}\d{3}$`)

func TestGenerateReferenceNumber(t *testing.T) {
	now := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewPCG(1, 2))

	ref := GenerateReferenceNumber(models.CategoryWater, "7", now, rng)
	assert.Regexp(t, `^SPM-20260309-W07-WA\d{3}$`, ref)

	for _, ward := range []string{"1", "12", "Ward 3", "", "133"} {
		for _, c := range catalog.Default().Categories {
			ref := GenerateReferenceNumber(c.ID, ward, now, rng)
			assert.Truef(t, referencePattern.MatchString(ref), "%q does not match", ref)
		}
	}
	assert.Regexp(t, `^SPM-20260309-W00-XX\d{3}$`, GenerateReferenceNumber("", "", now, nil))
}

func TestReferenceGeneratorSkipsTakenNumbers(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
	gen := NewReferenceGenerator(rand.New(rand.NewPCG(7, 7)), now)

	taken := map[string]bool{}
	calls := 0
	exists := func(_ context.Context, ref string) (bool, error) {
		calls++
		if calls <= 3 {
			taken[ref] = true
			return true, nil
		}
		return taken[ref], nil
	}

	ref, err := gen.Next(context.Background(), models.CategoryRoads, "4", exists)
	require.NoError(t, err)
	assert.False(t, taken[ref])
	assert.GreaterOrEqual(t, calls, 4)

	alwaysTaken := func(context.Context, string) (bool, error) { return true, nil }
	_, err = gen.Next(context.Background(), models.CategoryRoads, "4", alwaysTaken)
	assert.ErrorIs(t, err, ErrReferenceExhausted)
}

func TestFindBestAssignee(t *testing.T) {
	staff := []models.Staff{
		{ID: "busy", DepartmentID: "water", Role: models.RoleFieldWorker, Active: true, WorkloadCapacity: 10},
		{ID: "idle", DepartmentID: "water", Role: models.RoleFieldWorker, Active: true, WorkloadCapacity: 10},
	}
	var reports []models.Report
	for i := 0; i < 5; i++ {
		reports = append(reports, models.Report{AssignedTo: "busy", Status: models.StatusInProgress})
	}

	got, ok := FindBestAssignee("water", staff, reports)
	require.True(t, ok)
	assert.Equal(t, "idle", got.ID)
}

func TestFindBestAssigneeTieBreaksOnSatisfaction(t *testing.T) {
	staff := []models.Staff{
		{ID: "a", DepartmentID: "roads", Role: models.RoleTechnician, Active: true, WorkloadCapacity: 10, Performance: models.Performance{CitizenSatisfaction: 3.9}},
		{ID: "b", DepartmentID: "roads", Role: models.RoleSupervisor, Active: true, WorkloadCapacity: 20, Performance: models.Performance{CitizenSatisfaction: 4.7}},
	}
	reports := []models.Report{
		{AssignedTo: "a", Status: models.StatusPending},
		{AssignedTo: "b", Status: models.StatusAssigned},
		{AssignedTo: "b", Status: models.StatusInProgress},
		{AssignedTo: "a", Status: models.StatusCompleted},
	}

	got, ok := FindBestAssignee("roads", staff, reports)
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)
}

func TestFindBestAssigneeNoEligibleStaff(t *testing.T) {
	staff := []models.Staff{
		{ID: "inactive", DepartmentID: "water", Role: models.RoleFieldWorker, Active: false, WorkloadCapacity: 10},
		{ID: "manager", DepartmentID: "water", Role: models.RoleManager, Active: true, WorkloadCapacity: 10},
		{ID: "elsewhere", DepartmentID: "roads", Role: models.RoleFieldWorker, Active: true, WorkloadCapacity: 10},
	}
	_, ok := FindBestAssignee("water", staff, nil)
	assert.False(t, ok)
}

func TestAssignFleetVehicle(t *testing.T) {
	fleet := []models.FleetVehicle{
		{ID: "v1", Type: "utility-truck", Status: models.VehicleAvailable, DepartmentID: "water-sanitation"},
		{ID: "v2", Type: "water-tanker", Status: models.VehicleDispatched, DepartmentID: "water-sanitation"},
		{ID: "v3", Type: "water-tanker", Status: models.VehicleAvailable, DepartmentID: "water-sanitation"},
		{ID: "v4", Type: "water-tanker", Status: models.VehicleAvailable, DepartmentID: "roads-transport"},
		{ID: "v5", Type: "bakkie", Status: models.VehicleAvailable, DepartmentID: "water-sanitation"},
	}

	v, ok := AssignFleetVehicle(fleet, "water-sanitation", models.CategoryWater)
	require.True(t, ok)
	assert.Equal(t, "v3", v.ID)

	ranked := RankFleetVehicles(fleet, "water-sanitation", models.CategoryWater)
	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		assert.Equal(t, models.VehicleAvailable, r.Status)
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"v3", "v1", "v5"}, ids)

	// No type preference match falls back to the first available vehicle.
	v, ok = AssignFleetVehicle(fleet, "water-sanitation", models.CategoryHousing)
	require.True(t, ok)
	assert.Equal(t, "v1", v.ID)

	_, ok = AssignFleetVehicle(fleet, "electricity", models.CategoryElectricity)
	assert.False(t, ok)
}

func rating(v int) *int { return &v }

func TestCalculateDepartmentStats(t *testing.T) {
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	resolved := created.Add(2 * time.Hour)
	reports := []models.Report{
		{ID: "1", AssignedDepartment: "water-sanitation", Status: models.StatusCompleted, CreatedAt: created, ActualResolutionTime: &resolved, FeedbackRating: rating(4)},
		{ID: "2", AssignedDepartment: "water-sanitation", Status: models.StatusPending, CreatedAt: created},
		{ID: "3", AssignedDepartment: "roads-transport", Status: models.StatusInProgress, CreatedAt: created},
	}

	stats := CalculateDepartmentStats("water-sanitation", reports)
	assert.Equal(t, 2, stats.TotalReports)
	assert.Equal(t, 1, stats.CompletedReports)
	assert.Equal(t, 1, stats.PendingReports)
	assert.InDelta(t, 2.0, stats.AverageResolutionTime, 0.001)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)
}

func TestStatsOnEmptyInput(t *testing.T) {
	stats := CalculateDepartmentStats("water-sanitation", nil)
	assert.Zero(t, stats.TotalReports)
	assert.Zero(t, stats.AverageResolutionTime)
	assert.Zero(t, stats.AverageRating)

	a := GenerateReportAnalytics(nil, time.Now())
	assert.Zero(t, a.TotalReports)
	assert.Zero(t, a.AverageResolutionTime)
	assert.Zero(t, a.AverageSatisfaction)
	require.Len(t, a.MonthlyTrends, 12)
	for _, m := range a.MonthlyTrends {
		assert.Zero(t, m.Reports)
		assert.Zero(t, m.AverageResolutionTime)
		assert.Zero(t, m.AverageSatisfaction)
	}
}

func TestGenerateReportAnalyticsMonthlyTrend(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	lastYear := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	tooOld := time.Date(2025, 10, 31, 9, 0, 0, 0, time.UTC)
	fixed := thisMonth.Add(6 * time.Hour)

	reports := []models.Report{
		{ID: "a", Status: models.StatusResolved, CreatedAt: thisMonth, ActualResolutionTime: &fixed, FeedbackRating: rating(5)},
		{ID: "b", Status: models.StatusPending, CreatedAt: thisMonth},
		{ID: "c", Status: models.StatusPending, CreatedAt: lastYear},
		{ID: "d", Status: models.StatusPending, CreatedAt: tooOld},
	}

	a := GenerateReportAnalytics(reports, now)
	require.Len(t, a.MonthlyTrends, 12)
	first, last := a.MonthlyTrends[0], a.MonthlyTrends[11]

	assert.Equal(t, "2025-11", first.Month)
	assert.Equal(t, 1, first.Reports)
	assert.Equal(t, "2026-10", last.Month)
	assert.Equal(t, 2, last.Reports)
	assert.Equal(t, 1, last.Completed)
	assert.InDelta(t, 6.0, last.AverageResolutionTime, 0.001)
	assert.InDelta(t, 5.0, last.AverageSatisfaction, 0.001)

	assert.Equal(t, 4, a.TotalReports)
	assert.Equal(t, 3, a.OpenReports)
}
