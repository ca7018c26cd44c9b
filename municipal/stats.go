package municipal

import (
	"time"

	"civicreport-be/models"
)

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func resolutionHours(r models.Report) (float64, bool) {
	if !r.Status.IsResolved() {
		return 0, false
	}
	return r.ResolutionHours()
}

// CalculateDepartmentStats aggregates the reports assigned to one department.
func CalculateDepartmentStats(departmentID string, reports []models.Report) models.DepartmentStats {
	stats := models.DepartmentStats{
		DepartmentID: departmentID,
		ByStatus:     make(map[models.ReportStatus]int),
	}
	var resolution, rating mean

	for _, r := range reports {
		if r.AssignedDepartment != departmentID {
			continue
		}
		stats.TotalReports++
		stats.ByStatus[r.Status]++

		switch {
		case r.Status == models.StatusCancelled:
			stats.CancelledReports++
		case r.Status.IsResolved():
			stats.CompletedReports++
		case r.Status == models.StatusInProgress || r.Status == models.StatusAssigned:
			stats.InProgressReports++
		case r.Status.IsOpen():
			stats.PendingReports++
		}

		if h, ok := resolutionHours(r); ok {
			resolution.add(h)
		}
		if r.FeedbackRating != nil {
			rating.add(float64(*r.FeedbackRating))
		}
	}

	stats.AverageResolutionTime = resolution.value()
	stats.AverageRating = rating.value()
	return stats
}

// GenerateReportAnalytics aggregates every report and adds a trend for the
// twelve calendar months ending with the month of now.
func GenerateReportAnalytics(reports []models.Report, now time.Time) models.ReportAnalytics {
	a := models.ReportAnalytics{
		ByStatus:   make(map[models.ReportStatus]int),
		ByCategory: make(map[models.Category]int),
		ByPriority: make(map[models.Priority]int),
		ByWard:     make(map[string]int),
	}
	var resolution, satisfaction mean

	for _, r := range reports {
		a.TotalReports++
		a.ByStatus[r.Status]++
		a.ByCategory[r.Category]++
		a.ByPriority[r.Priority.Normalize()]++
		a.ByWard[r.Ward]++
		if r.Status.IsOpen() {
			a.OpenReports++
		}
		if r.Status.IsResolved() {
			a.CompletedReports++
		}
		if h, ok := resolutionHours(r); ok {
			resolution.add(h)
		}
		if r.FeedbackRating != nil {
			satisfaction.add(float64(*r.FeedbackRating))
		}
	}
	a.AverageResolutionTime = resolution.value()
	a.AverageSatisfaction = satisfaction.value()
	a.MonthlyTrends = monthlyTrends(reports, now)
	return a
}

func monthlyTrends(reports []models.Report, now time.Time) []models.MonthlyTrend {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	trends := make([]models.MonthlyTrend, 0, 12)

	for i := 11; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		trend := models.MonthlyTrend{Month: start.Format("2006-01")}
		var resolution, satisfaction mean
		for _, r := range reports {
			created := r.CreatedAt.In(now.Location())
			if created.Before(start) || !created.Before(end) {
				continue
			}
			trend.Reports++
			if r.Status.IsResolved() {
				trend.Completed++
			}
			if h, ok := resolutionHours(r); ok {
				resolution.add(h)
			}
			if r.FeedbackRating != nil {
				satisfaction.add(float64(*r.FeedbackRating))
			}
		}
		trend.AverageResolutionTime = resolution.value()
		trend.AverageSatisfaction = satisfaction.value()
		trends = append(trends, trend)
	}
	return trends
}
