package models

// DepartmentStats aggregates one department's reports
type DepartmentStats struct {
	DepartmentID          string               `json:"departmentId"`
	TotalReports          int                  `json:"totalReports"`
	PendingReports        int                  `json:"pendingReports"`
	InProgressReports     int                  `json:"inProgressReports"`
	CompletedReports      int                  `json:"completedReports"`
	CancelledReports      int                  `json:"cancelledReports"`
	ByStatus              map[ReportStatus]int `json:"byStatus"`
	AverageResolutionTime float64              `json:"averageResolutionTime"`
	AverageRating         float64              `json:"averageRating"`
}

// MonthlyTrend is one calendar month of the trailing analytics window
type MonthlyTrend struct {
	Month                 string  `json:"month"`
	Reports               int     `json:"reports"`
	Completed             int     `json:"completed"`
	AverageResolutionTime float64 `json:"averageResolutionTime"`
	AverageSatisfaction   float64 `json:"averageSatisfaction"`
}

type ReportAnalytics struct {
	TotalReports          int                  `json:"totalReports"`
	OpenReports           int                  `json:"openReports"`
	CompletedReports      int                  `json:"completedReports"`
	ByStatus              map[ReportStatus]int `json:"byStatus"`
	ByCategory            map[Category]int     `json:"byCategory"`
	ByPriority            map[Priority]int     `json:"byPriority"`
	ByWard                map[string]int       `json:"byWard"`
	AverageResolutionTime float64              `json:"averageResolutionTime"`
	AverageSatisfaction   float64              `json:"averageSatisfaction"`
	MonthlyTrends         []MonthlyTrend       `json:"monthlyTrends"`
}
