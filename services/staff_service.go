package services

import (
	"context"

	"civicreport-be/catalog"
	"civicreport-be/models"
	"civicreport-be/municipal"
	"civicreport-be/store"
)

type StaffWorkload struct {
	models.Staff
	OpenReports int     `json:"openReports"`
	Workload    float64 `json:"workload"`
}

// StaffService reports staff with their current load.
type StaffService struct {
	catalog *catalog.Catalog
	reports store.ReportStore
}

func NewStaffService(cat *catalog.Catalog, reports store.ReportStore) *StaffService {
	return &StaffService{catalog: cat, reports: reports}
}

func (s *StaffService) List(ctx context.Context, departmentID string) ([]StaffWorkload, error) {
	all, err := s.reports.List(ctx)
	if err != nil {
		return nil, err
	}

	staff := s.catalog.StaffInDepartment(departmentID)
	out := make([]StaffWorkload, 0, len(staff))
	for _, member := range staff {
		open := 0
		for _, r := range all {
			if r.AssignedTo == member.ID && r.Status.IsOpen() {
				open++
			}
		}
		out = append(out, StaffWorkload{
			Staff:       member,
			OpenReports: open,
			Workload:    municipal.Workload(member, all),
		})
	}
	return out, nil
}
