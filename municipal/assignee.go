package municipal

import (
	"sort"

	"civicreport-be/models"
)

var assignableRoles = map[models.StaffRole]bool{
	models.RoleFieldWorker: true,
	models.RoleTechnician:  true,
	models.RoleSupervisor:  true,
}

// Workload is a staff member's open assignments as a percentage of capacity.
func Workload(staff models.Staff, reports []models.Report) float64 {
	if staff.WorkloadCapacity <= 0 {
		return 0
	}
	open := 0
	for _, r := range reports {
		if r.AssignedTo != staff.ID {
			continue
		}
		switch r.Status {
		case models.StatusPending, models.StatusAssigned, models.StatusInProgress:
			open++
		}
	}
	return float64(open) / float64(staff.WorkloadCapacity) * 100
}

// FindBestAssignee picks the least-loaded eligible staff member of a
// department, preferring higher citizen satisfaction on a tie. It is greedy
// and does not rebalance existing work.
func FindBestAssignee(departmentID string, staff []models.Staff, reports []models.Report) (models.Staff, bool) {
	type candidate struct {
		staff    models.Staff
		workload float64
	}

	var candidates []candidate
	for _, s := range staff {
		if s.DepartmentID != departmentID || !s.Active || !assignableRoles[s.Role] || s.WorkloadCapacity <= 0 {
			continue
		}
		candidates = append(candidates, candidate{staff: s, workload: Workload(s, reports)})
	}
	if len(candidates) == 0 {
		return models.Staff{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].workload != candidates[j].workload {
			return candidates[i].workload < candidates[j].workload
		}
		return candidates[i].staff.Performance.CitizenSatisfaction > candidates[j].staff.Performance.CitizenSatisfaction
	})
	return candidates[0].staff, true
}
