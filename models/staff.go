package models

// StaffRole enum
type StaffRole string

const (
	RoleFieldWorker StaffRole = "field-worker"
	RoleTechnician  StaffRole = "technician"
	RoleSupervisor  StaffRole = "supervisor"
	RoleAgent       StaffRole = "call-center-agent"
	RoleManager     StaffRole = "department-head"
)

type Performance struct {
	CitizenSatisfaction float64 `yaml:"citizenSatisfaction" json:"citizenSatisfaction"`
	CompletedReports    int     `yaml:"completedReports" json:"completedReports"`
}

// Staff is a municipal employee who can be assigned reports
type Staff struct {
	ID               string      `yaml:"id" json:"id"`
	Name             string      `yaml:"name" json:"name"`
	Email            string      `yaml:"email" json:"email"`
	DepartmentID     string      `yaml:"department" json:"departmentId"`
	Role             StaffRole   `yaml:"role" json:"role"`
	Active           bool        `yaml:"active" json:"active"`
	WorkloadCapacity int         `yaml:"workloadCapacity" json:"workloadCapacity"`
	Performance      Performance `yaml:"performance" json:"performance"`
}
