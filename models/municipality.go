package models

import (
	"strconv"
	"strings"
)

// VehicleStatus enum
type VehicleStatus string

const (
	VehicleAvailable    VehicleStatus = "available"
	VehicleDispatched   VehicleStatus = "dispatched"
	VehicleMaintenance  VehicleStatus = "maintenance"
	VehicleOutOfService VehicleStatus = "out-of-service"
)

type Ward struct {
	ID         string `yaml:"id" json:"id"`
	Number     int    `yaml:"number" json:"number"`
	Name       string `yaml:"name" json:"name"`
	Councillor string `yaml:"councillor,omitempty" json:"councillor,omitempty"`
}

type Department struct {
	ID         string     `yaml:"id" json:"id"`
	Name       string     `yaml:"name" json:"name"`
	Categories []Category `yaml:"categories" json:"categories"`
}

type FleetVehicle struct {
	ID           string        `yaml:"id" json:"id"`
	Type         string        `yaml:"type" json:"type"`
	Registration string        `yaml:"registration" json:"registration"`
	Status       VehicleStatus `yaml:"status" json:"status"`
	DepartmentID string        `yaml:"department" json:"departmentId"`
}

type Contact struct {
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
	Address string `yaml:"address" json:"address"`
}

type Municipality struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	Province    string         `yaml:"province" json:"province"`
	Wards       []Ward         `yaml:"wards" json:"wards"`
	Departments []Department   `yaml:"departments" json:"departments"`
	Fleet       []FleetVehicle `yaml:"fleet" json:"fleet"`
	Contact     Contact        `yaml:"contact" json:"contact"`
	// Admins lists the emails allowed to hold the municipal-admin role.
	Admins []string `yaml:"admins" json:"-"`
}

func (m Municipality) IsAdmin(email string) bool {
	for _, a := range m.Admins {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

// Ward looks up a ward by id or by its number written as text.
func (m Municipality) Ward(id string) (Ward, bool) {
	for _, w := range m.Wards {
		if w.ID == id || strconv.Itoa(w.Number) == id {
			return w, true
		}
	}
	return Ward{}, false
}

// IssueCategory describes a reportable category
type IssueCategory struct {
	ID                 Category `yaml:"id" json:"id"`
	Name               string   `yaml:"name" json:"name"`
	Subcategories      []string `yaml:"subcategories" json:"subcategories"`
	DepartmentID       string   `yaml:"department" json:"departmentId"`
	ExpectedResolution string   `yaml:"expectedResolution" json:"expectedResolution"`
}
