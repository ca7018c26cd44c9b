package catalog

import (
	"fmt"
	"strconv"

	"civicreport-be/models"
)

// Department ids
const (
	DeptWaterSanitation = "water-sanitation"
	DeptRoadsTransport  = "roads-transport"
	DeptElectricity     = "electricity"
	DeptWaste           = "waste-management"
	DeptPublicSafety    = "public-safety"
	DeptParks           = "parks-recreation"
	DeptHousing         = "housing"
	DeptHealth          = "community-health"
	DeptPlanning        = "planning-development"
	DeptEnvironment     = "environmental-health"
)

// Default returns the built-in catalog. Each call builds a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Municipalities: []models.Municipality{solPlaatje(), dawidKruiper()},
		Categories:     defaultCategories(),
		Staff:          defaultStaff(),
	}
}

func departments() []models.Department {
	return []models.Department{
		{ID: DeptWaterSanitation, Name: "Water & Sanitation", Categories: []models.Category{models.CategoryWater}},
		{ID: DeptRoadsTransport, Name: "Roads & Transport", Categories: []models.Category{models.CategoryRoads, models.CategoryTraffic}},
		{ID: DeptElectricity, Name: "Electricity Services", Categories: []models.Category{models.CategoryElectricity}},
		{ID: DeptWaste, Name: "Waste Management", Categories: []models.Category{models.CategoryWaste}},
		{ID: DeptPublicSafety, Name: "Public Safety", Categories: []models.Category{models.CategoryCrime, models.CategoryOther}},
		{ID: DeptParks, Name: "Parks & Recreation", Categories: []models.Category{models.CategoryParks}},
		{ID: DeptHousing, Name: "Human Settlements", Categories: []models.Category{models.CategoryHousing}},
		{ID: DeptHealth, Name: "Community Health", Categories: []models.Category{models.CategoryHealth}},
		{ID: DeptPlanning, Name: "Planning & Development", Categories: []models.Category{models.CategoryBuilding}},
		{ID: DeptEnvironment, Name: "Environmental Health", Categories: []models.Category{models.CategoryEnvironment}},
	}
}

func wards(prefix string, n int) []models.Ward {
	out := make([]models.Ward, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Ward{
			ID:     strconv.Itoa(i),
			Number: i,
			Name:   fmt.Sprintf("%s Ward %d", prefix, i),
		})
	}
	return out
}

func solPlaatje() models.Municipality {
	return models.Municipality{
		ID:          "sol-plaatje",
		Name:        "Sol Plaatje Local Municipality",
		Province:    "Northern Cape",
		Wards:       wards("Sol Plaatje", 33),
		Departments: departments(),
		Fleet: []models.FleetVehicle{
			{ID: "SP-WT-01", Type: "water-tanker", Registration: "CK 101-234 NC", Status: models.VehicleAvailable, DepartmentID: DeptWaterSanitation},
			{ID: "SP-UT-01", Type: "utility-truck", Registration: "CK 102-118 NC", Status: models.VehicleAvailable, DepartmentID: DeptWaterSanitation},
			{ID: "SP-JV-01", Type: "jetting-vehicle", Registration: "CK 102-771 NC", Status: models.VehicleMaintenance, DepartmentID: DeptWaterSanitation},
			{ID: "SP-RM-01", Type: "road-maintenance-truck", Registration: "CK 104-551 NC", Status: models.VehicleAvailable, DepartmentID: DeptRoadsTransport},
			{ID: "SP-TP-01", Type: "tipper-truck", Registration: "CK 104-902 NC", Status: models.VehicleDispatched, DepartmentID: DeptRoadsTransport},
			{ID: "SP-CP-01", Type: "cherry-picker", Registration: "CK 105-330 NC", Status: models.VehicleAvailable, DepartmentID: DeptElectricity},
			{ID: "SP-BK-01", Type: "bakkie", Registration: "CK 105-447 NC", Status: models.VehicleAvailable, DepartmentID: DeptElectricity},
			{ID: "SP-RF-01", Type: "refuse-truck", Registration: "CK 106-010 NC", Status: models.VehicleAvailable, DepartmentID: DeptWaste},
			{ID: "SP-RF-02", Type: "refuse-truck", Registration: "CK 106-011 NC", Status: models.VehicleOutOfService, DepartmentID: DeptWaste},
			{ID: "SP-PV-01", Type: "patrol-vehicle", Registration: "CK 107-900 NC", Status: models.VehicleAvailable, DepartmentID: DeptPublicSafety},
		},
		Contact: models.Contact{
			Phone:   "053 830 6911",
			Email:   "callcentre@solplaatje.org.za",
			Address: "Civic Centre, Sol Plaatje Drive, Kimberley",
		},
		Admins: []string{"admin@solplaatje.org.za"},
	}
}

func dawidKruiper() models.Municipality {
	return models.Municipality{
		ID:          "dawid-kruiper",
		Name:        "Dawid Kruiper Local Municipality",
		Province:    "Northern Cape",
		Wards:       wards("Dawid Kruiper", 17),
		Departments: departments(),
		Fleet: []models.FleetVehicle{
			{ID: "DK-WT-01", Type: "water-tanker", Registration: "CKU 201-100 NC", Status: models.VehicleAvailable, DepartmentID: DeptWaterSanitation},
			{ID: "DK-RM-01", Type: "road-maintenance-truck", Registration: "CKU 201-220 NC", Status: models.VehicleAvailable, DepartmentID: DeptRoadsTransport},
			{ID: "DK-RF-01", Type: "refuse-truck", Registration: "CKU 201-330 NC", Status: models.VehicleAvailable, DepartmentID: DeptWaste},
		},
		Contact: models.Contact{
			Phone:   "054 338 7000",
			Email:   "info@dkm.gov.za",
			Address: "Mutual Street, Upington",
		},
		Admins: []string{"admin@dkm.gov.za"},
	}
}

func defaultCategories() []models.IssueCategory {
	return []models.IssueCategory{
		{ID: models.CategoryWater, Name: "Water Issues", Subcategories: []string{"No water", "Burst pipe", "Leaking meter", "Sewage overflow", "Low pressure"}, DepartmentID: DeptWaterSanitation, ExpectedResolution: "24-72 hours"},
		{ID: models.CategoryRoads, Name: "Roads & Transport", Subcategories: []string{"Pothole", "Damaged road sign", "Blocked storm drain", "Road markings"}, DepartmentID: DeptRoadsTransport, ExpectedResolution: "5-14 days"},
		{ID: models.CategoryElectricity, Name: "Electricity", Subcategories: []string{"Power outage", "Streetlight out", "Exposed wires", "Faulty prepaid meter"}, DepartmentID: DeptElectricity, ExpectedResolution: "4-48 hours"},
		{ID: models.CategoryWaste, Name: "Waste Management", Subcategories: []string{"Missed collection", "Illegal dumping", "Overflowing bins"}, DepartmentID: DeptWaste, ExpectedResolution: "2-5 days"},
		{ID: models.CategoryCrime, Name: "Crime & Security", Subcategories: []string{"Vandalism", "Cable theft", "Suspicious activity", "By-law contravention"}, DepartmentID: DeptPublicSafety, ExpectedResolution: "24-48 hours"},
		{ID: models.CategoryParks, Name: "Parks & Recreation", Subcategories: []string{"Overgrown park", "Broken play equipment", "Fallen tree"}, DepartmentID: DeptParks, ExpectedResolution: "7-21 days"},
		{ID: models.CategoryHousing, Name: "Housing", Subcategories: []string{"RDP house defects", "Informal settlement services"}, DepartmentID: DeptHousing, ExpectedResolution: "14-30 days"},
		{ID: models.CategoryHealth, Name: "Health Services", Subcategories: []string{"Clinic services", "Pest infestation"}, DepartmentID: DeptHealth, ExpectedResolution: "1-3 days"},
		{ID: models.CategoryTraffic, Name: "Traffic Signals", Subcategories: []string{"Robot not working", "Damaged signal pole"}, DepartmentID: DeptRoadsTransport, ExpectedResolution: "1-3 days"},
		{ID: models.CategoryBuilding, Name: "Building & Planning", Subcategories: []string{"Illegal structure", "Unsafe building"}, DepartmentID: DeptPlanning, ExpectedResolution: "14-30 days"},
		{ID: models.CategoryEnvironment, Name: "Environmental", Subcategories: []string{"Air pollution", "Noise complaint", "Stray animals"}, DepartmentID: DeptEnvironment, ExpectedResolution: "3-10 days"},
		{ID: models.CategoryOther, Name: "Other", DepartmentID: DeptPublicSafety, ExpectedResolution: "5-10 days"},
	}
}

func defaultStaff() []models.Staff {
	return []models.Staff{
		{ID: "staff-001", Name: "Thabo Mokoena", Email: "t.mokoena@solplaatje.org.za", DepartmentID: DeptWaterSanitation, Role: models.RoleFieldWorker, Active: true, WorkloadCapacity: 10, Performance: models.Performance{CitizenSatisfaction: 4.6, CompletedReports: 212}},
		{ID: "staff-002", Name: "Naledi Khumalo", Email: "n.khumalo@solplaatje.org.za", DepartmentID: DeptWaterSanitation, Role: models.RoleTechnician, Active: true, WorkloadCapacity: 8, Performance: models.Performance{CitizenSatisfaction: 4.2, CompletedReports: 154}},
		{ID: "staff-003", Name: "Pieter van Wyk", Email: "p.vanwyk@solplaatje.org.za", DepartmentID: DeptRoadsTransport, Role: models.RoleFieldWorker, Active: true, WorkloadCapacity: 12, Performance: models.Performance{CitizenSatisfaction: 3.9, CompletedReports: 301}},
		{ID: "staff-004", Name: "Lerato Dlamini", Email: "l.dlamini@solplaatje.org.za", DepartmentID: DeptElectricity, Role: models.RoleTechnician, Active: true, WorkloadCapacity: 10, Performance: models.Performance{CitizenSatisfaction: 4.8, CompletedReports: 187}},
		{ID: "staff-005", Name: "Sipho Ndlovu", Email: "s.ndlovu@solplaatje.org.za", DepartmentID: DeptWaste, Role: models.RoleFieldWorker, Active: true, WorkloadCapacity: 15, Performance: models.Performance{CitizenSatisfaction: 4.1, CompletedReports: 402}},
		{ID: "staff-006", Name: "Anele Jacobs", Email: "a.jacobs@solplaatje.org.za", DepartmentID: DeptPublicSafety, Role: models.RoleSupervisor, Active: true, WorkloadCapacity: 6, Performance: models.Performance{CitizenSatisfaction: 4.4, CompletedReports: 96}},
		{ID: "staff-007", Name: "Johan Botha", Email: "j.botha@solplaatje.org.za", DepartmentID: DeptRoadsTransport, Role: models.RoleFieldWorker, Active: false, WorkloadCapacity: 10, Performance: models.Performance{CitizenSatisfaction: 4.9, CompletedReports: 120}},
		{ID: "staff-008", Name: "Zanele Mthembu", Email: "z.mthembu@solplaatje.org.za", DepartmentID: DeptWaterSanitation, Role: models.RoleManager, Active: true, WorkloadCapacity: 5, Performance: models.Performance{CitizenSatisfaction: 4.7}},
		{ID: "staff-009", Name: "Keabetswe Moloi", Email: "k.moloi@solplaatje.org.za", DepartmentID: DeptParks, Role: models.RoleFieldWorker, Active: true, WorkloadCapacity: 10, Performance: models.Performance{CitizenSatisfaction: 4.0, CompletedReports: 77}},
	}
}
