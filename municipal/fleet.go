package municipal

import "civicreport-be/models"

var vehiclePreferences = map[models.Category][]string{
	models.CategoryWater:       {"water-tanker", "jetting-vehicle", "utility-truck"},
	"water-outage":             {"water-tanker", "utility-truck"},
	"sewage":                   {"jetting-vehicle", "utility-truck"},
	models.CategoryRoads:       {"road-maintenance-truck", "tipper-truck"},
	"potholes":                 {"road-maintenance-truck", "tipper-truck"},
	models.CategoryTraffic:     {"cherry-picker", "bakkie"},
	models.CategoryElectricity: {"cherry-picker", "bakkie"},
	"streetlights":             {"cherry-picker", "bakkie"},
	models.CategoryWaste:       {"refuse-truck", "tipper-truck"},
	"illegal-dumping":          {"tipper-truck", "refuse-truck"},
	models.CategoryCrime:       {"patrol-vehicle"},
	models.CategoryParks:       {"utility-truck", "bakkie"},
}

// RankFleetVehicles returns the available vehicles of a department, those
// matching the category's preferred types first (in preference order),
// then the rest in fleet order.
func RankFleetVehicles(fleet []models.FleetVehicle, departmentID string, category models.Category) []models.FleetVehicle {
	var available []models.FleetVehicle
	for _, v := range fleet {
		if v.DepartmentID == departmentID && v.Status == models.VehicleAvailable {
			available = append(available, v)
		}
	}

	ranked := make([]models.FleetVehicle, 0, len(available))
	used := make(map[string]bool, len(available))
	for _, vehicleType := range vehiclePreferences[category] {
		for _, v := range available {
			if v.Type == vehicleType && !used[v.ID] {
				ranked = append(ranked, v)
				used[v.ID] = true
			}
		}
	}
	for _, v := range available {
		if !used[v.ID] {
			ranked = append(ranked, v)
		}
	}
	return ranked
}

// AssignFleetVehicle picks the best available vehicle without reserving it.
// Callers that can race should go through fleet.Dispatcher.
func AssignFleetVehicle(fleet []models.FleetVehicle, departmentID string, category models.Category) (models.FleetVehicle, bool) {
	ranked := RankFleetVehicles(fleet, departmentID, category)
	if len(ranked) == 0 {
		return models.FleetVehicle{}, false
	}
	return ranked[0], true
}
