package municipal

import (
	"civicreport-be/catalog"
	"civicreport-be/models"
)

// FallbackDepartment receives every category without an explicit route.
const FallbackDepartment = catalog.DeptPublicSafety

var departmentRoutes = map[models.Category]string{
	models.CategoryWater:       catalog.DeptWaterSanitation,
	models.CategoryRoads:       catalog.DeptRoadsTransport,
	models.CategoryTraffic:     catalog.DeptRoadsTransport,
	models.CategoryElectricity: catalog.DeptElectricity,
	models.CategoryWaste:       catalog.DeptWaste,
	models.CategoryCrime:       catalog.DeptPublicSafety,
	models.CategoryParks:       catalog.DeptParks,
	models.CategoryHousing:     catalog.DeptHousing,
	models.CategoryHealth:      catalog.DeptHealth,
	models.CategoryBuilding:    catalog.DeptPlanning,
	models.CategoryEnvironment: catalog.DeptEnvironment,

	"potholes":        catalog.DeptRoadsTransport,
	"water-outage":    catalog.DeptWaterSanitation,
	"sewage":          catalog.DeptWaterSanitation,
	"illegal-dumping": catalog.DeptWaste,
	"streetlights":    catalog.DeptElectricity,
}

// AssignDepartment maps a category to the department responsible for it.
func AssignDepartment(category models.Category) string {
	if dept, ok := departmentRoutes[category]; ok {
		return dept
	}
	return FallbackDepartment
}
