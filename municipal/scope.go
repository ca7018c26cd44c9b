// Package municipal holds the classification and assignment rules applied
// to civic reports: scope checks, department routing, resolution windows,
// reference numbers, staff and vehicle selection, and statistics.
package municipal

import (
	"strings"

	"civicreport-be/models"
)

// outOfScopeKeywords name topics handled by provincial or national bodies.
var outOfScopeKeywords = []string{
	"maritime", "shipping lane", "harbour", "coast guard",
	"immigration", "visa", "passport", "asylum", "deportation",
	"federal court", "high court", "supreme court", "constitutional court", "magistrate",
	"bank dispute", "banking dispute", "credit card", "loan dispute", "insurance claim",
	"divorce", "child custody", "family law", "maintenance order", "adoption",
	"income tax", "tax return", "sars",
	"military", "defence force", "air force",
	"airport", "aviation", "pension fund", "social grant", "sassa",
}

var currentCategories = map[models.Category]bool{
	models.CategoryWater:       true,
	models.CategoryRoads:       true,
	models.CategoryElectricity: true,
	models.CategoryWaste:       true,
	models.CategoryCrime:       true,
	models.CategoryParks:       true,
	models.CategoryHousing:     true,
	models.CategoryHealth:      true,
	models.CategoryTraffic:     true,
	models.CategoryBuilding:    true,
	models.CategoryEnvironment: true,
	models.CategoryOther:       true,
}

// Category ids still present on records created before the category list
// was reorganised.
var legacyCategories = map[models.Category]bool{
	"potholes":        true,
	"water-outage":    true,
	"illegal-dumping": true,
	"streetlights":    true,
	"sewage":          true,
}

// KnownCategory reports whether category is a current or legacy id.
func KnownCategory(category models.Category) bool {
	return currentCategories[category] || legacyCategories[category]
}

// IsWithinMunicipalScope rejects any report mentioning a denylisted topic,
// then accepts only known categories. It is a keyword filter and will
// misclassify some text.
func IsWithinMunicipalScope(category models.Category, description string) bool {
	text := strings.ToLower(string(category) + " " + description)
	for _, kw := range outOfScopeKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return KnownCategory(category)
}
