package municipal

import "civicreport-be/models"

var crimeResolution = map[models.Priority]string{
	models.PriorityEmergency: "1-4 hours",
	models.PriorityHigh:      "4-24 hours",
	models.PriorityMedium:    "24-48 hours",
	models.PriorityLow:       "2-7 days",
}

var defaultResolution = map[models.Priority]string{
	models.PriorityEmergency: "4-8 hours",
	models.PriorityHigh:      "1-2 days",
	models.PriorityMedium:    "3-5 days",
	models.PriorityLow:       "7-14 days",
}

// GetExpectedResolutionTime returns the resolution window shown to the
// reporter. Crime reports are timed by priority; every other known category
// uses its catalog text; unknown categories fall back to a priority table.
func GetExpectedResolutionTime(categories []models.IssueCategory, category models.Category, priority models.Priority) string {
	p := priority.Normalize()
	if !p.Valid() {
		p = models.PriorityMedium
	}

	if category == models.CategoryCrime {
		return crimeResolution[p]
	}
	for _, c := range categories {
		if c.ID == category && c.ExpectedResolution != "" {
			return c.ExpectedResolution
		}
	}
	return defaultResolution[p]
}
