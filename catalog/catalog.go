package catalog

import (
	"fmt"
	"os"
	"strings"

	"civicreport-be/models"

	"gopkg.in/yaml.v3"
)

// Catalog holds the reference data the service runs against. It is read-only
// once loaded.
type Catalog struct {
	Municipalities []models.Municipality  `yaml:"municipalities"`
	Categories     []models.IssueCategory `yaml:"categories"`
	Staff          []models.Staff         `yaml:"staff"`
}

// Load reads a YAML catalog. Sections missing from the file keep the
// built-in defaults.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var fromFile Catalog
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	c := Default()
	if len(fromFile.Municipalities) > 0 {
		c.Municipalities = fromFile.Municipalities
	}
	if len(fromFile.Categories) > 0 {
		c.Categories = fromFile.Categories
	}
	if len(fromFile.Staff) > 0 {
		c.Staff = fromFile.Staff
	}
	return c, nil
}

// Municipality finds a municipality by id or by case-insensitive name.
func (c *Catalog) Municipality(key string) (models.Municipality, bool) {
	for _, m := range c.Municipalities {
		if m.ID == key || strings.EqualFold(m.Name, key) {
			return m, true
		}
	}
	return models.Municipality{}, false
}

func (c *Catalog) Category(id models.Category) (models.IssueCategory, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.IssueCategory{}, false
}

// Fleet returns every vehicle of every municipality, or only those of
// municipalityID when it is set.
func (c *Catalog) Fleet(municipalityID string) []models.FleetVehicle {
	var out []models.FleetVehicle
	for _, m := range c.Municipalities {
		if municipalityID != "" && m.ID != municipalityID {
			continue
		}
		out = append(out, m.Fleet...)
	}
	return out
}

func (c *Catalog) StaffMember(id string) (models.Staff, bool) {
	for _, s := range c.Staff {
		if s.ID == id {
			return s, true
		}
	}
	return models.Staff{}, false
}

// StaffInDepartment lists staff of one department; an empty id lists everyone.
func (c *Catalog) StaffInDepartment(departmentID string) []models.Staff {
	out := make([]models.Staff, 0, len(c.Staff))
	for _, s := range c.Staff {
		if departmentID == "" || s.DepartmentID == departmentID {
			out = append(out, s)
		}
	}
	return out
}
