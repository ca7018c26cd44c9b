package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"civicreport-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLookups(t *testing.T) {
	c := Default()

	m, ok := c.Municipality("sol-plaatje")
	require.True(t, ok)
	assert.Equal(t, "sol-plaatje", m.ID)
	assert.Len(t, m.Wards, 33)

	byName, ok := c.Municipality("dawid kruiper local municipality")
	require.True(t, ok)
	assert.Equal(t, "dawid-kruiper", byName.ID)

	_, ok = c.Municipality("nowhere")
	assert.False(t, ok)

	cat, ok := c.Category(models.CategoryCrime)
	require.True(t, ok)
	assert.Equal(t, DeptPublicSafety, cat.DepartmentID)

	assert.NotEmpty(t, c.Fleet("sol-plaatje"))
	assert.Empty(t, c.Fleet("nowhere"))

	st, ok := c.StaffMember("staff-008")
	require.True(t, ok)
	assert.Equal(t, models.RoleManager, st.Role)

	for _, s := range c.StaffInDepartment(DeptWaterSanitation) {
		assert.Equal(t, DeptWaterSanitation, s.DepartmentID)
	}
}

func TestLoadOverridesOnlyPresentSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
categories:
  - id: water-issues
    name: Water
    department: water-sanitation
    expectedResolution: "12-24 hours"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	require.Len(t, c.Categories, 1)
	assert.Equal(t, models.CategoryWater, c.Categories[0].ID)
	assert.Equal(t, Default().Municipalities, c.Municipalities)
	assert.Equal(t, Default().Staff, c.Staff)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("municipalities: [unterminated"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSampleReportsAreConsistent(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	reports := SampleReports(now)
	require.NotEmpty(t, reports)

	seen := map[string]bool{}
	for _, r := range reports {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		assert.True(t, r.Status.Valid(), r.ID)
		assert.True(t, r.Priority.Valid(), r.ID)
		assert.False(t, r.CreatedAt.After(now), r.ID)
		assert.Regexp(t, `^SPM-\d{8}-W\d{2}-[A-Z]{2}\d{3}$`, r.ReferenceNumber)
		if r.FeedbackRating != nil {
			assert.True(t, r.Status.IsResolved(), r.ID)
		}
	}
}
