package intake

import (
	"context"
	"errors"
	"testing"

	"civicreport-be/catalog"
	"civicreport-be/fleet"
	"civicreport-be/models"
	"civicreport-be/services"
	"civicreport-be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureCreator struct {
	got   []models.Report
	calls int
}

func (c *captureCreator) Create(_ context.Context, r models.Report) (models.Report, error) {
	c.calls++
	c.got = append(c.got, r)
	r.ID = "new"
	return r, nil
}

func validForm() Form {
	lat, lng := -28.7282, 24.7499
	return Form{
		Reporter: ReporterInfo{Name: "Thandiwe Sithole", Email: "Thandiwe@Example.com", Phone: "0821234567"},
		Location: LocationInfo{Municipality: "sol-plaatje", Ward: "7", Address: "14 Jacobs Street", Latitude: &lat, Longitude: &lng},
		Issue: IssueDetails{
			Category:    "water-issues",
			Subcategory: "Burst pipe",
			Title:       "Burst pipe on Jacobs Street",
			Description: "Clean water has been running down the street since this morning.",
			Priority:    "urgent",
		},
	}
}

func TestParseStep(t *testing.T) {
	for in, want := range map[string]Step{"1": StepReporter, "location": StepLocation, " Details ": StepDetails} {
		got, ok := ParseStep(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseStep("4")
	assert.False(t, ok)
}

func TestValidateStep(t *testing.T) {
	in := New(catalog.Default(), &captureCreator{})
	form := validForm()

	for _, step := range Steps {
		assert.Nil(t, in.ValidateStep(step, form), step)
	}

	form.Reporter = ReporterInfo{Name: "T", Email: "not-an-email"}
	errs := in.ValidateStep(StepReporter, form)
	assert.Equal(t, "must be at least 2 characters", errs["reporter.name"])
	assert.Equal(t, "must be a valid email address", errs["reporter.email"])
	assert.NotContains(t, errs, "reporter.phone")

	form = validForm()
	form.Issue.Priority = "whenever"
	form.Issue.Title = ""
	errs = in.ValidateStep(StepDetails, form)
	assert.Equal(t, "is required", errs["issue.title"])
	assert.Contains(t, errs["issue.priority"], "must be one of")

	assert.Contains(t, in.ValidateStep("payment", form), "step")
}

func TestValidateLocationChecksCatalog(t *testing.T) {
	in := New(catalog.Default(), &captureCreator{})

	form := validForm()
	form.Location.Ward = "34"
	assert.Contains(t, in.ValidateStep(StepLocation, form), "location.ward")

	form = validForm()
	form.Location.Municipality = "cape-town"
	assert.Contains(t, in.ValidateStep(StepLocation, form), "location.municipality")

	form = validForm()
	bad := 123.0
	form.Location.Latitude = &bad
	assert.Equal(t, "must be a valid latitude", in.ValidateStep(StepLocation, form)["location.latitude"])
}

func TestSubmitBuildsReport(t *testing.T) {
	creator := &captureCreator{}
	in := New(catalog.Default(), creator)

	_, err := in.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.Len(t, creator.got, 1)

	r := creator.got[0]
	assert.Equal(t, models.CategoryWater, r.Category)
	assert.Equal(t, models.PriorityEmergency, r.Priority)
	assert.Equal(t, "7", r.Ward)
	assert.Equal(t, "sol-plaatje", r.Municipality)
	assert.Equal(t, "thandiwe@example.com", r.ReporterEmail)
	require.NotNil(t, r.Latitude)
}

func TestSubmitRejections(t *testing.T) {
	creator := &captureCreator{}
	in := New(catalog.Default(), creator)
	ctx := context.Background()

	form := validForm()
	form.Reporter.Email = ""
	form.Issue.Description = "short"
	_, err := in.Submit(ctx, form)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "reporter.email")
	assert.Contains(t, verr.Fields, "issue.description")

	form = validForm()
	form.Issue.Category = "other"
	form.Issue.Description = "My passport application has been delayed for months."
	_, err = in.Submit(ctx, form)
	assert.ErrorIs(t, err, ErrOutOfScope)

	form = validForm()
	form.Issue.Category = "space-debris"
	_, err = in.Submit(ctx, form)
	assert.ErrorIs(t, err, ErrOutOfScope)

	form = validForm()
	form.Location.Ward = "99"
	_, err = in.Submit(ctx, form)
	assert.ErrorIs(t, err, services.ErrUnknownWard)

	assert.Zero(t, creator.calls)
}

func TestSubmitThroughReportService(t *testing.T) {
	cat := catalog.Default()
	svc := services.NewReportService(store.NewMemoryReportStore(), cat,
		fleet.NewDispatcher(cat.Fleet, fleet.NewMemoryReserver()), zap.NewNop())

	r, err := New(cat, svc).Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, r.Status)
	assert.Equal(t, catalog.DeptWaterSanitation, r.AssignedDepartment)
	assert.Regexp(t, `^SPM-\d{8}-W07-WA\d{3}$`, r.ReferenceNumber)
}
