// Package intake validates the three-step citizen report form and turns a
// completed form into a new report.
package intake

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"civicreport-be/catalog"
	"civicreport-be/models"
	"civicreport-be/municipal"
	"civicreport-be/services"

	"github.com/go-playground/validator/v10"
)

// ErrOutOfScope is returned for issues the municipality does not handle.
var ErrOutOfScope = errors.New("this issue is outside municipal responsibility")

type Step string

const (
	StepReporter Step = "reporter"
	StepLocation Step = "location"
	StepDetails  Step = "details"
)

var Steps = []Step{StepReporter, StepLocation, StepDetails}

// ParseStep accepts a step name or its 1-based position.
func ParseStep(s string) (Step, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", string(StepReporter):
		return StepReporter, true
	case "2", string(StepLocation):
		return StepLocation, true
	case "3", string(StepDetails):
		return StepDetails, true
	}
	return "", false
}

type ReporterInfo struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"omitempty,min=10,max=15"`
}

type LocationInfo struct {
	Municipality string   `json:"municipality" binding:"required"`
	Ward         string   `json:"ward" binding:"required"`
	Address      string   `json:"address" binding:"required,min=5,max=200"`
	Latitude     *float64 `json:"latitude,omitempty" binding:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" binding:"omitempty,longitude"`
}

type IssueDetails struct {
	Category    string `json:"category" binding:"required"`
	Subcategory string `json:"subcategory" binding:"omitempty,max=100"`
	Title       string `json:"title" binding:"required,min=5,max=200"`
	Description string `json:"description" binding:"required,min=10,max=2000"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high emergency urgent"`
}

type Form struct {
	Reporter ReporterInfo `json:"reporter"`
	Location LocationInfo `json:"location"`
	Issue    IssueDetails `json:"issue"`
}

// FieldErrors maps a form field to a readable message.
type FieldErrors map[string]string

// ValidationError carries every failing field of a submission.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "invalid report: " + strings.Join(parts, "; ")
}

// ReportCreator is satisfied by services.ReportService.
type ReportCreator interface {
	Create(ctx context.Context, r models.Report) (models.Report, error)
}

type Intake struct {
	catalog  *catalog.Catalog
	reports  ReportCreator
	validate *validator.Validate
}

func New(cat *catalog.Catalog, reports ReportCreator) *Intake {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Intake{catalog: cat, reports: reports, validate: v}
}

// ValidateStep checks one step of the form. A nil result means the step is
// complete and the citizen may move on.
func (in *Intake) ValidateStep(step Step, form Form) FieldErrors {
	switch step {
	case StepReporter, StepLocation, StepDetails:
	default:
		return FieldErrors{"step": "unknown step"}
	}

	fields := in.check(stepValue(step, form), string(step))
	if step == StepLocation && len(fields) == 0 {
		if err := in.checkWard(form.Location); err != nil {
			fields = FieldErrors{}
			switch {
			case errors.Is(err, services.ErrUnknownMunicipality):
				fields["location.municipality"] = "is not a supported municipality"
			default:
				fields["location.ward"] = "is not a ward of this municipality"
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (in *Intake) check(v any, prefix string) FieldErrors {
	err := in.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{prefix: err.Error()}
	}
	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[prefix+"."+fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "latitude", "longitude":
		return "must be a valid " + fe.Tag()
	}
	return "is invalid"
}

func (in *Intake) checkWard(loc LocationInfo) error {
	m, ok := in.catalog.Municipality(loc.Municipality)
	if !ok {
		return services.ErrUnknownMunicipality
	}
	if _, ok := m.Ward(loc.Ward); !ok {
		return services.ErrUnknownWard
	}
	return nil
}

// Submit validates every step and creates the report. Department, reference
// number and expected resolution are derived by the report service.
func (in *Intake) Submit(ctx context.Context, form Form) (models.Report, error) {
	fields := FieldErrors{}
	for _, step := range Steps {
		for k, v := range in.check(stepValue(step, form), string(step)) {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return models.Report{}, &ValidationError{Fields: fields}
	}

	category := models.Category(strings.ToLower(strings.TrimSpace(form.Issue.Category)))
	if !municipal.IsWithinMunicipalScope(category, form.Issue.Title+" "+form.Issue.Description) {
		return models.Report{}, ErrOutOfScope
	}

	m, ok := in.catalog.Municipality(form.Location.Municipality)
	if !ok {
		return models.Report{}, services.ErrUnknownMunicipality
	}
	ward, ok := m.Ward(form.Location.Ward)
	if !ok {
		return models.Report{}, services.ErrUnknownWard
	}

	report := models.Report{
		Title:         strings.TrimSpace(form.Issue.Title),
		Description:   strings.TrimSpace(form.Issue.Description),
		Category:      category,
		Subcategory:   strings.TrimSpace(form.Issue.Subcategory),
		Priority:      models.Priority(form.Issue.Priority).Normalize(),
		Location:      strings.TrimSpace(form.Location.Address),
		Ward:          ward.ID,
		Municipality:  m.ID,
		Latitude:      form.Location.Latitude,
		Longitude:     form.Location.Longitude,
		ReporterName:  strings.TrimSpace(form.Reporter.Name),
		ReporterEmail: strings.ToLower(strings.TrimSpace(form.Reporter.Email)),
		ReporterPhone: strings.TrimSpace(form.Reporter.Phone),
	}
	return in.reports.Create(ctx, report)
}

func stepValue(step Step, form Form) any {
	switch step {
	case StepReporter:
		return form.Reporter
	case StepLocation:
		return form.Location
	}
	return form.Issue
}
