package catalog

import (
	"fmt"
	"time"

	"civicreport-be/models"
)

// SampleReports returns demo reports dated relative to now, for running the
// service without a database.
func SampleReports(now time.Time) []models.Report {
	now = now.UTC()
	at := func(daysAgo, hours int) time.Time {
		return now.AddDate(0, 0, -daysAgo).Add(time.Duration(hours) * time.Hour)
	}
	ptr := func(t time.Time) *time.Time { return &t }
	rating := func(v int) *int { return &v }
	ref := func(t time.Time, ward int, prefix string, n int) string {
		return fmt.Sprintf("SPM-%s-W%02d-%s%03d", t.Format("20060102"), ward, prefix, n)
	}
	log := func(t time.Time, msg string) []models.CommunicationEntry {
		return []models.CommunicationEntry{{
			ID:        fmt.Sprintf("seed-%d", t.Unix()),
			Type:      models.EntrySystem,
			Message:   msg,
			Sender:    "system",
			Timestamp: t,
		}}
	}

	r1 := at(2, 0)
	r2 := at(5, 0)
	r3 := at(9, 0)
	r4 := at(40, 0)
	r5 := at(1, 0)
	r6 := at(75, 0)
	r7 := at(12, 0)
	r8 := at(3, 0)

	return []models.Report{
		{
			ID: "1", ReferenceNumber: ref(r1, 7, "WA", 114),
			Title: "No water supply on Jacobs Street", Description: "Taps have been dry since yesterday morning in the whole block.",
			Category: models.CategoryWater, Subcategory: "No water", Priority: models.PriorityHigh, Status: models.StatusPending,
			Location: "14 Jacobs Street, Galeshewe", Ward: "7", Municipality: "sol-plaatje",
			ReporterName: "Thandiwe Sithole", ReporterEmail: "thandiwe.sithole@example.com", ReporterPhone: "0821234567",
			AssignedDepartment: DeptWaterSanitation, EstimatedResolution: "24-72 hours",
			CreatedAt: r1, UpdatedAt: r1, CommunicationLog: log(r1, "Report received."),
		},
		{
			ID: "2", ReferenceNumber: ref(r2, 12, "RO", 57),
			Title: "Large pothole near taxi rank", Description: "Deep pothole causing taxis to swerve into oncoming traffic.",
			Category: models.CategoryRoads, Subcategory: "Pothole", Priority: models.PriorityMedium, Status: models.StatusInProgress,
			Location: "Bultfontein Road taxi rank", Ward: "12", Municipality: "sol-plaatje",
			ReporterName: "Johannes Pretorius", ReporterEmail: "j.pretorius@example.com",
			AssignedDepartment: DeptRoadsTransport, AssignedTo: "staff-003", EstimatedResolution: "5-14 days",
			CreatedAt: r2, UpdatedAt: r2.Add(6 * time.Hour), CommunicationLog: log(r2, "Report received."),
		},
		{
			ID: "3", ReferenceNumber: ref(r3, 3, "WA", 902),
			Title: "Illegal dumping behind community hall", Description: "Building rubble and household waste dumped on the open field.",
			Category: models.CategoryWaste, Subcategory: "Illegal dumping", Priority: models.PriorityLow, Status: models.StatusCompleted,
			Location: "Roodepan Community Hall", Ward: "3", Municipality: "sol-plaatje",
			ReporterName: "Fatima Adams", ReporterEmail: "fatima.adams@example.com",
			AssignedDepartment: DeptWaste, AssignedTo: "staff-005", EstimatedResolution: "2-5 days",
			CreatedAt: r3, UpdatedAt: r3.Add(50 * time.Hour), ActualResolutionTime: ptr(r3.Add(50 * time.Hour)), ClosedAt: ptr(r3.Add(50 * time.Hour)),
			FeedbackRating: rating(4), FeedbackComments: "Cleaned up quickly, thank you.",
			CommunicationLog: log(r3, "Report received."),
		},
		{
			ID: "4", ReferenceNumber: ref(r4, 7, "EL", 331),
			Title: "Streetlights out on Long Street", Description: "Five streetlights have been off for two weeks, area is unsafe at night.",
			Category: models.CategoryElectricity, Subcategory: "Streetlight out", Priority: models.PriorityMedium, Status: models.StatusResolved,
			Location: "Long Street, Kimberley CBD", Ward: "7", Municipality: "sol-plaatje",
			ReporterName: "Thandiwe Sithole", ReporterEmail: "thandiwe.sithole@example.com",
			AssignedDepartment: DeptElectricity, AssignedTo: "staff-004", AssignedVehicle: "SP-CP-01", EstimatedResolution: "4-48 hours",
			CreatedAt: r4, UpdatedAt: r4.Add(30 * time.Hour), ActualResolutionTime: ptr(r4.Add(30 * time.Hour)),
			CommunicationLog: log(r4, "Report received."),
		},
		{
			ID: "5", ReferenceNumber: ref(r5, 21, "CR", 8),
			Title: "Copper cable theft at substation", Description: "Cables cut and stolen at the substation fence, power out in the street.",
			Category: models.CategoryCrime, Subcategory: "Cable theft", Priority: models.PriorityEmergency, Status: models.StatusAssigned,
			Location: "Homestead substation", Ward: "21", Municipality: "sol-plaatje",
			ReporterName: "Mpho Radebe", ReporterEmail: "mpho.radebe@example.com",
			AssignedDepartment: DeptPublicSafety, AssignedTo: "staff-006", EstimatedResolution: "1-4 hours",
			EscalationLevel: 1,
			CreatedAt:       r5, UpdatedAt: r5.Add(time.Hour), CommunicationLog: log(r5, "Report received."),
		},
		{
			ID: "6", ReferenceNumber: ref(r6, 5, "PA", 440),
			Title: "Broken swings at Kimberley Park", Description: "Two swings have snapped chains.",
			Category: models.CategoryParks, Subcategory: "Broken play equipment", Priority: models.PriorityLow, Status: models.StatusClosed,
			Location: "Kimberley Park playground", Ward: "5", Municipality: "sol-plaatje",
			ReporterName: "Anna Visser", ReporterEmail: "anna.visser@example.com",
			AssignedDepartment: DeptParks, AssignedTo: "staff-009", EstimatedResolution: "7-21 days",
			CreatedAt: r6, UpdatedAt: r6.Add(200 * time.Hour), ActualResolutionTime: ptr(r6.Add(200 * time.Hour)), ClosedAt: ptr(r6.Add(220 * time.Hour)),
			FeedbackRating:   rating(3),
			CommunicationLog: log(r6, "Report received."),
		},
		{
			ID: "7", ReferenceNumber: ref(r7, 12, "WA", 615),
			Title: "Sewage overflow on Barkly Road", Description: "Manhole overflowing into the street for three days.",
			Category: models.CategoryWater, Subcategory: "Sewage overflow", Priority: models.PriorityHigh, Status: models.StatusInProgress,
			Location: "Barkly Road near Spar", Ward: "12", Municipality: "sol-plaatje",
			ReporterName: "Sello Maseko", ReporterEmail: "sello.maseko@example.com",
			AssignedDepartment: DeptWaterSanitation, AssignedTo: "staff-001", EstimatedResolution: "24-72 hours",
			CreatedAt: r7, UpdatedAt: r7.Add(4 * time.Hour), CommunicationLog: log(r7, "Report received."),
		},
		{
			ID: "8", ReferenceNumber: ref(r8, 2, "WA", 77),
			Title: "Missed refuse collection", Description: "Bins not collected for two weeks on Schreiner Street.",
			Category: models.CategoryWaste, Subcategory: "Missed collection", Priority: models.PriorityMedium, Status: models.StatusNew,
			Location: "Schreiner Street, Upington", Ward: "2", Municipality: "dawid-kruiper",
			ReporterName: "Lindiwe Nkosi", ReporterEmail: "lindiwe.nkosi@example.com",
			AssignedDepartment: DeptWaste, EstimatedResolution: "2-5 days",
			CreatedAt: r8, UpdatedAt: r8, CommunicationLog: log(r8, "Report received."),
		},
	}
}
