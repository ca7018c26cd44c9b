// Package export writes report listings for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"civicreport-be/models"
)

// Header is the fixed column set of the report export.
var Header = []string{
	"Reference Number",
	"Title",
	"Category",
	"Priority",
	"Status",
	"Ward",
	"Reporter Name",
	"Created At",
	"Assigned Department",
}

// WriteCSV writes reports with the export header. Fields containing commas,
// quotes or line breaks are quoted and embedded quotes are doubled.
func WriteCSV(w io.Writer, reports []models.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range reports {
		record := []string{
			r.ReferenceNumber,
			r.Title,
			string(r.Category),
			string(r.Priority),
			string(r.Status),
			r.Ward,
			r.ReporterName,
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.AssignedDepartment,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write report %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename names an export produced at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("civic-reports-%s.csv", now.Format("2006-01-02"))
}
