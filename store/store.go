// Package store persists reports and users.
package store

import (
	"context"
	"errors"

	"civicreport-be/models"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrDuplicateID    = errors.New("report id already exists")
	// ErrDuplicateReference means another report took the reference number
	// between generation and insert.
	ErrDuplicateReference = errors.New("reference number already in use")
	// ErrConflict means the report changed between read and write.
	ErrConflict = errors.New("report was modified by another request")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
)

// ReportStore keeps the ordered report collection. Update is a
// compare-and-swap on Report.Version.
type ReportStore interface {
	Create(ctx context.Context, report models.Report) (models.Report, error)
	Get(ctx context.Context, id string) (models.Report, error)
	List(ctx context.Context) ([]models.Report, error)
	Update(ctx context.Context, report models.Report) (models.Report, error)
	Delete(ctx context.Context, id string) error
	ReferenceExists(ctx context.Context, ref string) (bool, error)
}

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
}
