package faculty

import (
	"context"
	"time"

	"facultydesk/internal/server/models"
)

// Repository is the faculty ledger: user-scoped appointment rows.
type Repository interface {
	// ListByUser returns every appointment in the user's ledger.
	ListByUser(ctx context.Context, userID string) ([]models.FacultyRecord, error)

	// Create inserts a new appointment with a server-generated id.
	Create(ctx context.Context, userID string, rec *models.FacultyRecord) (*models.FacultyRecord, error)

	// RefreshRetired writes back the derived retired flag for every
	// appointment: retired = retirement_date strictly before now.
	RefreshRetired(ctx context.Context, userID string, now time.Time) error

	// ListRetired returns the appointments currently flagged retired.
	ListRetired(ctx context.Context, userID string) ([]models.FacultyRecord, error)

	// DeleteRetired removes all appointments flagged retired and reports
	// how many rows were removed.
	DeleteRetired(ctx context.Context, userID string) (int64, error)
}
