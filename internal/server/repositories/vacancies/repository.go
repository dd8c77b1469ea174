package vacancies

import (
	"context"

	"facultydesk/internal/server/models"
)

// Repository is the vacancy ledger: user-scoped open positions.
type Repository interface {
	// ListByUser returns every open position in the user's ledger.
	ListByUser(ctx context.Context, userID string) ([]models.VacancyRecord, error)

	// Create inserts a single vacancy with a server-generated id.
	Create(ctx context.Context, userID string, rec *models.VacancyRecord) (*models.VacancyRecord, error)

	// CreateBatch inserts the given vacancies, assigning each an id.
	CreateBatch(ctx context.Context, userID string, recs []models.VacancyRecord) error

	// Delete removes the vacancy with the given id and reports how many
	// rows were removed (0 when the id did not match).
	Delete(ctx context.Context, userID string, vacancyID string) (int64, error)
}
