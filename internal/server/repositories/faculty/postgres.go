package faculty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"facultydesk/internal/dbx"
	"facultydesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, name, email, phone, cover_letter, position, department, expertise, join_date, retirement_date, retired`

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.FacultyRecord, error) {
	query :=
		`SELECT ` + selectColumns + ` FROM faculty_members
		 WHERE user_id = $1
		 ORDER BY join_date, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, rec *models.FacultyRecord) (*models.FacultyRecord, error) {

	query :=
		`INSERT INTO faculty_members (id, user_id, name, email, phone, cover_letter, position, department, expertise, join_date, retirement_date, retired)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 `

	rec.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, userID, rec.Name, rec.Email, rec.Phone, rec.CoverLetter,
		rec.Position, rec.Department, rec.Expertise, rec.JoinDate, rec.RetirementDate, rec.Retired)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) RefreshRetired(ctx context.Context, userID string, now time.Time) error {
	// Strict comparison: a member retiring exactly at the evaluation
	// instant is not yet retired.
	query :=
		`UPDATE faculty_members SET retired = (retirement_date < $2)
		 WHERE user_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListRetired(ctx context.Context, userID string) ([]models.FacultyRecord, error) {
	query :=
		`SELECT ` + selectColumns + ` FROM faculty_members
		 WHERE user_id = $1 AND retired
		 ORDER BY join_date, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *PostgresRepository) DeleteRetired(ctx context.Context, userID string) (int64, error) {
	query :=
		`DELETE FROM faculty_members
		 WHERE user_id = $1 AND retired
		 `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func scanRecords(rows rowScanner) ([]models.FacultyRecord, error) {
	recs := make([]models.FacultyRecord, 0)
	for rows.Next() {
		var rec models.FacultyRecord
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Email, &rec.Phone, &rec.CoverLetter,
			&rec.Position, &rec.Department, &rec.Expertise,
			&rec.JoinDate, &rec.RetirementDate, &rec.Retired,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recs, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}
