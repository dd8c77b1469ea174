package vacancies

import (
	"context"
	"fmt"

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

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.VacancyRecord, error) {
	query :=
		`SELECT id, position, department, expertise, deadline FROM vacancies
		 WHERE user_id = $1
		 ORDER BY deadline, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	recs := make([]models.VacancyRecord, 0)
	for rows.Next() {
		var rec models.VacancyRecord
		if err := rows.Scan(&rec.ID, &rec.Position, &rec.Department, &rec.Expertise, &rec.Deadline); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recs, nil
}

const insertQuery = `INSERT INTO vacancies (id, user_id, position, department, expertise, deadline)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

func (r *PostgresRepository) Create(ctx context.Context, userID string, rec *models.VacancyRecord) (*models.VacancyRecord, error) {

	rec.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, insertQuery,
		rec.ID, userID, rec.Position, rec.Department, rec.Expertise, rec.Deadline)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) CreateBatch(ctx context.Context, userID string, recs []models.VacancyRecord) error {
	for i := range recs {
		recs[i].ID = uuid.NewString()
		_, err := r.db.ExecContext(ctx, insertQuery,
			recs[i].ID, userID, recs[i].Position, recs[i].Department, recs[i].Expertise, recs[i].Deadline)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, vacancyID string) (int64, error) {
	query :=
		`DELETE FROM vacancies
		 WHERE user_id = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, vacancyID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
