// This file implements RosterService: the retirement transition between the
// faculty ledger and the vacancy ledger, plus the application flow that
// consumes a vacancy.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"facultydesk/internal/common"
	"facultydesk/internal/dbx"
	"facultydesk/internal/server/models"
	"facultydesk/internal/server/repositories/repomanager"
)

type RosterService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	// now is a seam for tests; production uses time.Now.
	now func() time.Time
}

func NewRosterService(db *sql.DB, m repomanager.RepositoryManager) *RosterService {
	return &RosterService{
		db:          db,
		repomanager: m,
		now:         time.Now,
	}
}

// reconcile brings both ledgers up to date in one transaction:
//
//  1. write back the derived retired flag for every appointment
//     (retired = retirement_date strictly before now);
//  2. copy each retired appointment into the vacancy ledger, with the
//     retirement date as the application deadline;
//  3. delete the copied appointments from the faculty ledger.
//
// Copy and delete share the transaction, so an appointment is migrated at
// most once and can never be lost between the two ledgers. Running reconcile
// again with no elapsed time is a no-op.
func (s *RosterService) reconcile(ctx context.Context, tx dbx.DBTX, userID string, now time.Time) error {

	facultyRepo := s.repomanager.Faculty(tx)

	if err := facultyRepo.RefreshRetired(ctx, userID, now); err != nil {
		return fmt.Errorf("error refreshing retirement flags: %w", err)
	}

	retired, err := facultyRepo.ListRetired(ctx, userID)
	if err != nil {
		return fmt.Errorf("error listing retired members: %w", err)
	}
	if len(retired) == 0 {
		return nil
	}

	candidates := make([]models.VacancyRecord, 0, len(retired))
	for i := range retired {
		candidates = append(candidates, retired[i].VacancyCandidate())
	}

	if err := s.repomanager.Vacancies(tx).CreateBatch(ctx, userID, candidates); err != nil {
		return fmt.Errorf("error migrating retired members: %w", err)
	}

	if _, err := facultyRepo.DeleteRetired(ctx, userID); err != nil {
		return fmt.Errorf("error pruning retired members: %w", err)
	}

	return nil
}

// ListFaculty reconciles the user's ledgers and returns the current
// non-retired appointments.
func (s *RosterService) ListFaculty(ctx context.Context, userID string) ([]models.FacultyRecord, error) {

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	var out []models.FacultyRecord

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.reconcile(ctx, tx, userID, s.now()); err != nil {
			return err
		}

		list, err := s.repomanager.Faculty(tx).ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("error listing faculty: %w", err)
		}

		out = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListVacancies reconciles the user's ledgers and returns every open
// position: pre-existing vacancies plus any freshly migrated ones.
func (s *RosterService) ListVacancies(ctx context.Context, userID string) ([]models.VacancyRecord, error) {

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	var out []models.VacancyRecord

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.reconcile(ctx, tx, userID, s.now()); err != nil {
			return err
		}

		list, err := s.repomanager.Vacancies(tx).ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("error listing vacancies: %w", err)
		}

		out = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// AddFaculty appends a direct faculty entry to the user's ledger. The
// retired flag starts false and is recomputed on the next listing.
func (s *RosterService) AddFaculty(ctx context.Context, userID string, rec *models.FacultyRecord) (*models.FacultyRecord, error) {

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	rec.Retired = false

	rec, err := s.repomanager.Faculty(s.db).Create(ctx, userID, rec)
	if err != nil {
		return nil, fmt.Errorf("error creating faculty record: %w", err)
	}

	return rec, nil
}

// AddVacancy appends an administratively created opening to the user's
// vacancy ledger.
func (s *RosterService) AddVacancy(ctx context.Context, userID string, rec *models.VacancyRecord) (*models.VacancyRecord, error) {

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	rec, err := s.repomanager.Vacancies(s.db).Create(ctx, userID, rec)
	if err != nil {
		return nil, fmt.Errorf("error creating vacancy: %w", err)
	}

	return rec, nil
}

// Apply records a candidate's application against a vacancy: the candidate
// becomes a new non-retired faculty appointment and the vacancy is removed.
//
// The two writes are deliberately independent, matching the behavior of the
// system this replaces: when the vacancy id matches nothing, the appended
// appointment stays and the caller gets common.ErrVacancyNotFound.
func (s *RosterService) Apply(ctx context.Context, userID string, vacancyID string, candidate *models.FacultyRecord) (*models.UserSnapshot, error) {

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidate.Retired = false

	if _, err := s.repomanager.Faculty(s.db).Create(ctx, userID, candidate); err != nil {
		return nil, fmt.Errorf("error appending faculty record: %w", err)
	}

	n, err := s.repomanager.Vacancies(s.db).Delete(ctx, userID, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("error deleting vacancy: %w", err)
	}
	if n == 0 {
		return nil, common.ErrVacancyNotFound
	}

	return s.snapshot(ctx, user)
}

func (s *RosterService) getUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *RosterService) snapshot(ctx context.Context, user *models.User) (*models.UserSnapshot, error) {
	facultyList, err := s.repomanager.Faculty(s.db).ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty: %w", err)
	}

	vacancyList, err := s.repomanager.Vacancies(s.db).ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing vacancies: %w", err)
	}

	return &models.UserSnapshot{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Faculty:   facultyList,
		Vacancies: vacancyList,
	}, nil
}
