package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"facultydesk/internal/common"
	"facultydesk/internal/dbx"
	"facultydesk/internal/server/models"
	facultyrepo "facultydesk/internal/server/repositories/faculty"
	usersrepo "facultydesk/internal/server/repositories/users"
	vacanciesrepo "facultydesk/internal/server/repositories/vacancies"
)

// --- in-memory fakes, shared by the service tests ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func (f *fakeUsersRepo) add(u *models.User) *models.User {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = fmt.Sprintf("u-%d", len(f.byID)+1)
	return f.add(u), nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeFacultyRepo struct {
	rows []models.FacultyRecord
	seq  int

	createErr error
}

func (f *fakeFacultyRepo) ListByUser(ctx context.Context, userID string) ([]models.FacultyRecord, error) {
	return append([]models.FacultyRecord(nil), f.rows...), nil
}

func (f *fakeFacultyRepo) Create(ctx context.Context, userID string, rec *models.FacultyRecord) (*models.FacultyRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	rec.ID = fmt.Sprintf("f-%d", f.seq)
	f.rows = append(f.rows, *rec)
	return rec, nil
}

func (f *fakeFacultyRepo) RefreshRetired(ctx context.Context, userID string, now time.Time) error {
	for i := range f.rows {
		f.rows[i].Retired = f.rows[i].RetirementDate.Before(now)
	}
	return nil
}

func (f *fakeFacultyRepo) ListRetired(ctx context.Context, userID string) ([]models.FacultyRecord, error) {
	out := make([]models.FacultyRecord, 0)
	for _, r := range f.rows {
		if r.Retired {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFacultyRepo) DeleteRetired(ctx context.Context, userID string) (int64, error) {
	kept := f.rows[:0]
	var n int64
	for _, r := range f.rows {
		if r.Retired {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

type fakeVacanciesRepo struct {
	rows []models.VacancyRecord
	seq  int

	createBatchErr error
	deleteErr      error
}

func (f *fakeVacanciesRepo) ListByUser(ctx context.Context, userID string) ([]models.VacancyRecord, error) {
	return append([]models.VacancyRecord(nil), f.rows...), nil
}

func (f *fakeVacanciesRepo) Create(ctx context.Context, userID string, rec *models.VacancyRecord) (*models.VacancyRecord, error) {
	f.seq++
	rec.ID = fmt.Sprintf("v-%d", f.seq)
	f.rows = append(f.rows, *rec)
	return rec, nil
}

func (f *fakeVacanciesRepo) CreateBatch(ctx context.Context, userID string, recs []models.VacancyRecord) error {
	if f.createBatchErr != nil {
		return f.createBatchErr
	}
	for i := range recs {
		f.seq++
		recs[i].ID = fmt.Sprintf("v-%d", f.seq)
		f.rows = append(f.rows, recs[i])
	}
	return nil
}

func (f *fakeVacanciesRepo) Delete(ctx context.Context, userID string, vacancyID string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	for i, r := range f.rows {
		if r.ID == vacancyID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	f *fakeFacultyRepo
	v *fakeVacanciesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Faculty(db dbx.DBTX) facultyrepo.Repository  { return m.f }
func (m *fakeRepoManager) Vacancies(db dbx.DBTX) vacanciesrepo.Repository {
	return m.v
}
