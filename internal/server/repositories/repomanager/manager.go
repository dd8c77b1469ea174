package repomanager

import (
	"context"
	"database/sql"

	"facultydesk/internal/dbx"
	"facultydesk/internal/server/repositories/faculty"
	"facultydesk/internal/server/repositories/users"
	"facultydesk/internal/server/repositories/vacancies"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same repository inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Faculty(db dbx.DBTX) faculty.Repository
	Vacancies(db dbx.DBTX) vacancies.Repository
}
