package models

import "time"

// User owns one faculty ledger and one vacancy ledger. The password is
// stored only as a bcrypt hash and never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// UserSnapshot is a read model: the user together with the current state of
// both ledgers, returned by the application flow.
type UserSnapshot struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Faculty   []FacultyRecord `json:"faculty"`
	Vacancies []VacancyRecord `json:"vacancies"`
}
