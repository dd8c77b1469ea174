package models

import "time"

// VacancyRecord is one open position in a user's vacancy ledger, either
// created administratively or migrated from a retired faculty appointment.
// It is removed when an application consumes it.
type VacancyRecord struct {
	ID         string    `json:"id"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Expertise  string    `json:"expertise"`
	Deadline   time.Time `json:"deadline"`
}
