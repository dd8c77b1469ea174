package models

import "time"

// FacultyRecord is one appointment in a user's faculty ledger.
//
// Retired is derived state: it is recomputed from RetirementDate on every
// listing (strictly-before comparison) and written back, so the stored value
// is only as fresh as the last read. A record whose retirement date equals
// the evaluation instant is not yet retired.
type FacultyRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CoverLetter    string    `json:"coverLetter"`
	Position       string    `json:"position"`
	Department     string    `json:"department"`
	Expertise      string    `json:"expertise"`
	JoinDate       time.Time `json:"joinDate"`
	RetirementDate time.Time `json:"retirementDate"`
	Retired        bool      `json:"retired"`
}

// VacancyCandidate derives the opening a retired appointment leaves behind.
// The application deadline is the retirement date.
func (f *FacultyRecord) VacancyCandidate() VacancyRecord {
	return VacancyRecord{
		Position:   f.Position,
		Department: f.Department,
		Expertise:  f.Expertise,
		Deadline:   f.RetirementDate,
	}
}
