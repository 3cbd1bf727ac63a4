package models

// Exam is a scheduled exam entry. Exams live in their own store,
// independent of subjects, and support create/delete only.
type Exam struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Color   string `json:"color"`
}
