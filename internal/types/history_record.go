package types

// HistoryRecord is one row of history.csv. Append-only; a user has zero or
// more records.
type HistoryRecord struct {
  Username    string  `json:"username"`
  SubjectCode string  `json:"subject_code"`
  Grade       string  `json:"grade"`
  Attendance  string  `json:"attendance"`
  Semester    int     `json:"semester"`
}
