package domain

import "time"

// ExportRecord is one flattened (employee, day, task) line of a submission.
// JSON names follow the central server's column headers.
type ExportRecord struct {
	Employee   string  `json:"Employee"`
	Department string  `json:"Department"`
	WeekStart  string  `json:"Week Start"`
	Date       string  `json:"Day"`
	Task       string  `json:"Task"`
	Subtask    string  `json:"Subtask"`
	Hours      float64 `json:"Hours"`
	Notes      string  `json:"Notes"`
}

// RemoteResult records the outcome of posting a submission to the remote sink.
type RemoteResult struct {
	Attempted  bool
	OK         bool
	StatusCode int
	Error      string
}

// SubmissionStatus is stored on the sheet after each successful Submit.
type SubmissionStatus struct {
	SubmissionID string
	SubmittedAt  time.Time
	RecordCount  int
	ExportPath   string
	Remote       RemoteResult
}
