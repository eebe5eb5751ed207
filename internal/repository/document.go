package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// sheetDocument is the persisted JSON shape of a week sheet:
//
//	{"submitted": false, "rows": [{"task", "subtask", "days": [
//	    {"sessions": [[start, end]], "notes", "running_start"} x7]}],
//	 "active": {"row", "day"}, "lastSubmissionStatus": {...}}
type sheetDocument struct {
	Submitted            bool            `json:"submitted"`
	Rows                 []rowDocument   `json:"rows"`
	Active               *cellDocument   `json:"active"`
	LastSubmissionStatus *statusDocument `json:"lastSubmissionStatus,omitempty"`
}

type rowDocument struct {
	Task    string        `json:"task"`
	Subtask string        `json:"subtask"`
	Days    []dayDocument `json:"days"`
}

type dayDocument struct {
	Sessions     [][]string `json:"sessions"`
	Notes        string     `json:"notes"`
	RunningStart *string    `json:"running_start"`
}

type cellDocument struct {
	Row int `json:"row"`
	Day int `json:"day"`
}

type statusDocument struct {
	SubmissionID string         `json:"submission_id"`
	SubmittedAt  string         `json:"submitted_at"`
	RecordCount  int            `json:"record_count"`
	ExportPath   string         `json:"export_path"`
	Remote       remoteDocument `json:"remote"`

	// ServerUpload is the boolean flag written by older clients.
	ServerUpload *bool `json:"server_upload,omitempty"`
}

type remoteDocument struct {
	Attempted  bool   `json:"attempted"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// timestampLayouts are tried in order when decoding. The naive layouts match
// documents written without a zone and are read in time.Local.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// EncodeSheet serializes a sheet to its stored JSON document.
func EncodeSheet(w *domain.WeekSheet) ([]byte, error) {
	doc := sheetDocument{
		Submitted: w.Submitted,
		Rows:      make([]rowDocument, 0, len(w.Rows)),
	}
	for _, r := range w.Rows {
		rd := rowDocument{Task: r.Task, Subtask: r.Subtask, Days: make([]dayDocument, domain.DaysPerWeek)}
		for i, d := range r.Days {
			dd := dayDocument{Sessions: make([][]string, 0, len(d.Sessions)), Notes: d.Notes}
			for _, s := range d.Sessions {
				dd.Sessions = append(dd.Sessions, []string{formatTimestamp(s.Start), formatTimestamp(s.End)})
			}
			if d.RunningStart != nil {
				ts := formatTimestamp(*d.RunningStart)
				dd.RunningStart = &ts
			}
			rd.Days[i] = dd
		}
		doc.Rows = append(doc.Rows, rd)
	}
	if w.Active != nil {
		doc.Active = &cellDocument{Row: w.Active.Row, Day: w.Active.Day}
	}
	if s := w.LastSubmission; s != nil {
		doc.LastSubmissionStatus = &statusDocument{
			SubmissionID: s.SubmissionID,
			SubmittedAt:  formatTimestamp(s.SubmittedAt),
			RecordCount:  s.RecordCount,
			ExportPath:   s.ExportPath,
			Remote: remoteDocument{
				Attempted:  s.Remote.Attempted,
				OK:         s.Remote.OK,
				StatusCode: s.Remote.StatusCode,
				Error:      s.Remote.Error,
			},
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding week sheet %s: %w", w.Key, err)
	}
	return data, nil
}

// DecodeSheet parses a stored document for key. Rows with fewer than seven
// days are padded; extra days are dropped.
func DecodeSheet(key domain.WeekKey, data []byte) (*domain.WeekSheet, error) {
	var doc sheetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding week sheet %s: %w", key, err)
	}
	return doc.toDomain(key)
}

func (doc *sheetDocument) toDomain(key domain.WeekKey) (*domain.WeekSheet, error) {
	w := domain.NewWeekSheet(key)
	w.Submitted = doc.Submitted

	for ri, rd := range doc.Rows {
		row := domain.NewTaskRow(rd.Task, rd.Subtask)
		for di, dd := range rd.Days {
			if di >= domain.DaysPerWeek {
				break
			}
			day := domain.DayRecord{Notes: dd.Notes}
			for si, pair := range dd.Sessions {
				if len(pair) != 2 {
					return nil, fmt.Errorf("row %d day %d session %d: want [start, end], got %d values", ri, di, si, len(pair))
				}
				start, err := parseTimestamp(pair[0])
				if err != nil {
					return nil, fmt.Errorf("row %d day %d session %d start: %w", ri, di, si, err)
				}
				end, err := parseTimestamp(pair[1])
				if err != nil {
					return nil, fmt.Errorf("row %d day %d session %d end: %w", ri, di, si, err)
				}
				day.Sessions = append(day.Sessions, domain.NewSession(start, end))
			}
			if dd.RunningStart != nil && *dd.RunningStart != "" {
				rs, err := parseTimestamp(*dd.RunningStart)
				if err != nil {
					return nil, fmt.Errorf("row %d day %d running_start: %w", ri, di, err)
				}
				day.RunningStart = &rs
			}
			row.Days[di] = day
		}
		w.Rows = append(w.Rows, row)
	}

	if doc.Active != nil {
		w.Active = &domain.Cell{Row: doc.Active.Row, Day: doc.Active.Day}
	}
	if sd := doc.LastSubmissionStatus; sd != nil {
		status := domain.SubmissionStatus{
			SubmissionID: sd.SubmissionID,
			RecordCount:  sd.RecordCount,
			ExportPath:   sd.ExportPath,
			Remote: domain.RemoteResult{
				Attempted:  sd.Remote.Attempted,
				OK:         sd.Remote.OK,
				StatusCode: sd.Remote.StatusCode,
				Error:      sd.Remote.Error,
			},
		}
		if sd.SubmittedAt != "" {
			if at, err := parseTimestamp(sd.SubmittedAt); err == nil {
				status.SubmittedAt = at
			}
		}
		if sd.ServerUpload != nil {
			status.Remote.Attempted = true
			status.Remote.OK = *sd.ServerUpload
		}
		w.LastSubmission = &status
	}
	return w, nil
}

// legacyEntry is one value of the flat {"employee::monday": {...}} file the
// first version of the app kept on disk.
type legacyEntry struct {
	sheetDocument
	ServerUpload *bool `json:"server_upload,omitempty"`
}

// DecodeLegacyFile parses a flat key-to-sheet JSON file. Entries whose key
// or content cannot be decoded are returned in skipped instead of failing
// the whole file.
func DecodeLegacyFile(data []byte) (sheets []*domain.WeekSheet, skipped map[string]error, err error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decoding legacy file: %w", err)
	}

	skipped = map[string]error{}
	for k, msg := range raw {
		key, err := domain.ParseWeekKey(k)
		if err != nil {
			skipped[k] = err
			continue
		}
		var entry legacyEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			skipped[k] = err
			continue
		}
		w, err := entry.toDomain(key)
		if err != nil {
			skipped[k] = err
			continue
		}
		if entry.ServerUpload != nil && w.LastSubmission == nil {
			w.LastSubmission = &domain.SubmissionStatus{
				Remote: domain.RemoteResult{Attempted: true, OK: *entry.ServerUpload},
			}
		}
		sheets = append(sheets, w)
	}
	return sheets, skipped, nil
}
