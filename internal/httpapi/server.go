// Package httpapi exposes one request/response handler per user action on
// a week sheet.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/catalog"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
)

// maxBodyBytes bounds request bodies; notes are the largest field.
const maxBodyBytes = 64 << 10

// Catalog is the part of the task catalog the API serves.
type Catalog interface {
	Employees() []string
	Department(employee string) (string, error)
	TaskGroups(department string) []catalog.TaskGroup
}

// Server holds the services behind the handlers.
type Server struct {
	Sheets  service.WeekSheetService
	Timers  service.TimerService
	Submit  service.SubmissionService
	Catalog Catalog
	Now     func() time.Time
	Logger  *slog.Logger
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /weeks/{employee}/{date}", s.handleGetWeek)
	mux.HandleFunc("POST /weeks/{employee}/{date}/rows", s.handleAddRow)
	mux.HandleFunc("DELETE /weeks/{employee}/{date}/rows/{row}", s.handleDeleteRow)
	mux.HandleFunc("POST /weeks/{employee}/{date}/rows/{row}/days/{day}/toggle", s.handleToggle)
	mux.HandleFunc("PUT /weeks/{employee}/{date}/rows/{row}/days/{day}/notes", s.handleSetNotes)
	mux.HandleFunc("POST /weeks/{employee}/{date}/stop", s.handleStop)
	mux.HandleFunc("POST /weeks/{employee}/{date}/submit", s.handleSubmit)
	mux.HandleFunc("GET /employees/{employee}/weeks", s.handleListWeeks)
	mux.HandleFunc("GET /catalog", s.handleCatalog)
	return s.logRequests(mux)
}

type mutationResponse struct {
	Changed bool      `json:"changed"`
	Sheet   SheetView `json:"sheet"`
}

type toggleResponse struct {
	Outcome string     `json:"outcome"`
	Stopped []CellView `json:"stopped"`
	Sheet   SheetView  `json:"sheet"`
}

type submitResponse struct {
	Submitted   bool      `json:"submitted"`
	RecordCount int       `json:"record_count"`
	Sheet       SheetView `json:"sheet"`
}

type weekSummary struct {
	WeekStart string    `json:"week_start"`
	Submitted bool      `json:"submitted"`
	UpdatedAt time.Time `json:"updated_at"`
}

type catalogEmployee struct {
	Name       string              `json:"name"`
	Department string              `json:"department"`
	TaskGroups []catalog.TaskGroup `json:"task_groups"`
}

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	employee, date, ok := s.weekParams(w, r)
	if !ok {
		return
	}
	sheet, err := s.Sheets.LoadOrCreate(r.Context(), employee, date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, NewSheetView(sheet, s.now()))
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	key, ok := s.weekKey(w, r)
	if !ok {
		return
	}
	var body struct {
		Task    string `json:"task"`
		Subtask string `json:"subtask"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}
	sheet, changed, err := s.Sheets.AddRow(r.Context(), key, body.Task, body.Subtask)
	s.writeMutation(w, sheet, changed, err)
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	key, ok := s.weekKey(w, r)
	if !ok {
		return
	}
	row, ok := s.intParam(w, r, "row")
	if !ok {
		return
	}
	sheet, changed, err := s.Sheets.DeleteRow(r.Context(), key, row)
	s.writeMutation(w, sheet, changed, err)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	key, ok := s.weekKey(w, r)
	if !ok {
		return
	}
	row, ok := s.intParam(w, r, "row")
	if !ok {
		return
	}
	day, ok := s.intParam(w, r, "day")
	if !ok {
		return
	}
	sheet, tr, err := s.Timers.Toggle(r.Context(), key, row, day)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := toggleResponse{Outcome: tr.Outcome.String(), Stopped: []CellView{}, Sheet: NewSheetView(sheet, s.now())}
	for _, c := range tr.Stopped {
		resp.Stopped = append(resp.Stopped, CellView{Row: c.Row, Day: c.Day})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetNotes(w http.ResponseWriter, r *http.Request) {
	key, ok := s.weekKey(w, r)
	if !ok {
		return
	}
	row, ok := s.intParam(w, r, "row")
	if !ok {
		return
	}
	day, ok := s.intParam(w, r, "day")
	if !ok {
		return
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}
	sheet, changed, err := s.Sheets.SetNotes(r.Context(), key, row, day, body.Notes)
	s.writeMutation(w, sheet, changed, err)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	key, ok := s.weekKey(w, r)
	if !ok {
		return
	}
	sheet, cell, err := s.Timers.StopActive(r.Context(), key)
	s.writeMutation(w, sheet, cell != nil, err)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	key, ok := s.weekKey(w, r)
	if !ok {
		return
	}
	result, err := s.Submit.Submit(r.Context(), key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, submitResponse{
		Submitted:   result.Submitted,
		RecordCount: len(result.Records),
		Sheet:       NewSheetView(result.Sheet, s.now()),
	})
}

func (s *Server) handleListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.Sheets.ListWeeks(r.Context(), strings.TrimSpace(r.PathValue("employee")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]weekSummary, 0, len(weeks))
	for _, wk := range weeks {
		out = append(out, weekSummary{WeekStart: wk.Key.WeekStartString(), Submitted: wk.Submitted, UpdatedAt: wk.UpdatedAt})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	names := s.Catalog.Employees()
	out := make([]catalogEmployee, 0, len(names))
	for _, name := range names {
		dept, _ := s.Catalog.Department(name)
		groups := s.Catalog.TaskGroups(dept)
		if groups == nil {
			groups = []catalog.TaskGroup{}
		}
		out = append(out, catalogEmployee{Name: name, Department: dept, TaskGroups: groups})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) weekParams(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	employee := strings.TrimSpace(r.PathValue("employee"))
	date, err := time.Parse(domain.DateLayout, r.PathValue("date"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody(fmt.Errorf("date must be YYYY-MM-DD: %q", r.PathValue("date"))))
		return "", time.Time{}, false
	}
	return employee, date, true
}

func (s *Server) weekKey(w http.ResponseWriter, r *http.Request) (domain.WeekKey, bool) {
	employee, date, ok := s.weekParams(w, r)
	if !ok {
		return domain.WeekKey{}, false
	}
	key, err := domain.NewWeekKey(employee, date)
	if err != nil {
		s.writeError(w, err)
		return domain.WeekKey{}, false
	}
	return key, true
}

func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody(fmt.Errorf("%s must be an integer", name)))
		return 0, false
	}
	return n, true
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody(fmt.Errorf("invalid request body: %w", err)))
		return false
	}
	return true
}

func (s *Server) writeMutation(w http.ResponseWriter, sheet *domain.WeekSheet, changed bool, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mutationResponse{Changed: changed, Sheet: NewSheetView(sheet, s.now())})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidWeekKey):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrVersionConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger().Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorBody(err))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Warn("writing response", "error", err)
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger().Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
