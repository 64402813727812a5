/*
handlers.go - HTTP API handlers for the attendance dashboard

PURPOSE:
  Exposes the attendance engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Calendar:
    GET  /api/users/{user}/calendar   Period grid + ledger summary
    POST /api/users/{user}/presence   Toggle one date present/absent
    GET  /api/users/{user}/notes      Free-text notes
    PUT  /api/users/{user}/notes      Save notes

  Overlap:
    GET  /api/overlap                 Coincident presence + gas money

  Holidays:
    GET    /api/holidays              List recurring holidays
    POST   /api/holidays              Add a (day, month) holiday
    DELETE /api/holidays              Remove a (day, month) holiday
    POST   /api/holidays/defaults     Reset to the national holiday list

  Reports:
    POST /api/reports/slack           Post the period report to Slack

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (period, ledger, reconciler)
  4. Persist via Store where the operation mutates state
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 409: Toggling a non-working date
  - 503: Slack reporting not configured
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rzlpil/attendance-engine/attendance"
	"github.com/rzlpil/attendance-engine/notify"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      attendance.Store
	Log        *zap.SugaredLogger
	Convention attendance.Convention
	RatePerDay decimal.Decimal
	UserA      string
	UserB      string
	Reporter   *notify.Reporter

	// Holiday set is mutable through the admin endpoints.
	mu       sync.RWMutex
	holidays attendance.HolidaySet

	// now is swappable in tests for deterministic as-of dates.
	now func() attendance.Date
}

// NewHandler creates a new handler with the given store and configuration.
func NewHandler(store attendance.Store, log *zap.SugaredLogger, convention attendance.Convention, rate decimal.Decimal, userA, userB string, reporter *notify.Reporter) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{
		Store:      store,
		Log:        log,
		Convention: convention,
		RatePerDay: rate,
		UserA:      userA,
		UserB:      userB,
		Reporter:   reporter,
		holidays:   attendance.DefaultHolidays(),
		now:        attendance.Today,
	}
}

// Holidays returns the current holiday set.
func (h *Handler) Holidays() attendance.HolidaySet {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.holidays
}

// SetHolidays replaces the holiday set.
func (h *Handler) SetHolidays(hs attendance.HolidaySet) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.holidays = hs
}

// referenceFromQuery reads year/month from the query, defaulting to the
// reference month whose period contains today.
func (h *Handler) referenceFromQuery(r *http.Request) (int, time.Month, error) {
	year, month := attendance.ReferenceFor(h.now(), h.Convention)

	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, errInvalidMonth
		}
		month = time.Month(m)
	}
	return year, month, nil
}

// asOfFromQuery reads an optional as_of override, defaulting to today.
func (h *Handler) asOfFromQuery(r *http.Request) (attendance.Date, error) {
	if v := r.URL.Query().Get("as_of"); v != "" {
		return attendance.ParseDate(v)
	}
	return h.now(), nil
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// GetCalendar returns the period grid for one user: every date with its
// working classification and presence value, plus the ledger summary.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	year, month, err := h.referenceFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}
	asOf, err := h.asOfFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
		return
	}

	period, err := attendance.ComputePeriod(year, month, h.Convention)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	existing, err := h.Store.LoadPresence(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load presence", err)
		return
	}

	holidays := h.Holidays()
	normalized, summary, err := attendance.BuildLedger(period, existing, holidays, asOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to build ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, h.toCalendarDTO(user, period, normalized, holidays, summary))
}

// TogglePresence marks one date present or absent for a user, rebuilds the
// ledger, and persists the full record (replace-all).
//
// Toggling a non-working date is rejected with 409: its value stays
// NotApplicable no matter what the client sends.
func (h *Handler) TogglePresence(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	var req TogglePresenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := attendance.ParseDate(req.Tanggal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tanggal (use YYYY-MM-DD)", err)
		return
	}

	holidays := h.Holidays()
	if attendance.IsNonWorking(date, holidays) {
		writeError(w, http.StatusConflict, "Date is a non-working day", nil)
		return
	}

	existing, err := h.Store.LoadPresence(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load presence", err)
		return
	}

	merged := existing.Clone()
	if req.Hadir {
		merged[date] = attendance.StatusPresent
	} else {
		merged[date] = attendance.StatusAbsent
	}

	// Rebuild the ledger for the period containing the toggled date, then
	// fold the normalized period back into the full record so history from
	// other periods survives the replace-all write.
	year, month := attendance.ReferenceFor(date, h.Convention)
	period, err := attendance.ComputePeriod(year, month, h.Convention)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute period", err)
		return
	}

	normalized, summary, err := attendance.BuildLedger(period, merged, holidays, h.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build ledger", err)
		return
	}
	for d, s := range normalized {
		merged[d] = s
	}

	if err := h.Store.ReplacePresence(r.Context(), user, merged); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save presence", err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// GetNotes returns the user's free-text notes.
func (h *Handler) GetNotes(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	notes, err := h.Store.LoadNotes(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load notes", err)
		return
	}

	writeJSON(w, http.StatusOK, NotesDTO{User: user, Catatan: notes})
}

// PutNotes saves the user's free-text notes.
func (h *Handler) PutNotes(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	var req NotesDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.SaveNotes(r.Context(), user, req.Catatan); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save notes", err)
		return
	}

	writeJSON(w, http.StatusOK, NotesDTO{User: user, Catatan: req.Catatan})
}

// =============================================================================
// OVERLAP HANDLER
// =============================================================================

// GetOverlap reconciles two users' presence over a period and returns the
// coincident-presence count and gas money amount.
func (h *Handler) GetOverlap(w http.ResponseWriter, r *http.Request) {
	userA, userB := h.UserA, h.UserB
	if v := r.URL.Query().Get("a"); v != "" {
		userA = v
	}
	if v := r.URL.Query().Get("b"); v != "" {
		userB = v
	}

	year, month, err := h.referenceFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	var asOf *attendance.Date
	if v := r.URL.Query().Get("as_of"); v != "" {
		d, err := attendance.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
			return
		}
		asOf = &d
	}

	periodRange, err := attendance.PeriodFor(year, month, h.Convention)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	recA, err := h.Store.LoadPresence(r.Context(), userA)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load presence", err)
		return
	}
	recB, err := h.Store.LoadPresence(r.Context(), userB)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load presence", err)
		return
	}

	overlap, err := attendance.Reconcile(periodRange.Days(), recA, recB, h.Holidays(), h.RatePerDay, asOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to reconcile", err)
		return
	}

	writeJSON(w, http.StatusOK, OverlapDTO{
		UserA:           userA,
		UserB:           userB,
		PeriodStart:     periodRange.Start.String(),
		PeriodEnd:       periodRange.End.String(),
		WorkdayCount:    overlap.WorkdayCount,
		CoincidentCount: overlap.CoincidentCount,
		RatePerDay:      h.RatePerDay.String(),
		IncentiveAmount: overlap.IncentiveAmount.String(),
	})
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the recurring holiday entries.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toHolidayDTOs(h.Holidays()))
}

// AddHoliday adds one recurring (day, month) holiday.
func (h *Handler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Month < 1 || req.Month > 12 || req.Day < 1 || req.Day > 31 {
		writeError(w, http.StatusBadRequest, "Invalid day/month", nil)
		return
	}

	h.SetHolidays(h.Holidays().With(req.toMonthDay()))
	writeJSON(w, http.StatusCreated, toHolidayDTOs(h.Holidays()))
}

// RemoveHoliday removes one recurring (day, month) holiday.
func (h *Handler) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.SetHolidays(h.Holidays().Without(req.toMonthDay()))
	writeJSON(w, http.StatusOK, toHolidayDTOs(h.Holidays()))
}

// ResetDefaultHolidays restores the national holiday list.
func (h *Handler) ResetDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	h.SetHolidays(attendance.DefaultHolidays())
	writeJSON(w, http.StatusOK, toHolidayDTOs(h.Holidays()))
}

// =============================================================================
// REPORT HANDLER
// =============================================================================

// PostSlackReport posts the current period report (both tracked users'
// summaries plus the overlap) to the configured Slack channel.
func (h *Handler) PostSlackReport(w http.ResponseWriter, r *http.Request) {
	if h.Reporter == nil || !h.Reporter.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "Slack reporting is not configured", nil)
		return
	}

	year, month, err := h.referenceFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	periodRange, err := attendance.PeriodFor(year, month, h.Convention)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}
	period := periodRange.Days()
	holidays := h.Holidays()
	asOf := h.now()

	var reports []notify.UserReport
	records := make(map[string]attendance.PresenceRecord, 2)
	for _, user := range []string{h.UserA, h.UserB} {
		rec, err := h.Store.LoadPresence(r.Context(), user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load presence", err)
			return
		}
		records[user] = rec

		_, summary, err := attendance.BuildLedger(period, rec, holidays, asOf)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to build ledger", err)
			return
		}
		reports = append(reports, notify.UserReport{User: user, Summary: summary})
	}

	overlap, err := attendance.Reconcile(period, records[h.UserA], records[h.UserB], holidays, h.RatePerDay, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reconcile", err)
		return
	}

	if err := h.Reporter.PostPeriodReport(periodRange, reports, overlap); err != nil {
		writeError(w, http.StatusBadGateway, "Failed to post report", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "posted"})
}

// =============================================================================
// HELPERS
// =============================================================================

var errInvalidMonth = errors.New("month must be 1..12")

func (h *Handler) toCalendarDTO(user string, period []attendance.Date, rec attendance.PresenceRecord, holidays attendance.HolidaySet, summary attendance.LedgerSummary) CalendarDTO {
	days := make([]DayDTO, len(period))
	for i, d := range period {
		status := rec[d]
		days[i] = DayDTO{
			Tanggal: d.String(),
			Weekday: d.Weekday().String(),
			Working: !attendance.IsNonWorking(d, holidays),
			Hadir:   attendance.HadirValue(status),
			Status:  string(status),
		}
	}

	return CalendarDTO{
		User:        user,
		Convention:  string(h.Convention),
		PeriodStart: period[0].String(),
		PeriodEnd:   period[len(period)-1].String(),
		Days:        days,
		Summary:     toSummaryDTO(summary),
	}
}

func toSummaryDTO(s attendance.LedgerSummary) SummaryDTO {
	return SummaryDTO{
		WorkdayCount:       s.WorkdayCount,
		PresentCount:       s.PresentCount,
		PresentCountToDate: s.PresentCountToDate,
		MinimumRequired:    s.MinimumRequired,
		MaxAllowedAbsence:  s.MaxAllowedAbsence,
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	dto := ErrorDTO{Error: message}
	if err != nil {
		dto.Detail = err.Error()
	}
	writeJSON(w, status, dto)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
