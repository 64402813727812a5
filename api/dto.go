/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. The wire field
  names for presence and notes (tanggal, hadir, catatan) match the stored
  document shapes.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - attendance/store.go: Stored document shapes
*/
package api

import (
	"time"

	"github.com/rzlpil/attendance-engine/attendance"
)

// =============================================================================
// CALENDAR
// =============================================================================

// DayDTO is one cell of the rendered calendar grid.
type DayDTO struct {
	Tanggal string `json:"tanggal"`
	Weekday string `json:"weekday"`
	Working bool   `json:"working"`
	Hadir   *bool  `json:"hadir"`
	Status  string `json:"status"`
}

// SummaryDTO carries the ledger summary fields the gauges render.
type SummaryDTO struct {
	WorkdayCount       int `json:"workday_count"`
	PresentCount       int `json:"present_count"`
	PresentCountToDate int `json:"present_count_to_date"`
	MinimumRequired    int `json:"minimum_required"`
	MaxAllowedAbsence  int `json:"max_allowed_absence"`
}

// CalendarDTO is the full per-user period view.
type CalendarDTO struct {
	User        string     `json:"user"`
	Convention  string     `json:"convention"`
	PeriodStart string     `json:"period_start"`
	PeriodEnd   string     `json:"period_end"`
	Days        []DayDTO   `json:"days"`
	Summary     SummaryDTO `json:"summary"`
}

// TogglePresenceRequest marks one date present or absent.
type TogglePresenceRequest struct {
	Tanggal string `json:"tanggal"`
	Hadir   bool   `json:"hadir"`
}

// =============================================================================
// NOTES
// =============================================================================

// NotesDTO is the free-text notes document for one user.
type NotesDTO struct {
	User    string `json:"user"`
	Catatan string `json:"catatan"`
}

// =============================================================================
// OVERLAP
// =============================================================================

// OverlapDTO is the two-user reconciliation result. The incentive amount is
// a decimal string to keep currency exact on the wire.
type OverlapDTO struct {
	UserA           string `json:"user_a"`
	UserB           string `json:"user_b"`
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	WorkdayCount    int    `json:"workday_count"`
	CoincidentCount int    `json:"coincident_count"`
	RatePerDay      string `json:"rate_per_day"`
	IncentiveAmount string `json:"incentive_amount"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO is one recurring (day, month) holiday entry.
type HolidayDTO struct {
	Day   int `json:"day"`
	Month int `json:"month"`
}

func toHolidayDTOs(h attendance.HolidaySet) []HolidayDTO {
	entries := h.Entries()
	dtos := make([]HolidayDTO, len(entries))
	for i, e := range entries {
		dtos[i] = HolidayDTO{Day: e.Day, Month: int(e.Month)}
	}
	return dtos
}

func (d HolidayDTO) toMonthDay() attendance.MonthDay {
	return attendance.MonthDay{Day: d.Day, Month: time.Month(d.Month)}
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorDTO is the uniform error response body.
type ErrorDTO struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
