/*
Package attendance implements the core attendance accounting engine.

PURPOSE:
  This package contains the pure domain logic for tracking presence over a
  pay/attendance period: computing the period's date range under a boundary
  convention, classifying each date as working or non-working, building the
  per-user presence ledger with its summary statistics, and reconciling two
  users' ledgers into a coincident-presence incentive.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A plain calendar date (year, month, day), comparable and immutable

DESIGN PRINCIPLES:
  1. Purity: Every exported computation is a pure function over dates and flags
  2. Precision: Currency amounts use decimal.Decimal, never float64
  3. Derivation: Summaries are always recomputed from the presence record,
     never persisted alongside it

SEE ALSO:
  - period.go: Period boundary conventions and date-range generation
  - holiday.go: Non-working day classification
  - ledger.go: Presence record normalization and summary statistics
  - overlap.go: Two-user reconciliation and incentive amount
*/
package attendance

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Plain calendar date value
// =============================================================================

// Date is a calendar date with no time-of-day or zone component.
// It is comparable and can be used directly as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date. Out-of-range components are normalized the same
// way time.Date normalizes them (e.g. Feb 30 becomes Mar 1 or 2).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf extracts the calendar date from a time.Time, dropping the clock.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses a "YYYY-MM-DD" string, the storage format for tanggal.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Today returns the current date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// Time converts the date back to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool         { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool         { return d == other }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d == other }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d == other }

// Arithmetic
func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

// Properties
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }
func (d Date) IsSunday() bool        { return d.Weekday() == time.Sunday }
func (d Date) IsZero() bool          { return d == Date{} }

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DaysBetween returns the number of days from one date to another.
func DaysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// DaysInMonth returns the number of days in the given month of the given year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}
