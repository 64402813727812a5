/*
errors.go - Centralized error types for the attendance engine

PURPOSE:
  All error types of the core engine in one place. Callers match with
  errors.Is / errors.As; the HTTP layer maps them to status codes.

ERROR CATEGORIES:
  1. Configuration errors - invalid period boundaries or conventions
  2. Input errors - empty periods, unknown users
  3. Storage errors - surfaced by Store implementations, wrapped with context

USAGE:
  period, err := attendance.ComputePeriod(2025, time.March, convention)
  if errors.Is(err, attendance.ErrInvalidDate) {
      // fatal configuration error, do not retry
  }
*/
package attendance

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a period boundary day does not exist
	// in its target month (e.g. day 31 in February). This is a configuration
	// error: the caller must supply a convention whose boundary days are
	// valid in every month.
	ErrInvalidDate = errors.New("invalid date: boundary day not in month")

	// ErrEmptyPeriod is returned when a ledger or reconciliation is requested
	// over an empty date range.
	ErrEmptyPeriod = errors.New("empty period")

	// ErrUnknownConvention is returned when parsing an unrecognized period
	// convention name.
	ErrUnknownConvention = errors.New("unknown period convention")

	// ErrUserNotFound is returned by stores when a user has no records at all.
	ErrUserNotFound = errors.New("user not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidBoundaryError reports which boundary day failed validation.
type InvalidBoundaryError struct {
	Day   int
	Month time.Month
	Year  int
}

func (e *InvalidBoundaryError) Error() string {
	return fmt.Sprintf("invalid period boundary: day %d does not exist in %s %d",
		e.Day, e.Month, e.Year)
}

func (e *InvalidBoundaryError) Unwrap() error {
	return ErrInvalidDate
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrEmptyPeriod) ||
		errors.Is(err, ErrUnknownConvention)
}
