package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// PERIOD - One attendance-accounting cycle
// =============================================================================

// Period is a contiguous, inclusive date range [Start, End].
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns every date in the period, in increasing order, one per day.
func (p Period) Days() []Date {
	var days []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// CONVENTION - Which day-of-month boundaries define a period
// =============================================================================

// Convention names the day-of-month boundaries of a period. A "13_to_12"
// period for reference month March runs Feb 13 through Mar 12 inclusive;
// "calendar_month" runs the reference month itself.
type Convention string

const (
	ConventionCalendarMonth Convention = "calendar_month"
	ConventionDays13to12    Convention = "13_to_12"
	ConventionDays11to10    Convention = "11_to_10"
	ConventionDays16to15    Convention = "16_to_15"
	ConventionDays17to16    Convention = "17_to_16"
)

// Conventions lists every supported convention.
func Conventions() []Convention {
	return []Convention{
		ConventionCalendarMonth,
		ConventionDays13to12,
		ConventionDays11to10,
		ConventionDays16to15,
		ConventionDays17to16,
	}
}

// ParseConvention validates a convention name from configuration.
func ParseConvention(s string) (Convention, error) {
	for _, c := range Conventions() {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownConvention, s)
}

// boundaries returns the (startDay, endDay) pair encoded in the convention
// name, or ok=false for calendar_month.
func (c Convention) boundaries() (startDay, endDay int, ok bool) {
	parts := strings.SplitN(string(c), "_to_", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// =============================================================================
// PERIOD CALCULATOR
// =============================================================================

// PeriodFor returns the period for a reference year/month under a convention.
//
// For calendar_month the period is day 1 through the last day of the
// reference month. For an A_to_B convention the period starts on day A of
// the month preceding the reference month (January wraps to December of the
// previous year) and ends on day B of the reference month, inclusive.
//
// Returns ErrInvalidDate when a boundary day does not exist in its target
// month. The built-in conventions use days <= 17, which exist in every month.
func PeriodFor(year int, month time.Month, c Convention) (Period, error) {
	if c == ConventionCalendarMonth {
		return Period{
			Start: Date{Year: year, Month: month, Day: 1},
			End:   Date{Year: year, Month: month, Day: DaysInMonth(year, month)},
		}, nil
	}

	startDay, endDay, ok := c.boundaries()
	if !ok {
		return Period{}, fmt.Errorf("%w: %q", ErrUnknownConvention, string(c))
	}

	startYear, startMonth := year, month-1
	if month == time.January {
		startYear, startMonth = year-1, time.December
	}

	if startDay > DaysInMonth(startYear, startMonth) {
		return Period{}, &InvalidBoundaryError{Day: startDay, Month: startMonth, Year: startYear}
	}
	if endDay > DaysInMonth(year, month) {
		return Period{}, &InvalidBoundaryError{Day: endDay, Month: month, Year: year}
	}

	return Period{
		Start: Date{Year: startYear, Month: startMonth, Day: startDay},
		End:   Date{Year: year, Month: month, Day: endDay},
	}, nil
}

// ComputePeriod returns the ordered list of dates in the period for a
// reference year/month. The result is non-empty, strictly increasing by one
// calendar day, with no gaps or repeats.
func ComputePeriod(year int, month time.Month, c Convention) ([]Date, error) {
	p, err := PeriodFor(year, month, c)
	if err != nil {
		return nil, err
	}
	return p.Days(), nil
}

// ReferenceFor returns the reference (year, month) whose period contains the
// given date under a convention. For an A_to_B convention, dates on or after
// day A belong to the following month's period.
func ReferenceFor(d Date, c Convention) (int, time.Month) {
	startDay, _, ok := c.boundaries()
	if !ok || d.Day < startDay {
		return d.Year, d.Month
	}
	if d.Month == time.December {
		return d.Year + 1, time.January
	}
	return d.Year, d.Month + 1
}
