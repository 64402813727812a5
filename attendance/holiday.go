package attendance

import (
	"sort"
	"time"
)

// =============================================================================
// HOLIDAY SET - Recurring public holidays, independent of year
// =============================================================================

// MonthDay identifies a recurring holiday by its (day, month) pair.
type MonthDay struct {
	Day   int
	Month time.Month
}

// HolidaySet is an immutable set of recurring (day, month) holidays.
// The weekly rest day (Sunday) is a separate hardcoded rule, not part of
// the set; see IsNonWorking.
type HolidaySet struct {
	days map[MonthDay]struct{}
}

// NewHolidaySet builds a holiday set from (day, month) entries.
func NewHolidaySet(entries ...MonthDay) HolidaySet {
	h := HolidaySet{days: make(map[MonthDay]struct{}, len(entries))}
	for _, e := range entries {
		h.days[e] = struct{}{}
	}
	return h
}

// Contains reports whether the date's (day, month) pair is a listed holiday.
func (h HolidaySet) Contains(d Date) bool {
	_, ok := h.days[MonthDay{Day: d.Day, Month: d.Month}]
	return ok
}

// With returns a copy of the set with the given entries added.
// The receiver is not modified.
func (h HolidaySet) With(entries ...MonthDay) HolidaySet {
	next := NewHolidaySet(h.Entries()...)
	for _, e := range entries {
		next.days[e] = struct{}{}
	}
	return next
}

// Without returns a copy of the set with the given entries removed.
func (h HolidaySet) Without(entries ...MonthDay) HolidaySet {
	next := NewHolidaySet(h.Entries()...)
	for _, e := range entries {
		delete(next.days, e)
	}
	return next
}

// Entries returns the set's (day, month) pairs sorted by month then day.
func (h HolidaySet) Entries() []MonthDay {
	entries := make([]MonthDay, 0, len(h.days))
	for e := range h.days {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Month != entries[j].Month {
			return entries[i].Month < entries[j].Month
		}
		return entries[i].Day < entries[j].Day
	})
	return entries
}

// Len returns the number of listed holidays.
func (h HolidaySet) Len() int { return len(h.days) }

// =============================================================================
// CLASSIFIER
// =============================================================================

// IsNonWorking reports whether a date is a non-working day: either a listed
// recurring holiday or the weekly rest day (Sunday). Pure and deterministic
// for all valid dates, including leap-year Feb 29.
func IsNonWorking(d Date, holidays HolidaySet) bool {
	return d.IsSunday() || holidays.Contains(d)
}

// DefaultHolidays returns the fixed-date national holidays observed by the
// office: New Year, Labour Day, Pancasila Day, Independence Day, Christmas.
// Holidays that move with the lunar calendar are added per year through the
// holiday administration API.
func DefaultHolidays() HolidaySet {
	return NewHolidaySet(
		MonthDay{Day: 1, Month: time.January},
		MonthDay{Day: 1, Month: time.May},
		MonthDay{Day: 1, Month: time.June},
		MonthDay{Day: 17, Month: time.August},
		MonthDay{Day: 25, Month: time.December},
	)
}
