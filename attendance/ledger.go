/*
ledger.go - Per-user presence ledger and summary statistics

PURPOSE:
  Normalizes a stored presence record against a period and the holiday rules,
  and derives the summary statistics the dashboard renders: workday count,
  days present, presence to date, and the 70% attendance threshold.

KEY INVARIANTS:
  1. Non-working dates are always NotApplicable. Workday status is a derived
     property re-evaluated on every build, never persisted: re-classifying a
     date as a holiday clears any stored Present/Absent for it.
  2. Unset working dates default to Absent. The conservative default: a day
     counts toward attendance only once it is explicitly marked.
  3. MinimumRequired = ceil(WorkdayCount * 0.7), computed in integer
     arithmetic so the threshold never drifts with floating point.
  4. BuildLedger is pure and idempotent; persistence is the caller's job.
*/
package attendance

// =============================================================================
// STATUS - Presence value for one date
// =============================================================================

// Status is the presence value of a single date.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	// StatusNotApplicable marks a non-working date (holiday or Sunday).
	// It is assigned by the engine and never set from user input.
	StatusNotApplicable Status = "not_applicable"
)

// =============================================================================
// PRESENCE RECORD - Durable per-user state
// =============================================================================

// PresenceRecord maps each date to its presence value. It is the only
// durable state of the system; every summary is derived from it.
type PresenceRecord map[Date]Status

// Clone returns a copy of the record.
func (r PresenceRecord) Clone() PresenceRecord {
	out := make(PresenceRecord, len(r))
	for d, s := range r {
		out[d] = s
	}
	return out
}

// Get returns the stored value for a date, if any.
func (r PresenceRecord) Get(d Date) (Status, bool) {
	s, ok := r[d]
	return s, ok
}

// =============================================================================
// LEDGER SUMMARY - Derived, read-only aggregate
// =============================================================================

// LedgerSummary is the derived aggregate over one period of a presence
// record. It is recomputed on demand and never persisted independently.
type LedgerSummary struct {
	WorkdayCount       int
	PresentCount       int
	PresentCountToDate int
	MinimumRequired    int
	MaxAllowedAbsence  int
}

// minimumRequired is ceil(workdays * 7 / 10) without floating point.
func minimumRequired(workdays int) int {
	return (workdays*7 + 9) / 10
}

// =============================================================================
// LEDGER BUILDER
// =============================================================================

// BuildLedger normalizes a presence record over a period and computes its
// summary.
//
// For each date in the period:
//   - non-working dates (IsNonWorking) are forced to NotApplicable,
//     overwriting any previously stored Present/Absent
//   - working dates keep their stored value, defaulting to Absent when unset;
//     a stored NotApplicable on a date that is now a workday is also reset
//     to Absent, since applicability is derived, not persisted
//
// PresentCountToDate counts Present dates up to and including asOf.
// Dates stored outside the period are dropped from the result.
//
// Returns ErrEmptyPeriod when the period has no dates. Pure: the input
// record is not modified.
func BuildLedger(period []Date, existing PresenceRecord, holidays HolidaySet, asOf Date) (PresenceRecord, LedgerSummary, error) {
	if len(period) == 0 {
		return nil, LedgerSummary{}, ErrEmptyPeriod
	}

	normalized := make(PresenceRecord, len(period))
	var summary LedgerSummary

	for _, d := range period {
		if IsNonWorking(d, holidays) {
			normalized[d] = StatusNotApplicable
			continue
		}

		status := StatusAbsent
		if stored, ok := existing.Get(d); ok && stored != StatusNotApplicable {
			status = stored
		}
		normalized[d] = status

		summary.WorkdayCount++
		if status == StatusPresent {
			summary.PresentCount++
			if d.BeforeOrEqual(asOf) {
				summary.PresentCountToDate++
			}
		}
	}

	summary.MinimumRequired = minimumRequired(summary.WorkdayCount)
	summary.MaxAllowedAbsence = summary.WorkdayCount - summary.MinimumRequired

	return normalized, summary, nil
}
