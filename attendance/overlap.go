package attendance

import "github.com/shopspring/decimal"

// =============================================================================
// OVERLAP RECONCILER - Coincident presence between two users
// =============================================================================

// OverlapSummary is the result of reconciling two users' presence over the
// same period: the dates both were present, priced at a fixed daily rate
// ("gas money").
type OverlapSummary struct {
	WorkdayCount    int
	CoincidentCount int
	IncentiveAmount decimal.Decimal
}

// Reconcile counts the dates on which both users are Present and derives the
// incentive amount as CoincidentCount * ratePerDay, exact.
//
// Both records are normalized with the same rules as BuildLedger: non-working
// dates never count, and unset working dates are Absent. When asOf is non-nil
// only dates up to and including asOf are considered; otherwise the whole
// period. Symmetric in (a, b); pure.
//
// Returns ErrEmptyPeriod when the period has no dates.
func Reconcile(period []Date, a, b PresenceRecord, holidays HolidaySet, ratePerDay decimal.Decimal, asOf *Date) (OverlapSummary, error) {
	if len(period) == 0 {
		return OverlapSummary{}, ErrEmptyPeriod
	}

	var summary OverlapSummary
	for _, d := range period {
		if asOf != nil && d.After(*asOf) {
			break
		}
		if IsNonWorking(d, holidays) {
			continue
		}
		summary.WorkdayCount++
		if presentOn(a, d) && presentOn(b, d) {
			summary.CoincidentCount++
		}
	}

	summary.IncentiveAmount = ratePerDay.Mul(decimal.NewFromInt(int64(summary.CoincidentCount)))
	return summary, nil
}

func presentOn(r PresenceRecord, d Date) bool {
	s, ok := r.Get(d)
	return ok && s == StatusPresent
}
