package attendance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzlpil/attendance-engine/attendance"
)

// =============================================================================
// OVERLAP RECONCILIATION
// =============================================================================

func TestReconcile_EmptyPeriodRejected(t *testing.T) {
	_, err := attendance.Reconcile(nil, nil, nil, attendance.NewHolidaySet(), decimal.NewFromInt(10000), nil)
	assert.ErrorIs(t, err, attendance.ErrEmptyPeriod)
}

func TestReconcile_CountsOnlyMutualPresence(t *testing.T) {
	period := mustPeriod(t, 2025, time.March, attendance.ConventionCalendarMonth)

	mon := attendance.NewDate(2025, time.March, 3)
	tue := attendance.NewDate(2025, time.March, 4)
	wed := attendance.NewDate(2025, time.March, 5)
	sun := attendance.NewDate(2025, time.March, 2)
	require.True(t, sun.IsSunday())

	a := attendance.PresenceRecord{
		mon: attendance.StatusPresent,
		tue: attendance.StatusPresent,
		wed: attendance.StatusAbsent,
		sun: attendance.StatusPresent, // never counts
	}
	b := attendance.PresenceRecord{
		mon: attendance.StatusPresent,
		wed: attendance.StatusPresent, // a is absent
		sun: attendance.StatusPresent,
	}

	summary, err := attendance.Reconcile(period, a, b, attendance.NewHolidaySet(), decimal.NewFromInt(10000), nil)
	require.NoError(t, err)

	assert.Equal(t, 26, summary.WorkdayCount)
	assert.Equal(t, 1, summary.CoincidentCount, "only Monday is mutual")
	assert.Equal(t, "10000", summary.IncentiveAmount.String())
}

func TestReconcile_Symmetric(t *testing.T) {
	period := mustPeriod(t, 2025, time.August, attendance.ConventionDays16to15)
	holidays := attendance.DefaultHolidays()
	rate := decimal.NewFromInt(12500)

	a := attendance.PresenceRecord{
		attendance.NewDate(2025, time.July, 16):   attendance.StatusPresent,
		attendance.NewDate(2025, time.July, 17):   attendance.StatusPresent,
		attendance.NewDate(2025, time.August, 11): attendance.StatusPresent,
	}
	b := attendance.PresenceRecord{
		attendance.NewDate(2025, time.July, 16):   attendance.StatusPresent,
		attendance.NewDate(2025, time.July, 18):   attendance.StatusPresent,
		attendance.NewDate(2025, time.August, 11): attendance.StatusPresent,
	}

	ab, err := attendance.Reconcile(period, a, b, holidays, rate, nil)
	require.NoError(t, err)
	ba, err := attendance.Reconcile(period, b, a, holidays, rate, nil)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	assert.Equal(t, 2, ab.CoincidentCount)
	assert.Equal(t, "25000", ab.IncentiveAmount.String())
}

func TestReconcile_AsOfCutsOffLaterDates(t *testing.T) {
	period := mustPeriod(t, 2025, time.August, attendance.ConventionDays16to15)

	d1 := attendance.NewDate(2025, time.July, 16)
	d2 := attendance.NewDate(2025, time.August, 11)
	both := attendance.PresenceRecord{
		d1: attendance.StatusPresent,
		d2: attendance.StatusPresent,
	}

	asOf := attendance.NewDate(2025, time.July, 31)
	summary, err := attendance.Reconcile(period, both, both.Clone(), attendance.NewHolidaySet(), decimal.NewFromInt(10000), &asOf)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CoincidentCount, "August 11 is after asOf")
	assert.Equal(t, "10000", summary.IncentiveAmount.String())
}

func TestReconcile_ExactDecimalRate(t *testing.T) {
	period := mustPeriod(t, 2025, time.March, attendance.ConventionCalendarMonth)

	days := []attendance.Date{
		attendance.NewDate(2025, time.March, 3),
		attendance.NewDate(2025, time.March, 4),
		attendance.NewDate(2025, time.March, 5),
	}
	rec := attendance.PresenceRecord{}
	for _, d := range days {
		rec[d] = attendance.StatusPresent
	}

	rate, err := decimal.NewFromString("7253.75")
	require.NoError(t, err)

	summary, err := attendance.Reconcile(period, rec, rec.Clone(), attendance.NewHolidaySet(), rate, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.CoincidentCount)
	assert.Equal(t, "21761.25", summary.IncentiveAmount.String())
}
