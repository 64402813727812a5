package notify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzlpil/attendance-engine/attendance"
	"github.com/rzlpil/attendance-engine/notify"
)

type fakePoster struct {
	channel string
	calls   int
	err     error
}

func (f *fakePoster) PostMessage(channelID string, options ...slack.MsgOption) (string, string, error) {
	f.channel = channelID
	f.calls++
	return channelID, "ts", f.err
}

func testPeriod() attendance.Period {
	return attendance.Period{
		Start: attendance.NewDate(2025, time.July, 16),
		End:   attendance.NewDate(2025, time.August, 15),
	}
}

func TestReporter_Enabled(t *testing.T) {
	assert.False(t, notify.NewReporter("", "").Enabled())
	assert.False(t, notify.NewReporter("xoxb-test", "").Enabled())
	assert.True(t, notify.NewReporter("xoxb-test", "C123").Enabled())
}

func TestReporter_PostsToConfiguredChannel(t *testing.T) {
	poster := &fakePoster{}
	r := notify.NewReporterWithClient(poster, "C123")

	overlap := attendance.OverlapSummary{
		WorkdayCount:    27,
		CoincidentCount: 4,
		IncentiveAmount: decimal.NewFromInt(50000),
	}
	err := r.PostPeriodReport(testPeriod(), []notify.UserReport{
		{User: "rizal", Summary: attendance.LedgerSummary{WorkdayCount: 27, PresentCount: 20, MinimumRequired: 19, MaxAllowedAbsence: 8}},
	}, overlap)
	require.NoError(t, err)

	assert.Equal(t, "C123", poster.channel)
	assert.Equal(t, 1, poster.calls)
}

func TestReporter_PostErrorWrapped(t *testing.T) {
	poster := &fakePoster{err: errors.New("channel_not_found")}
	r := notify.NewReporterWithClient(poster, "C123")

	err := r.PostPeriodReport(testPeriod(), nil, attendance.OverlapSummary{IncentiveAmount: decimal.Zero})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestReporter_DisabledRefusesToPost(t *testing.T) {
	r := notify.NewReporter("", "")
	err := r.PostPeriodReport(testPeriod(), nil, attendance.OverlapSummary{IncentiveAmount: decimal.Zero})
	assert.Error(t, err)
}

func TestFormatPeriodReport(t *testing.T) {
	overlap := attendance.OverlapSummary{
		WorkdayCount:    27,
		CoincidentCount: 4,
		IncentiveAmount: decimal.NewFromInt(50000),
	}
	msg := notify.FormatPeriodReport(testPeriod(), []notify.UserReport{
		{User: "rizal", Summary: attendance.LedgerSummary{WorkdayCount: 27, PresentCount: 20, MinimumRequired: 19, MaxAllowedAbsence: 8}},
		{User: "dinda", Summary: attendance.LedgerSummary{WorkdayCount: 27, PresentCount: 22, MinimumRequired: 19, MaxAllowedAbsence: 8}},
	}, overlap)

	assert.Contains(t, msg, "[2025-07-16, 2025-08-15]")
	assert.Contains(t, msg, "*rizal*: 20/27 present")
	assert.Contains(t, msg, "*dinda*: 22/27 present")
	assert.Contains(t, msg, "4 coincident days")
	assert.Contains(t, msg, "*50000*")
}
