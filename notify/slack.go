// Package notify posts attendance period reports to Slack.
package notify

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/rzlpil/attendance-engine/attendance"
)

// MessagePoster is the slice of the Slack client the reporter needs.
// Tests provide a stub; production uses *slack.Client.
type MessagePoster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// UserReport pairs a user with their ledger summary for the report message.
type UserReport struct {
	User    string
	Summary attendance.LedgerSummary
}

// Reporter formats and posts period reports to a Slack channel.
// A nil client disables posting; see Enabled.
type Reporter struct {
	client  MessagePoster
	channel string
}

// NewReporter builds a reporter from a bot token and channel ID.
// An empty token yields a disabled reporter.
func NewReporter(token, channel string) *Reporter {
	if token == "" || channel == "" {
		return &Reporter{}
	}
	return &Reporter{client: slack.New(token), channel: channel}
}

// NewReporterWithClient builds a reporter around an existing client.
func NewReporterWithClient(client MessagePoster, channel string) *Reporter {
	return &Reporter{client: client, channel: channel}
}

// Enabled reports whether the reporter can post.
func (r *Reporter) Enabled() bool {
	return r.client != nil && r.channel != ""
}

// PostPeriodReport posts one message summarizing the period: each user's
// attendance numbers plus the coincident-presence incentive.
func (r *Reporter) PostPeriodReport(period attendance.Period, users []UserReport, overlap attendance.OverlapSummary) error {
	if !r.Enabled() {
		return fmt.Errorf("slack reporting is not configured")
	}

	_, _, err := r.client.PostMessage(r.channel,
		slack.MsgOptionText(FormatPeriodReport(period, users, overlap), false))
	if err != nil {
		return fmt.Errorf("post period report: %w", err)
	}
	return nil
}

// FormatPeriodReport renders the report message body.
func FormatPeriodReport(period attendance.Period, users []UserReport, overlap attendance.OverlapSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, ":calendar: *Attendance report %s*\n", period)
	for _, u := range users {
		fmt.Fprintf(&b, "• *%s*: %d/%d present (minimum %d, allowed absences %d)\n",
			u.User,
			u.Summary.PresentCount,
			u.Summary.WorkdayCount,
			u.Summary.MinimumRequired,
			u.Summary.MaxAllowedAbsence,
		)
	}
	fmt.Fprintf(&b, ":fuelpump: Gas money: %d coincident days × rate = *%s*",
		overlap.CoincidentCount, overlap.IncentiveAmount.String())

	return b.String()
}
