package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/agentstation/seatsync/internal/cmd/alerts"
	"github.com/agentstation/seatsync/internal/cmd/emoji"
	"github.com/agentstation/seatsync/pkg/reconcile"
)

// Console streams outcome lines and a closing summary table to a terminal.
// Colors follow the global color.NoColor flag, so piped output stays plain.
type Console struct {
	w io.Writer
}

var _ reconcile.Sink = (*Console)(nil)

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// OnOutcome implements reconcile.Sink. Each outcome is written as a single
// glyph-prefixed line in processing order.
func (c *Console) OnOutcome(o reconcile.Outcome) {
	glyph, level := outcomeStyle(o.Action)

	line := fmt.Sprintf("%s %s: %s", glyph, o.Email, o.Status)
	if o.Action == reconcile.ActionUpdate && o.PriorLicense != "" {
		line += fmt.Sprintf(" (%s -> %s)", o.PriorLicense, o.NewLicense)
	}
	if o.Error != "" {
		line += ": " + o.Error
	}

	fmt.Fprintln(c.w, level.Colorize(line))
}

// OnSummary implements reconcile.Sink. The summary is rendered as a counts
// table, a requested-license histogram, and a closing status line.
func (c *Console) OnSummary(s *reconcile.Summary) {
	fmt.Fprintln(c.w)

	counts := tablewriter.NewTable(c.w)
	counts.Header("Result", "Count")
	_ = counts.Append("Added", strconv.Itoa(s.Added))
	_ = counts.Append("Updated", strconv.Itoa(s.Updated))
	_ = counts.Append("Unchanged", strconv.Itoa(s.Unchanged))
	_ = counts.Append("Failed", strconv.Itoa(s.Failed))
	_ = counts.Append("Total", strconv.Itoa(s.TotalProcessed))
	_ = counts.Render()

	if len(s.LicenseCounts) > 0 {
		fmt.Fprintln(c.w)

		labels := make([]string, 0, len(s.LicenseCounts))
		for label := range s.LicenseCounts {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		hist := tablewriter.NewTable(c.w)
		hist.Header("License", "Requested")
		for _, label := range labels {
			_ = hist.Append(label, strconv.Itoa(s.LicenseCounts[label]))
		}
		_ = hist.Render()
	}

	level := alerts.LevelSuccess
	if s.HasFailures() {
		level = alerts.LevelWarning
	}

	fmt.Fprintln(c.w)
	line := fmt.Sprintf("%s %s in %s", level.Icon(), s.String(), s.Duration.Round(time.Millisecond))
	fmt.Fprintln(c.w, level.Colorize(line))
}

// outcomeStyle maps an action to its glyph and color level.
func outcomeStyle(action reconcile.Action) (string, alerts.Level) {
	switch action {
	case reconcile.ActionAdd:
		return emoji.Success, alerts.LevelSuccess
	case reconcile.ActionUpdate:
		return emoji.Change, alerts.LevelInfo
	case reconcile.ActionNoChange:
		return emoji.Skip, alerts.LevelInfo
	case reconcile.ActionFailed:
		return emoji.Error, alerts.LevelError
	default:
		return emoji.Unknown, alerts.LevelWarning
	}
}
