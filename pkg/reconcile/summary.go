package reconcile

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
)

// Summary is the aggregate result of one reconciliation pass. Counts and
// the license histogram are pure folds over the ordered Outcome sequence:
// feeding outcomes in one at a time or replaying a completed sequence
// produces the same totals.
//
// Invariant after Finalize: Added+Updated+Unchanged+Failed == TotalProcessed
// == len(Outcomes).
type Summary struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartedAt utc.Time      `json:"started_at" yaml:"started_at"`
	EndedAt   utc.Time      `json:"ended_at" yaml:"ended_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	TotalDesired   int `json:"total_desired" yaml:"total_desired"`
	TotalRemote    int `json:"total_remote" yaml:"total_remote"`
	TotalProcessed int `json:"total_processed" yaml:"total_processed"`
	Added          int `json:"added" yaml:"added"`
	Updated        int `json:"updated" yaml:"updated"`
	Unchanged      int `json:"unchanged" yaml:"unchanged"`
	Failed         int `json:"failed" yaml:"failed"`

	// LicenseCounts is keyed by the requested label, not the resolved
	// tier, so the histogram reflects what the roster asked for. Failed
	// records still increment their bucket.
	LicenseCounts map[string]int `json:"license_counts" yaml:"license_counts"`

	Preview  bool      `json:"preview" yaml:"preview"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
}

// NewSummary starts a summary for a pass.
func NewSummary(preview bool) *Summary {
	return &Summary{
		RunID:         uuid.NewString(),
		StartedAt:     utc.Now(),
		LicenseCounts: make(map[string]int),
		Preview:       preview,
		Outcomes:      []Outcome{},
	}
}

// Record folds one outcome into the summary. Outcomes must be recorded in
// processing order; the stored sequence preserves it.
func (s *Summary) Record(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.TotalProcessed++
	s.LicenseCounts[o.NewLicense]++

	switch o.Action {
	case ActionAdd:
		s.Added++
	case ActionUpdate:
		s.Updated++
	case ActionNoChange:
		s.Unchanged++
	case ActionFailed:
		s.Failed++
	}
}

// Finalize stamps the end time and derives the duration. The duration is
// clamped at zero so clock adjustments cannot produce a negative value.
func (s *Summary) Finalize() {
	s.EndedAt = utc.Now()
	s.Duration = s.EndedAt.Sub(s.StartedAt)
	if s.Duration < 0 {
		s.Duration = 0
		s.EndedAt = s.StartedAt
	}
}

// HasFailures reports whether any record failed. Automation gates on this:
// a pass with failures exits with a distinct status.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}

// String returns a one-line, human-readable pass summary.
func (s *Summary) String() string {
	mode := ""
	if s.Preview {
		mode = " (preview)"
	}
	return fmt.Sprintf("%d processed: %d added, %d updated, %d unchanged, %d failed%s",
		s.TotalProcessed, s.Added, s.Updated, s.Unchanged, s.Failed, mode)
}
