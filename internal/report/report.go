// Package report provides reconcile.Sink implementations for terminal and
// file output. The console sink streams one line per outcome so long passes
// give live feedback; the file sink persists the final summary as JSON or
// YAML for later inspection.
package report

import (
	"github.com/agentstation/seatsync/pkg/reconcile"
)

// Nop is a Sink that discards all outcomes and summaries.
type Nop struct{}

// OnOutcome implements reconcile.Sink.
func (Nop) OnOutcome(reconcile.Outcome) {}

// OnSummary implements reconcile.Sink.
func (Nop) OnSummary(*reconcile.Summary) {}

var _ reconcile.Sink = Nop{}
