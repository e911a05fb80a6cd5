package reconcile

// Sink receives reconciliation results as they happen. OnOutcome is called
// once per processed record, in processing order, so long passes give live
// feedback; OnSummary is called once when the pass ends, including a pass
// cut short by cancellation.
//
// Sinks must not block for long; the engine calls them inline between
// records.
type Sink interface {
	OnOutcome(o Outcome)
	OnSummary(s *Summary)
}

// Sinks fans results out to multiple sinks in order.
type Sinks []Sink

// OnOutcome implements Sink.
func (ss Sinks) OnOutcome(o Outcome) {
	for _, s := range ss {
		s.OnOutcome(o)
	}
}

// OnSummary implements Sink.
func (ss Sinks) OnSummary(sum *Summary) {
	for _, s := range ss {
		s.OnSummary(sum)
	}
}
