package ports

import "time"

// Pass results recorded by Metrics.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics records what the layout pass did.
type Metrics interface {
	// ObservePass records one configuration pass.
	ObservePass(result string, subprojects, steps int, elapsed time.Duration)
	// ObserveClean records one clean of the shared output root.
	ObserveClean(result string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

// ObservePass does nothing.
func (NopMetrics) ObservePass(string, int, int, time.Duration) {}

// ObserveClean does nothing.
func (NopMetrics) ObserveClean(string) {}
