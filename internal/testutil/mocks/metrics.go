package mocks

import (
	"sync"
	"time"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
)

// Pass is one recorded ObservePass call.
type Pass struct {
	Result      string
	Subprojects int
	Steps       int
	Elapsed     time.Duration
}

// Metrics records observations in memory.
type Metrics struct {
	mu     sync.Mutex
	passes []Pass
	cleans []string
}

// NewMetrics creates an empty Metrics recorder.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// ObservePass implements ports.Metrics.
func (m *Metrics) ObservePass(result string, subprojects, steps int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passes = append(m.passes, Pass{Result: result, Subprojects: subprojects, Steps: steps, Elapsed: elapsed})
}

// ObserveClean implements ports.Metrics.
func (m *Metrics) ObserveClean(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleans = append(m.cleans, result)
}

// Passes returns the recorded passes.
func (m *Metrics) Passes() []Pass {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Pass(nil), m.passes...)
}

// Cleans returns the recorded clean results.
func (m *Metrics) Cleans() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.cleans...)
}

var _ ports.Metrics = (*Metrics)(nil)
