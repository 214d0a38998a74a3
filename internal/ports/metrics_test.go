package ports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNopMetrics(t *testing.T) {
	var m Metrics = NopMetrics{}
	assert.NotPanics(t, func() {
		m.ObservePass(ResultSuccess, 3, 3, time.Second)
		m.ObserveClean(ResultFailure)
	})
}
