// Package stats accumulates probe results incrementally and derives summary
// statistics on demand. Standard deviation uses the population divisor
// (n = success count), matching the reporting of the console summary.
package stats

import (
	"math"

	"github.com/pingsantohq/pingview/pkg/types"
)

// Aggregator maintains running sums over a result stream. Methods are not
// safe for concurrent use; the result pipeline is strictly ordered anyway.
type Aggregator struct {
	sent     int
	received int
	lost     int
	sum      float64
	sumSq    float64
	min      float64
	max      float64
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Record folds one result into the running sums. O(1).
func (a *Aggregator) Record(r types.PingResult) {
	a.sent++
	if !r.Success || r.RTTMillis == nil {
		a.lost++
		return
	}
	rtt := *r.RTTMillis
	if a.received == 0 || rtt < a.min {
		a.min = rtt
	}
	if a.received == 0 || rtt > a.max {
		a.max = rtt
	}
	a.received++
	a.sum += rtt
	a.sumSq += rtt * rtt
}

// Snapshot derives an immutable Statistics view of the current sums. It is
// valid at any point, including mid-run. With no successful probes the
// latency fields are all zero rather than NaN, so renderers stay simple.
func (a *Aggregator) Snapshot() types.Statistics {
	s := types.Statistics{
		PacketsSent:     a.sent,
		PacketsReceived: a.received,
		PacketsLost:     a.lost,
	}
	if a.sent > 0 {
		s.PacketLossPercent = float64(a.lost) / float64(a.sent) * 100
	}
	if a.received == 0 {
		return s
	}
	n := float64(a.received)
	mean := a.sum / n
	variance := a.sumSq/n - mean*mean
	if variance < 0 {
		variance = 0 // guards against float cancellation
	}
	s.MinMillis = a.min
	s.MaxMillis = a.max
	s.AvgMillis = mean
	s.StdDevMillis = math.Sqrt(variance)
	return s
}
