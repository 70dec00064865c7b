package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pingsantohq/pingview/pkg/types"
)

const defaultHistogramWidth = 40

// histogramBuckets are fixed latency bands; a sample lands in the bucket
// where lo <= rtt < hi.
var histogramBuckets = []struct {
	lo    float64
	hi    float64
	label string
}{
	{0, 10, "  0-10ms"},
	{10, 20, " 10-20ms"},
	{20, 50, " 20-50ms"},
	{50, 100, "50-100ms"},
	{100, math.Inf(1), "  ≥100ms"},
}

// Histogram renders the latency distribution of a finished run. Lost probes
// are excluded from every bucket; percentages are over total probes sent.
type Histogram struct {
	w     io.Writer
	width int
}

type HistogramOption func(*Histogram)

func WithHistogramWidth(width int) HistogramOption {
	return func(h *Histogram) {
		if width > 0 {
			h.width = width
		}
	}
}

func NewHistogram(w io.Writer, opts ...HistogramOption) *Histogram {
	h := &Histogram{w: w, width: defaultHistogramWidth}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BucketCounts tallies successful samples into the fixed bands. Exported for
// reuse by the report layer.
func BucketCounts(results []types.PingResult) []int {
	counts := make([]int, len(histogramBuckets))
	for _, r := range results {
		if !r.Success || r.RTTMillis == nil {
			continue
		}
		rtt := *r.RTTMillis
		for i, b := range histogramBuckets {
			if rtt >= b.lo && rtt < b.hi {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// Render draws the distribution for sent total probes.
func (h *Histogram) Render(results []types.PingResult, sent int) {
	sectionHeader(h.w, "latency distribution")

	counts := BucketCounts(results)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		fmt.Fprintf(h.w, "  %s\n", colorLost.Sprint("no samples to bucket"))
		return
	}

	for i, b := range histogramBuckets {
		count := counts[i]
		barLen := int(math.Round(float64(count) / float64(maxCount) * float64(h.width)))

		percent := 0.0
		if sent > 0 {
			percent = float64(count) / float64(sent) * 100
		}

		c := ColorForRTT(b.lo)
		fmt.Fprintf(h.w, "  %s │%s%s %3d (%5.1f%%)\n",
			colorHeading.Sprint(b.label),
			c.Sprint(strings.Repeat("█", barLen)),
			strings.Repeat(" ", h.width-barLen),
			count,
			percent,
		)
	}
}
