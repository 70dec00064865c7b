// Package render draws the live and post-run console visualizations.
// All renderers write to an injected io.Writer and share one latency/color
// mapping so the legend, bars, trace and histogram never disagree.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Latency thresholds in milliseconds.
const (
	thresholdGood = 20.0
	thresholdWarm = 50.0
	thresholdHot  = 100.0
)

var (
	colorGood    = color.New(color.FgGreen)
	colorWarm    = color.New(color.FgYellow)
	colorHot     = color.RGB(255, 165, 0)
	colorBad     = color.New(color.FgRed)
	colorLost    = color.New(color.FgRed, color.Bold)
	colorDim     = color.New(color.Faint)
	colorHeading = color.New(color.FgCyan)
)

// ColorForRTT maps a round-trip time to its display color. The same function
// backs every renderer and the legend.
func ColorForRTT(rtt float64) *color.Color {
	switch {
	case rtt < thresholdGood:
		return colorGood
	case rtt < thresholdWarm:
		return colorWarm
	case rtt < thresholdHot:
		return colorHot
	default:
		return colorBad
	}
}

// Legend prints the threshold legend used by the graphs.
func Legend(w io.Writer) {
	fmt.Fprintf(w, "  %s %s  %s  %s  %s\n",
		colorDim.Sprint("legend:"),
		colorGood.Sprint("● <20ms"),
		colorWarm.Sprint("● 20-50ms"),
		colorHot.Sprint("● 50-100ms"),
		colorBad.Sprint("● ≥100ms"),
	)
}

func sectionHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", colorHeading.Sprintf("── %s ──", title))
}
