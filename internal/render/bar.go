package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pingsantohq/pingview/pkg/types"
)

const (
	defaultBarWidth = 40
	// defaultBarCeiling is the RTT at which a bar saturates to full width.
	defaultBarCeiling = 50.0
)

// BarGraph renders one line per arriving result against a fixed visual scale,
// so bar lengths stay comparable across the whole run.
type BarGraph struct {
	w       io.Writer
	width   int
	ceiling float64
}

type BarOption func(*BarGraph)

func WithBarWidth(width int) BarOption {
	return func(g *BarGraph) {
		if width > 0 {
			g.width = width
		}
	}
}

func WithBarCeiling(ceiling float64) BarOption {
	return func(g *BarGraph) {
		if ceiling > 0 {
			g.ceiling = ceiling
		}
	}
}

func NewBarGraph(w io.Writer, opts ...BarOption) *BarGraph {
	g := &BarGraph{
		w:       w,
		width:   defaultBarWidth,
		ceiling: defaultBarCeiling,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RenderResult prints the line for one probe outcome.
func (g *BarGraph) RenderResult(r types.PingResult, peer string) {
	if !r.Success || r.RTTMillis == nil {
		fmt.Fprintf(g.w, "  seq=%-3d │%s│ %s\n",
			r.Seq,
			colorLost.Sprint(strings.Repeat("×", g.width)),
			colorLost.Sprint("no reply"),
		)
		return
	}

	rtt := *r.RTTMillis
	filled := int(math.Round(rtt / g.ceiling * float64(g.width)))
	if filled > g.width {
		filled = g.width
	}
	if filled < 0 {
		filled = 0
	}

	c := ColorForRTT(rtt)
	fmt.Fprintf(g.w, "  seq=%-3d │%s%s│ %s  %s\n",
		r.Seq,
		c.Sprint(strings.Repeat("█", filled)),
		colorDim.Sprint(strings.Repeat("░", g.width-filled)),
		c.Sprintf("%7.2fms", rtt),
		colorDim.Sprint(peer),
	)
}
