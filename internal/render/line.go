package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/pingsantohq/pingview/pkg/types"
)

const (
	defaultLineRows = 10
	maxLineColumns  = 60
)

// LineGraph plots the whole run as an ASCII trace, one column per sequence,
// quantized into a fixed number of latency rows.
type LineGraph struct {
	w    io.Writer
	rows int
}

type LineOption func(*LineGraph)

func WithLineRows(rows int) LineOption {
	return func(g *LineGraph) {
		if rows > 1 {
			g.rows = rows
		}
	}
}

func NewLineGraph(w io.Writer, opts ...LineOption) *LineGraph {
	g := &LineGraph{w: w, rows: defaultLineRows}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Render draws the trace for a finished (possibly partial) result sequence.
func (g *LineGraph) Render(results []types.PingResult) {
	sectionHeader(g.w, "latency over time")

	min, max, any := rttRange(results)
	if !any {
		fmt.Fprintf(g.w, "  %s\n", colorLost.Sprint("no samples to plot"))
		return
	}

	cols := len(results)
	if cols > maxLineColumns {
		cols = maxLineColumns
	}

	grid := make([][]rune, g.rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	prevRow := -1 // row of the previous column, -1 when it was a gap
	for col, r := range results[:cols] {
		if !r.Success || r.RTTMillis == nil {
			prevRow = -1
			continue
		}
		row := g.rowFor(*r.RTTMillis, min, max)
		grid[row][col] = '●'
		if prevRow >= 0 {
			lo, hi := prevRow, row
			if lo > hi {
				lo, hi = hi, lo
			}
			for fill := lo + 1; fill < hi; fill++ {
				if grid[fill][col] == ' ' {
					grid[fill][col] = '│'
				}
			}
		}
		prevRow = row
	}

	// Top display row holds the highest latency.
	for display := 0; display < g.rows; display++ {
		row := g.rows - 1 - display
		value := min
		if g.rows > 1 {
			value = min + float64(row)/float64(g.rows-1)*(max-min)
		}
		label := colorDim.Sprintf("%7.1fms", value)

		line := string(grid[row])
		border := "│"
		if display == 0 || display == g.rows-1 {
			border = "┤"
		}
		fmt.Fprintf(g.w, "  %s %s%s\n", label, border, g.rowColor(display).Sprint(line))
	}

	fmt.Fprintf(g.w, "  %s └%s\n", strings.Repeat(" ", 9), strings.Repeat("─", cols))
	var labels strings.Builder
	for col := 0; col < cols; col++ {
		if col%5 == 0 {
			labels.WriteString(fmt.Sprintf("%d", col%10))
		} else {
			labels.WriteByte(' ')
		}
	}
	fmt.Fprintf(g.w, "  %s  %s\n", strings.Repeat(" ", 9), colorDim.Sprint(labels.String()))
	fmt.Fprintf(g.w, "  %s  %s\n", strings.Repeat(" ", 9), colorDim.Sprint("seq →"))
}

// rowFor quantizes rtt into [0, rows-1]; row 0 is the minimum.
func (g *LineGraph) rowFor(rtt, min, max float64) int {
	if max == min {
		return 0
	}
	row := int(math.Round((rtt - min) / (max - min) * float64(g.rows-1)))
	if row < 0 {
		row = 0
	}
	if row > g.rows-1 {
		row = g.rows - 1
	}
	return row
}

// rowColor shades the display by vertical band: high rows red, middle yellow,
// low green.
func (g *LineGraph) rowColor(display int) *color.Color {
	switch {
	case display < g.rows/3:
		return colorBad
	case display < 2*g.rows/3:
		return colorWarm
	default:
		return colorGood
	}
}

func rttRange(results []types.PingResult) (min, max float64, any bool) {
	for _, r := range results {
		if !r.Success || r.RTTMillis == nil {
			continue
		}
		rtt := *r.RTTMillis
		if !any || rtt < min {
			min = rtt
		}
		if !any || rtt > max {
			max = rtt
		}
		any = true
	}
	return min, max, any
}
