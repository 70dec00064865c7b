package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/pingsantohq/pingview/pkg/types"
)

// WriteChartPNG renders the successful samples as a PNG line chart, sequence
// on the X axis. Lost probes are omitted from the series.
func WriteChartPNG(w io.Writer, r types.Report) error {
	var xs, ys []float64
	for _, res := range r.Results {
		if !res.Success || res.RTTMillis == nil {
			continue
		}
		xs = append(xs, float64(res.Seq))
		ys = append(ys, *res.RTTMillis)
	}
	if len(xs) < 2 {
		return fmt.Errorf("need at least 2 successful samples to chart, have %d", len(xs))
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Ping RTT - %s (%s)", r.Session.Host, r.Session.Addr),
		TitleStyle: chart.Style{
			FontSize: 14,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Sequence",
			Style: chart.Style{
				FontSize: 10,
			},
		},
		YAxis: chart.YAxis{
			Name: "RTT (ms)",
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: r.Session.Host,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
