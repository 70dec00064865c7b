package render

import (
	"fmt"
	"io"

	"github.com/pingsantohq/pingview/pkg/types"
)

// Banner prints the run header before the first probe.
func Banner(w io.Writer, session types.Session) {
	fmt.Fprintf(w, "%s %s (%s): %d probes, %s timeout\n",
		colorHeading.Sprint("PING"),
		session.Host,
		session.Addr,
		session.Count,
		session.Timeout,
	)
}

// ResultLine prints the plain per-probe line used when the bar graph is off.
func ResultLine(w io.Writer, r types.PingResult, peer string) {
	if !r.Success || r.RTTMillis == nil {
		fmt.Fprintf(w, "  %s seq=%d\n", colorLost.Sprint("✗ timeout"), r.Seq)
		return
	}
	rtt := *r.RTTMillis
	fmt.Fprintf(w, "  %s reply from %s: seq=%d time=%s\n",
		colorGood.Sprint("✓"),
		peer,
		r.Seq,
		ColorForRTT(rtt).Sprintf("%.2fms", rtt),
	)
}

// Summary prints the statistics block shown after every run.
func Summary(w io.Writer, session types.Session, s types.Statistics) {
	sectionHeader(w, "statistics")
	fmt.Fprintf(w, "  host: %s (%s)\n", session.Host, session.Addr)
	fmt.Fprintf(w, "  packets: %d sent, %s received, %s lost (%s)\n",
		s.PacketsSent,
		colorGood.Sprintf("%d", s.PacketsReceived),
		colorLost.Sprintf("%d", s.PacketsLost),
		colorLost.Sprintf("%.1f%%", s.PacketLossPercent),
	)
	if s.PacketsReceived == 0 {
		return
	}
	fmt.Fprintf(w, "  rtt: min=%s avg=%s max=%s stddev=%s\n",
		colorGood.Sprintf("%.2fms", s.MinMillis),
		colorWarm.Sprintf("%.2fms", s.AvgMillis),
		colorBad.Sprintf("%.2fms", s.MaxMillis),
		colorHeading.Sprintf("%.2fms", s.StdDevMillis),
	)
}
