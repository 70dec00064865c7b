package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pingsantohq/pingview/pkg/types"
)

// WriteCSV renders the CSV report: a commented preamble, one row per result
// (lost probes leave rtt_ms empty), then a commented statistics section.
// The comment lines rule out encoding/csv for the document as a whole; the
// rows are plain enough to format directly.
func WriteCSV(w io.Writer, r types.Report, generated time.Time) error {
	s := roundStatistics(r.Statistics)

	var err error
	write := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	write("# Ping Report\n")
	write("# Host: %s\n", r.Session.Host)
	write("# IP: %s\n", r.Session.Addr)
	write("# Generated: %s\n", generated.Format(timestampLayout))
	write("#\n")
	write("seq,rtt_ms,success,timestamp\n")
	for _, res := range r.Results {
		rtt := ""
		if res.RTTMillis != nil {
			rtt = fmt.Sprintf("%.2f", *res.RTTMillis)
		}
		write("%d,%s,%t,%s\n", res.Seq, rtt, res.Success, res.Timestamp.Format(resultTimestampLayout))
	}
	write("\n# Statistics\n")
	write("# packets_sent,packets_received,packets_lost,loss_percent,min_ms,avg_ms,max_ms,std_dev_ms\n")
	write("%d,%d,%d,%.2f,%.2f,%.2f,%.2f,%.2f\n",
		s.PacketsSent,
		s.PacketsReceived,
		s.PacketsLost,
		s.PacketLossPercent,
		s.MinMillis,
		s.AvgMillis,
		s.MaxMillis,
		s.StdDevMillis,
	)
	return err
}
