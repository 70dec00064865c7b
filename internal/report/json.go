package report

import (
	"encoding/json"
	"io"

	"github.com/pingsantohq/pingview/pkg/types"
)

type jsonReport struct {
	Host           string           `json:"host"`
	IPAddress      string           `json:"ip_address"`
	TimestampStart string           `json:"timestamp_start"`
	TimestampEnd   string           `json:"timestamp_end"`
	TimeoutSeconds int              `json:"timeout_seconds"`
	Results        []jsonResult     `json:"results"`
	Statistics     types.Statistics `json:"statistics"`
}

type jsonResult struct {
	Seq       int      `json:"seq"`
	RTTMillis *float64 `json:"rtt_ms"`
	Success   bool     `json:"success"`
	Timestamp string   `json:"timestamp"`
}

// WriteJSON renders the report in the export schema: millisecond fields at
// two decimals, null rtt_ms for lost probes.
func WriteJSON(w io.Writer, r types.Report) error {
	out := jsonReport{
		Host:           r.Session.Host,
		IPAddress:      r.Session.Addr.String(),
		TimestampStart: r.Session.Start.Format(timestampLayout),
		TimestampEnd:   r.Session.End.Format(timestampLayout),
		TimeoutSeconds: int(r.Session.Timeout.Seconds()),
		Results:        make([]jsonResult, 0, len(r.Results)),
		Statistics:     roundStatistics(r.Statistics),
	}
	for _, res := range r.Results {
		row := jsonResult{
			Seq:       res.Seq,
			Success:   res.Success,
			Timestamp: res.Timestamp.Format(resultTimestampLayout),
		}
		if res.RTTMillis != nil {
			rtt := round2(*res.RTTMillis)
			row.RTTMillis = &rtt
		}
		out.Results = append(out.Results, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func roundStatistics(s types.Statistics) types.Statistics {
	s.MinMillis = round2(s.MinMillis)
	s.MaxMillis = round2(s.MaxMillis)
	s.AvgMillis = round2(s.AvgMillis)
	s.StdDevMillis = round2(s.StdDevMillis)
	s.PacketLossPercent = round2(s.PacketLossPercent)
	return s
}
