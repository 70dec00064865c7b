package types

import (
	"net/netip"
	"time"
)

// PingResult is the outcome of a single echo probe. Exactly one is produced
// per sequence number, in sequence order. RTTMillis is set iff Success is true.
type PingResult struct {
	Seq       int       `json:"seq" yaml:"seq"`
	RTTMillis *float64  `json:"rtt_ms" yaml:"rtt_ms"`
	Success   bool      `json:"success" yaml:"success"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// RTT returns the round-trip time in milliseconds, or 0 for a lost probe.
func (r PingResult) RTT() float64 {
	if r.RTTMillis == nil {
		return 0
	}
	return *r.RTTMillis
}

// Statistics is an immutable summary of a (possibly partial) result sequence.
// Min, Max, Avg and StdDev are zero when no probe succeeded.
type Statistics struct {
	MinMillis         float64 `json:"min_ms" yaml:"min_ms"`
	MaxMillis         float64 `json:"max_ms" yaml:"max_ms"`
	AvgMillis         float64 `json:"avg_ms" yaml:"avg_ms"`
	StdDevMillis      float64 `json:"std_dev_ms" yaml:"std_dev_ms"`
	PacketsSent       int     `json:"packets_sent" yaml:"packets_sent"`
	PacketsReceived   int     `json:"packets_received" yaml:"packets_received"`
	PacketsLost       int     `json:"packets_lost" yaml:"packets_lost"`
	PacketLossPercent float64 `json:"packet_loss_percent" yaml:"packet_loss_percent"`
}

// Session describes one probing run. End is zero until the run finishes.
type Session struct {
	RunID   string
	Host    string
	Addr    netip.Addr
	Count   int
	Timeout time.Duration
	Start   time.Time
	End     time.Time
}

// Report bundles everything a finished (or cancelled) session produced.
type Report struct {
	Session    Session
	Results    []PingResult
	Statistics Statistics
}
