package echo

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"net/netip"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/pingsantohq/pingview/internal/transport"
	"github.com/pingsantohq/pingview/pkg/types"
)

const (
	defaultInterval = time.Second
	recvBufferLen   = 1500
)

// Config describes one probing session.
type Config struct {
	// Addr is the resolved probe target.
	Addr netip.Addr
	// Count is the number of echo requests to send.
	Count int
	// Timeout bounds each probe's wait for a matching reply.
	Timeout time.Duration
	// Interval is the fixed spacing between probe sends. Defaults to 1s.
	Interval time.Duration
	// ID is the session identifier embedded in every request and required
	// on every accepted reply.
	ID uint16
}

// Dependencies carries the engine's collaborators; Conn is required.
type Dependencies struct {
	Conn   transport.Conn
	Logger *log.Logger
	Now    func() time.Time
}

// Engine drives the echo request/reply cycle for one session. It owns the
// transport endpoint for the lifetime of Run and closes it on every exit path.
type Engine struct {
	cfg     Config
	conn    transport.Conn
	logger  *log.Logger
	now     func() time.Time
	limiter *rate.Limiter
}

// New validates cfg and constructs an Engine.
func New(cfg Config, deps Dependencies) (*Engine, error) {
	if deps.Conn == nil {
		return nil, errors.New("echo engine requires a transport connection")
	}
	if cfg.Count <= 0 {
		return nil, errors.New("echo engine requires a positive probe count")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("echo engine requires a positive probe timeout")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		cfg:     cfg,
		conn:    deps.Conn,
		logger:  logger,
		now:     now,
		limiter: rate.NewLimiter(rate.Every(cfg.Interval), 1),
	}, nil
}

// Run sends cfg.Count probes, one in flight at a time, emitting exactly one
// result per sequence in increasing order. Cancellation between probes ends
// the run early; results already emitted remain valid. Run never fails once
// the endpoint exists: send errors and timeouts are recorded as loss.
func (e *Engine) Run(ctx context.Context, emit func(types.PingResult)) error {
	defer e.conn.Close()

	for seq := 0; seq < e.cfg.Count; seq++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil // cancelled between probes
		}
		emit(e.probe(uint16(seq)))
	}
	return nil
}

// probe runs one full send/await cycle and always resolves the sequence.
func (e *Engine) probe(seq uint16) types.PingResult {
	frame := BuildEchoRequest(e.cfg.ID, seq)
	sentAt := e.now()

	if _, err := e.conn.WriteTo(frame, e.cfg.Addr); err != nil {
		e.logger.Printf("send seq=%d failed: %v", seq, err)
		return lossResult(int(seq), e.now())
	}

	buf := make([]byte, recvBufferLen)
	deadline := sentAt.Add(e.cfg.Timeout)
	for {
		if !e.now().Before(deadline) {
			return lossResult(int(seq), e.now())
		}

		n, _, err := e.conn.ReadFrom(buf, deadline)
		if err != nil {
			if !isTimeout(err) {
				e.logger.Printf("receive seq=%d failed: %v", seq, err)
			}
			return lossResult(int(seq), e.now())
		}
		if e.now().After(deadline) {
			// Frame surfaced after the budget ran out.
			return lossResult(int(seq), e.now())
		}

		reply, ok := ParseEchoReply(buf[:n])
		if !ok || reply.ID != e.cfg.ID || reply.Seq != seq {
			// Stray or foreign frame; the time budget keeps running.
			continue
		}

		receivedAt := e.now()
		rtt := roundMillis(receivedAt.Sub(sentAt))
		return types.PingResult{
			Seq:       int(seq),
			RTTMillis: &rtt,
			Success:   true,
			Timestamp: receivedAt,
		}
	}
}

func lossResult(seq int, at time.Time) types.PingResult {
	return types.PingResult{Seq: seq, Success: false, Timestamp: at}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

func roundMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
