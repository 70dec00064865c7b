// Package run wires the echo engine to its stream consumers for one session.
package run

import (
	"context"
	"log"
	"net/netip"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pingsantohq/pingview/internal/echo"
	"github.com/pingsantohq/pingview/internal/report"
	"github.com/pingsantohq/pingview/internal/stats"
	"github.com/pingsantohq/pingview/internal/transport"
	"github.com/pingsantohq/pingview/pkg/types"
)

// Config describes one session from the caller's point of view.
type Config struct {
	RunID    string
	Host     string
	Addr     netip.Addr
	Count    int
	Timeout  time.Duration
	Interval time.Duration
	// ID is the echo identifier stamped into every request.
	ID uint16
}

// Dependencies carries the runner's collaborators; Conn is required and is
// closed by the engine when the run ends.
type Dependencies struct {
	Conn   transport.Conn
	Logger *log.Logger
	Now    func() time.Time
}

type Option func(*Runner)

// WithObserver registers a callback invoked once per result, in sequence
// order, from the consumer goroutine. Observers must not block indefinitely.
func WithObserver(fn func(types.PingResult)) Option {
	return func(r *Runner) {
		if fn != nil {
			r.observers = append(r.observers, fn)
		}
	}
}

// Runner executes one probing session and assembles its report.
type Runner struct {
	cfg       Config
	engine    *echo.Engine
	now       func() time.Time
	observers []func(types.PingResult)
}

func New(cfg Config, deps Dependencies, opts ...Option) (*Runner, error) {
	engine, err := echo.New(
		echo.Config{
			Addr:     cfg.Addr,
			Count:    cfg.Count,
			Timeout:  cfg.Timeout,
			Interval: cfg.Interval,
			ID:       cfg.ID,
		},
		echo.Dependencies{
			Conn:   deps.Conn,
			Logger: deps.Logger,
			Now:    deps.Now,
		},
	)
	if err != nil {
		return nil, err
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := &Runner{
		cfg:    cfg,
		engine: engine,
		now:    now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run drives the engine to completion or cancellation and returns the
// assembled report. A cancelled run returns the report for the sequences
// resolved so far; results observed mid-run match the final slice exactly.
func (r *Runner) Run(ctx context.Context) (types.Report, error) {
	session := types.Session{
		RunID:   r.cfg.RunID,
		Host:    r.cfg.Host,
		Addr:    r.cfg.Addr,
		Count:   r.cfg.Count,
		Timeout: r.cfg.Timeout,
		Start:   r.now().UTC(),
	}

	stream := make(chan types.PingResult, r.cfg.Count)
	collected := make([]types.PingResult, 0, r.cfg.Count)
	agg := stats.New()

	grp, groupCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		defer close(stream)
		return r.engine.Run(groupCtx, func(res types.PingResult) {
			stream <- res
		})
	})

	grp.Go(func() error {
		for res := range stream {
			collected = append(collected, res)
			agg.Record(res)
			for _, fn := range r.observers {
				fn(res)
			}
		}
		return nil
	})

	if err := grp.Wait(); err != nil {
		return types.Report{}, err
	}

	session.End = r.now().UTC()
	return report.Build(session, collected, agg.Snapshot()), nil
}
