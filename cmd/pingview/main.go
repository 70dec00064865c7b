package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/pingsantohq/pingview/internal/config"
	"github.com/pingsantohq/pingview/internal/logging"
	"github.com/pingsantohq/pingview/internal/render"
	"github.com/pingsantohq/pingview/internal/report"
	"github.com/pingsantohq/pingview/internal/resolve"
	"github.com/pingsantohq/pingview/internal/run"
	"github.com/pingsantohq/pingview/internal/transport"
	"github.com/pingsantohq/pingview/pkg/types"
)

const (
	exitOK         = 0
	exitUsage      = 2
	exitResolution = 3
	exitTransport  = 4
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := realMain(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "pingview: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the documented process exit code. Completed runs
// with loss, and interrupted runs, are not errors.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalid):
		return exitUsage
	case errors.Is(err, resolve.ErrNameResolution):
		return exitResolution
	case errors.Is(err, transport.ErrUnavailable):
		return exitTransport
	}
	return 1
}

type options struct {
	count      int
	timeout    time.Duration
	graph      bool
	lineGraph  bool
	jsonPath   string
	csvPath    string
	chartPath  string
	configPath string
	noColor    bool
}

func realMain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pingview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.IntVar(&opts.count, "count", 10, "Number of echo requests to send")
	fs.DurationVar(&opts.timeout, "timeout", 2*time.Second, "Per-probe reply timeout")
	fs.BoolVar(&opts.graph, "graph", false, "Show a live latency bar for every reply")
	fs.BoolVar(&opts.lineGraph, "line-graph", false, "Show a latency line graph after the run")
	fs.StringVar(&opts.jsonPath, "json", "", "Write a JSON report to this file")
	fs.StringVar(&opts.csvPath, "csv", "", "Write a CSV report to this file")
	fs.StringVar(&opts.chartPath, "chart", "", "Write a PNG latency chart to this file")
	fs.StringVar(&opts.configPath, "config", "", "Path to pingview configuration file")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: pingview [flags] host")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%w: exactly one host argument is required", config.ErrInvalid)
	}
	host := fs.Arg(0)

	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(ctx, opts.configPath)
	} else {
		cfg, err = config.LoadFromEnv(ctx)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Explicit flags win over file values.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	count := cfg.Probe.Count
	if set["count"] {
		count = opts.count
	}
	timeout := cfg.Probe.Timeout()
	if set["timeout"] {
		timeout = opts.timeout
	}
	if count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", config.ErrInvalid, count)
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %v", config.ErrInvalid, timeout)
	}

	if opts.noColor || cfg.Render.NoColor {
		color.NoColor = true
	}

	logger := logging.New()
	runID := uuid.NewString()

	addr, err := resolve.Resolver{}.Addr(ctx, host)
	if err != nil {
		return err
	}

	conn, err := transport.Open()
	if err != nil {
		return err
	}

	logger.Printf("run %s: probing %s (%s) count=%d timeout=%s", runID, host, addr, count, timeout)

	render.Banner(stdout, types.Session{
		RunID:   runID,
		Host:    host,
		Addr:    addr,
		Count:   count,
		Timeout: timeout,
	})

	peer := addr.String()
	var runOpts []run.Option
	if opts.graph {
		render.Legend(stdout)
		bar := render.NewBarGraph(stdout,
			render.WithBarWidth(cfg.Render.BarWidth),
			render.WithBarCeiling(cfg.Render.BarCeilingMS),
		)
		runOpts = append(runOpts, run.WithObserver(func(r types.PingResult) {
			bar.RenderResult(r, peer)
		}))
	} else {
		runOpts = append(runOpts, run.WithObserver(func(r types.PingResult) {
			render.ResultLine(stdout, r, peer)
		}))
	}

	runner, err := run.New(
		run.Config{
			RunID:    runID,
			Host:     host,
			Addr:     addr,
			Count:    count,
			Timeout:  timeout,
			Interval: cfg.Probe.Interval(),
			ID:       uint16(os.Getpid()),
		},
		run.Dependencies{Conn: conn, Logger: logger},
		runOpts...,
	)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	rep, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		logger.Printf("run %s: interrupted after %d of %d probes", runID, len(rep.Results), count)
	}

	if opts.lineGraph {
		render.NewLineGraph(stdout, render.WithLineRows(cfg.Render.LineRows)).Render(rep.Results)
	}
	if opts.graph || opts.lineGraph {
		render.NewHistogram(stdout).Render(rep.Results, rep.Statistics.PacketsSent)
	}
	render.Summary(stdout, rep.Session, rep.Statistics)

	exportReport(rep, opts, stdout, stderr)
	return nil
}

// exportReport writes all requested export files. Failures are warnings;
// console output already happened and stays authoritative.
func exportReport(rep types.Report, opts options, stdout, stderr io.Writer) {
	exports := []struct {
		path  string
		kind  string
		write func(string) error
	}{
		{opts.jsonPath, "JSON report", func(p string) error { return report.ExportJSON(p, rep) }},
		{opts.csvPath, "CSV report", func(p string) error { return report.ExportCSV(p, rep, time.Now().UTC()) }},
		{opts.chartPath, "latency chart", func(p string) error { return report.ExportChartPNG(p, rep) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			fmt.Fprintf(stderr, "pingview: warning: %v\n", err)
			continue
		}
		fmt.Fprintf(stdout, "wrote %s to %s\n", e.kind, e.path)
	}
}
