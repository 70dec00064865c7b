// Package report turns a finished session into its export formats. Export
// failures never invalidate the console output that already happened; the
// caller decides how loudly to complain.
package report

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pingsantohq/pingview/pkg/types"
)

// ErrExport marks any export failure, post-run and non-fatal.
var ErrExport = errors.New("export failed")

const (
	timestampLayout       = "2006-01-02 15:04:05"
	resultTimestampLayout = "2006-01-02 15:04:05.000"
)

// Build assembles the report for a finished (possibly cancelled) session.
func Build(session types.Session, results []types.PingResult, stats types.Statistics) types.Report {
	return types.Report{
		Session:    session,
		Results:    results,
		Statistics: stats,
	}
}

// ExportJSON writes the JSON report to path.
func ExportJSON(path string, r types.Report) error {
	return exportFile(path, "json", func(f *os.File) error {
		return WriteJSON(f, r)
	})
}

// ExportCSV writes the CSV report to path.
func ExportCSV(path string, r types.Report, generated time.Time) error {
	return exportFile(path, "csv", func(f *os.File) error {
		return WriteCSV(f, r, generated)
	})
}

// ExportChartPNG writes the PNG latency chart to path.
func ExportChartPNG(path string, r types.Report) error {
	return exportFile(path, "chart", func(f *os.File) error {
		return WriteChartPNG(f, r)
	})
}

func exportFile(path, kind string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s %q: %v", ErrExport, kind, path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s %q: %v", ErrExport, kind, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s %q: %v", ErrExport, kind, path, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
