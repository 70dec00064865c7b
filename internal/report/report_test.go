package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pingsantohq/pingview/pkg/types"
)

func sampleReport() types.Report {
	start := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rtt0 := 9.65
	rtt2 := 12.49
	session := types.Session{
		RunID:   "f6b7c2d0-0000-0000-0000-000000000001",
		Host:    "probe.example",
		Addr:    netip.MustParseAddr("192.0.2.1"),
		Count:   3,
		Timeout: 2 * time.Second,
		Start:   start,
		End:     start.Add(3 * time.Second),
	}
	results := []types.PingResult{
		{Seq: 0, Success: true, RTTMillis: &rtt0, Timestamp: start.Add(10 * time.Millisecond)},
		{Seq: 1, Success: false, Timestamp: start.Add(3 * time.Second)},
		{Seq: 2, Success: true, RTTMillis: &rtt2, Timestamp: start.Add(2012 * time.Millisecond)},
	}
	stats := types.Statistics{
		MinMillis:         9.65,
		MaxMillis:         12.49,
		AvgMillis:         11.07,
		StdDevMillis:      1.42,
		PacketsSent:       3,
		PacketsReceived:   2,
		PacketsLost:       1,
		PacketLossPercent: 33.333333,
	}
	return Build(session, results, stats)
}

func TestWriteJSONSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	for _, key := range []string{"host", "ip_address", "timestamp_start", "timestamp_end", "timeout_seconds", "results", "statistics"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing top-level key %q", key)
		}
	}
	if decoded["host"] != "probe.example" || decoded["ip_address"] != "192.0.2.1" {
		t.Fatalf("unexpected host/ip: %v / %v", decoded["host"], decoded["ip_address"])
	}
	if decoded["timeout_seconds"] != float64(2) {
		t.Fatalf("expected timeout_seconds 2 got %v", decoded["timeout_seconds"])
	}
	if decoded["timestamp_start"] != "2026-03-14 09:26:53" {
		t.Fatalf("unexpected timestamp format: %v", decoded["timestamp_start"])
	}

	results, ok := decoded["results"].([]any)
	if !ok || len(results) != 3 {
		t.Fatalf("expected 3 results, got %v", decoded["results"])
	}
	lost := results[1].(map[string]any)
	if lost["rtt_ms"] != nil {
		t.Fatalf("lost probe must export null rtt_ms, got %v", lost["rtt_ms"])
	}
	if lost["success"] != false {
		t.Fatalf("lost probe success must be false")
	}
	first := results[0].(map[string]any)
	if first["rtt_ms"] != 9.65 {
		t.Fatalf("expected rtt_ms 9.65 got %v", first["rtt_ms"])
	}

	statsObj, ok := decoded["statistics"].(map[string]any)
	if !ok {
		t.Fatalf("missing statistics object")
	}
	for _, key := range []string{"min_ms", "max_ms", "avg_ms", "std_dev_ms", "packets_sent", "packets_received", "packets_lost", "packet_loss_percent"} {
		if _, ok := statsObj[key]; !ok {
			t.Fatalf("missing statistics key %q", key)
		}
	}
	if statsObj["packet_loss_percent"] != 33.33 {
		t.Fatalf("expected loss percent rounded to 33.33, got %v", statsObj["packet_loss_percent"])
	}
}

func TestWriteCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	generated := time.Date(2026, 3, 14, 9, 27, 0, 0, time.UTC)
	if err := WriteCSV(&buf, sampleReport(), generated); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	expectPrefix := []string{
		"# Ping Report",
		"# Host: probe.example",
		"# IP: 192.0.2.1",
		"# Generated: 2026-03-14 09:27:00",
		"#",
		"seq,rtt_ms,success,timestamp",
		"0,9.65,true,2026-03-14 09:26:53.010",
		"1,,false,2026-03-14 09:26:56.000",
		"2,12.49,true,2026-03-14 09:26:55.012",
		"",
		"# Statistics",
		"# packets_sent,packets_received,packets_lost,loss_percent,min_ms,avg_ms,max_ms,std_dev_ms",
		"3,2,1,33.33,9.65,11.07,12.49,1.42",
	}
	if len(lines) < len(expectPrefix) {
		t.Fatalf("expected at least %d lines got %d:\n%s", len(expectPrefix), len(lines), buf.String())
	}
	for i, want := range expectPrefix {
		if lines[i] != want {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestWriteChartPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChartPNG(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteChartPNG: %v", err)
	}
	// PNG signature.
	if !bytes.HasPrefix(buf.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatalf("expected PNG output, got %x", buf.Bytes()[:8])
	}
}

func TestWriteChartPNGNeedsSamples(t *testing.T) {
	r := sampleReport()
	r.Results = r.Results[1:2] // only the lost probe
	if err := WriteChartPNG(&bytes.Buffer{}, r); err == nil {
		t.Fatalf("expected error charting a lossy-only run")
	}
}

func TestExportJSONFileError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "missing", "report.json")

	err := ExportJSON(bad, sampleReport())
	if !errors.Is(err, ErrExport) {
		t.Fatalf("expected ErrExport got %v", err)
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := ExportJSON(path, sampleReport()); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var decoded map[string]any
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
}
