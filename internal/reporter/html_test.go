package reporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/droidsec/scodex/internal/scanner"
)

func sampleData() ReportData {
	results := []scanner.Result{
		{Path: "a.apk", Status: scanner.StatusFound, Codes: []string{"1234", "4636"}},
		{Path: "b.apk", Status: scanner.StatusNone},
		{Path: "c.bin", Status: scanner.StatusInvalid},
	}
	return ReportData{
		ScanTime: "2026-08-27 12:00:00",
		Results:  results,
		Total:    len(results),
		WithHits: CountHits(results),
	}
}

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(sampleData())
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	for _, want := range []string{
		"a.apk", "<code>1234</code>", "<code>4636</code>",
		"Secret codes found", "N/A", "Not a valid APK file",
		"3 APKs scanned, 1 with secret codes",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(path, sampleData()); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Fatalf("report does not look like HTML")
	}
}

func TestCountHits(t *testing.T) {
	if got := CountHits(sampleData().Results); got != 1 {
		t.Fatalf("CountHits = %d, want 1", got)
	}
	if got := CountHits(nil); got != 0 {
		t.Fatalf("CountHits(nil) = %d, want 0", got)
	}
}
