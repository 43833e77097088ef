package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"fashion-etl/models"
)

func sampleResults() []models.LoadResult {
	return []models.LoadResult{
		{Name: "csv", OK: true},
		{Name: "google_sheets", OK: false, Err: errors.New("no result")},
		{Name: "postgresql", OK: false, Err: errors.New("refused")},
	}
}

func TestSummaryCounts(t *testing.T) {
	svc := NewSummaryService(&bytes.Buffer{})
	r := svc.Generate(sampleResults())
	if r.Total != 3 {
		t.Errorf("Total: got %d, want 3", r.Total)
	}
	if r.Succeeded != 1 || r.Failed != 2 {
		t.Errorf("Succeeded/Failed: got %d/%d, want 1/2", r.Succeeded, r.Failed)
	}
	if r.SuccessRate != 33.3 {
		t.Errorf("SuccessRate: got %.2f, want 33.3", r.SuccessRate)
	}
}

func TestSummaryEmptyInput(t *testing.T) {
	r := NewSummaryService(&bytes.Buffer{}).Generate(nil)
	if r.Total != 0 || r.SuccessRate != 0 {
		t.Errorf("expected zero report for empty input, got %+v", r)
	}
}

func TestSummaryPrint(t *testing.T) {
	var buf bytes.Buffer
	svc := NewSummaryService(&buf)
	svc.Print(svc.Generate(sampleResults()))

	out := buf.String()
	for _, want := range []string{"✅", "❌", "Csv", "Google Sheets", "Postgresql", "Success rate     : 33.3%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDestinationLabel(t *testing.T) {
	tests := map[string]string{
		"csv":           "Csv",
		"google_sheets": "Google Sheets",
		"postgresql":    "Postgresql",
	}
	for in, want := range tests {
		if got := DestinationLabel(in); got != want {
			t.Errorf("DestinationLabel(%q) = %q; want %q", in, got, want)
		}
	}
}
