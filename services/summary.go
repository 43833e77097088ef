package services

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"fashion-etl/models"
)

// SummaryService turns per-sink load results into a report and prints it.
type SummaryService struct {
	out io.Writer
}

// NewSummaryService creates a service that prints to out.
func NewSummaryService(out io.Writer) *SummaryService {
	return &SummaryService{out: out}
}

// Generate counts successes and failures across the load results.
func (s *SummaryService) Generate(results []models.LoadResult) *models.LoadReport {
	report := &models.LoadReport{Results: results, Total: len(results)}
	if len(results) == 0 {
		return report
	}

	for _, r := range results {
		if r.OK {
			report.Succeeded++
		}
	}
	report.Failed = report.Total - report.Succeeded
	report.SuccessRate = round1(float64(report.Succeeded) / float64(report.Total) * 100)
	return report
}

// Print renders the per-destination table followed by the totals.
func (s *SummaryService) Print(r *models.LoadReport) {
	fmt.Fprintln(s.out, "\nLoad results:")

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(s.out)
	t.AppendHeader(table.Row{"", "Destination", "Status"})
	for _, res := range r.Results {
		symbol, status := "✅", "Data saved successfully"
		if !res.OK {
			symbol, status = "❌", "Failed to save data"
		}
		t.AppendRow(table.Row{symbol, DestinationLabel(res.Name), status})
	}
	t.Render()

	fmt.Fprintln(s.out, "\nSummary:")
	fmt.Fprintf(s.out, "Total operations : %d\n", r.Total)
	fmt.Fprintf(s.out, "Succeeded        : %d\n", r.Succeeded)
	fmt.Fprintf(s.out, "Failed           : %d\n", r.Failed)
	fmt.Fprintf(s.out, "Success rate     : %.1f%%\n", r.SuccessRate)
}

// DestinationLabel turns a sink key such as "google_sheets" into "Google Sheets".
func DestinationLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
