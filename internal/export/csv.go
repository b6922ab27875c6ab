// Package export renders the shortlist: a delimited table, a
// human-readable HTML list with collapsible score breakdowns, and
// per-posting cover notes. One artifact set per run, dated by day.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jobradar/jobradar/internal/pipeline"
	"github.com/jobradar/jobradar/internal/scoring"
)

var csvHeader = []string{
	"score", "scoreBreakdown", "title", "company",
	"salaryMin", "salaryMax", "remote", "url", "source", "createdAt",
}

// FormatBreakdown renders a score breakdown as "+5:reason | -100:reason"
// preserving evaluation order.
func FormatBreakdown(details []scoring.Detail) string {
	parts := make([]string, 0, len(details))
	for _, d := range details {
		parts = append(parts, fmt.Sprintf("%+d:%s", d.Delta, d.Reason))
	}
	return strings.Join(parts, " | ")
}

// WriteCSV writes shortlist-<dateTag>.csv into outDir.
func WriteCSV(shortlist []*pipeline.Scored, outDir, dateTag string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, fmt.Sprintf("shortlist-%s.csv", dateTag))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, item := range shortlist {
		j := item.Job
		salaryMin, salaryMax := "", ""
		if j.SalaryEURMin != nil {
			salaryMin = fmt.Sprintf("%d", *j.SalaryEURMin)
		}
		if j.SalaryEURMax != nil {
			salaryMax = fmt.Sprintf("%d", *j.SalaryEURMax)
		}

		record := []string{
			fmt.Sprintf("%d", item.Score.Total),
			FormatBreakdown(item.Score.Details),
			j.Title,
			j.Company,
			salaryMin,
			salaryMax,
			fmt.Sprintf("%t", j.Remote),
			j.URL,
			string(j.Source),
			j.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return path, w.Error()
}
