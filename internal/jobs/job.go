// Package jobs defines the canonical posting record shared by every
// provider and every downstream surface.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Source identifies the provider a posting came from.
type Source string

const (
	SourceGreenhouse     Source = "greenhouse"
	SourceLever          Source = "lever"
	SourceAshby          Source = "ashby"
	SourceRemotive       Source = "remotive"
	SourceRemoteOK       Source = "remoteok"
	SourceWeWorkRemotely Source = "weworkremotely"
)

// Job is one normalized posting. IDs are only unique within a source;
// the URL is the identity key for deduplication.
type Job struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location,omitempty"`
	Remote       bool   `json:"remote"`
	TimezoneNote string `json:"timezone_note,omitempty"`
	SalaryEURMin *int   `json:"salary_eur_min,omitempty"`
	SalaryEURMax *int   `json:"salary_eur_max,omitempty"`
	URL          string `json:"url"`
	Source       Source `json:"source"`
	CreatedAt    string `json:"created_at"`
	Description  string `json:"description,omitempty"`
}

// SearchText returns the lower-cased title+description haystack every
// policy predicate and scoring rule operates on.
func (j *Job) SearchText() string {
	return strings.ToLower(j.Title + " " + j.Description)
}

type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) Append(other *Jobs) {
	if other == nil {
		return
	}
	j.Items = append(j.Items, other.Items...)
}

func (j *Jobs) FindByURL(url string) *Job {
	for _, job := range j.Items {
		if job.URL == url {
			return job
		}
	}
	return nil
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "shortlist_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportBySource groups postings per provider for the interactive report.
func (j *Jobs) ReportBySource() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		key := string(job.Source)
		salary := ""
		if job.SalaryEURMin != nil {
			salary = fmt.Sprintf("%d", *job.SalaryEURMin)
			if job.SalaryEURMax != nil && *job.SalaryEURMax != *job.SalaryEURMin {
				salary = fmt.Sprintf("%d-%d", *job.SalaryEURMin, *job.SalaryEURMax)
			}
			salary += " EUR"
		}
		report[key] = append(report[key], map[string]string{
			"title":      job.Title,
			"company":    job.Company,
			"url":        job.URL,
			"salary":     salary,
			"created_at": job.CreatedAt,
		})
	}
	return report
}
