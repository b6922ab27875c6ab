package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
	"github.com/jobradar/jobradar/internal/salary"
)

const remotiveURL = "https://remotive.com/api/remote-jobs"

// Remotive fetches the remotive.com remote-jobs API. Every posting on
// the board is remote by construction.
type Remotive struct {
	URL string

	cfg    policy.Config
	client *http.Client
}

func NewRemotive(cfg policy.Config) *Remotive {
	return &Remotive{
		URL:    remotiveURL,
		cfg:    cfg,
		client: newHTTPClient(),
	}
}

func (r *Remotive) Name() string { return string(jobs.SourceRemotive) }

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID                        int64  `json:"id"`
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	URL                       string `json:"url"`
	Salary                    string `json:"salary"`
	SalaryRange               string `json:"salary_range"`
	Description               string `json:"description"`
	JobType                   string `json:"job_type"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	PublicationDate           string `json:"publication_date"`
}

func (r *Remotive) Fetch(ctx context.Context) (*jobs.Jobs, error) {
	var resp remotiveResponse
	if err := getJSON(ctx, r.client, r.URL, &resp); err != nil {
		return nil, fmt.Errorf("remotive: %w", err)
	}

	found := &jobs.Jobs{}
	for _, raw := range resp.Jobs {
		salaryText := raw.Salary
		if salaryText == "" {
			salaryText = raw.SalaryRange
		}
		sal := salary.Normalize(salaryText)
		content := strings.Join([]string{raw.Title, raw.Description, raw.JobType, raw.CandidateRequiredLocation}, " ")
		job := &jobs.Job{
			ID:           fmt.Sprintf("%d", raw.ID),
			Title:        raw.Title,
			Company:      raw.CompanyName,
			Remote:       true,
			SalaryEURMin: sal.Min,
			SalaryEURMax: sal.Max,
			URL:          raw.URL,
			Source:       jobs.SourceRemotive,
			CreatedAt:    raw.PublicationDate,
			Description:  content,
		}
		if policy.Admit(job.SearchText(), r.cfg) {
			found.Items = append(found.Items, job)
		}
	}
	return found, nil
}
