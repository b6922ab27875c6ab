package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
	"github.com/jobradar/jobradar/internal/salary"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// Lever fetches postings from the public Lever postings API for a
// configured list of companies.
type Lever struct {
	Companies []string
	BaseURL   string

	cfg    policy.Config
	client *http.Client
}

func NewLever(companies []string, cfg policy.Config) *Lever {
	return &Lever{
		Companies: companies,
		BaseURL:   leverBaseURL,
		cfg:       cfg,
		client:    newHTTPClient(),
	}
}

func (l *Lever) Name() string { return string(jobs.SourceLever) }

type leverJob struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"descriptionPlain"`
	HostedURL   string `json:"hostedUrl"`
	CreatedAt   int64  `json:"createdAt"` // milliseconds since epoch
}

func (l *Lever) Fetch(ctx context.Context) (*jobs.Jobs, error) {
	found := &jobs.Jobs{}
	for _, company := range l.Companies {
		url := fmt.Sprintf("%s/%s?mode=json", l.BaseURL, company)

		var resp []leverJob
		if err := getJSON(ctx, l.client, url, &resp); err != nil {
			return nil, fmt.Errorf("company %s: %w", company, err)
		}

		for _, raw := range resp {
			content := raw.Text + " " + raw.Description
			createdAt := time.Now().UTC().Format(time.RFC3339)
			if raw.CreatedAt > 0 {
				createdAt = time.UnixMilli(raw.CreatedAt).UTC().Format(time.RFC3339)
			}
			sal := salary.Normalize(content)
			job := &jobs.Job{
				ID:           raw.ID,
				Title:        raw.Text,
				Company:      company,
				Remote:       remotePattern.MatchString(content),
				SalaryEURMin: sal.Min,
				SalaryEURMax: sal.Max,
				URL:          raw.HostedURL,
				Source:       jobs.SourceLever,
				CreatedAt:    createdAt,
				Description:  content,
			}
			if admit(job, l.cfg) {
				found.Items = append(found.Items, job)
			}
		}
	}
	return found, nil
}
