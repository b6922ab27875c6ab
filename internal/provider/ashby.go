package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
	"github.com/jobradar/jobradar/internal/salary"
)

const ashbyBaseURL = "https://jobs.ashbyhq.com/api/non-user-ats-boards"

// Ashby fetches postings from the public Ashby board API. The board
// payload carries no single description field, so the raw job object is
// used as the text the policies and the normalizer run over.
type Ashby struct {
	Boards  []string
	BaseURL string

	cfg    policy.Config
	client *http.Client
}

func NewAshby(boards []string, cfg policy.Config) *Ashby {
	return &Ashby{
		Boards:  boards,
		BaseURL: ashbyBaseURL,
		cfg:     cfg,
		client:  newHTTPClient(),
	}
}

func (a *Ashby) Name() string { return string(jobs.SourceAshby) }

type ashbyResponse struct {
	Jobs []json.RawMessage `json:"jobs"`
}

type ashbyJob struct {
	JobID     string `json:"jobId"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

func (a *Ashby) Fetch(ctx context.Context) (*jobs.Jobs, error) {
	found := &jobs.Jobs{}
	for _, board := range a.Boards {
		url := fmt.Sprintf("%s/%s/jobs", a.BaseURL, board)

		var resp ashbyResponse
		if err := getJSON(ctx, a.client, url, &resp); err != nil {
			return nil, fmt.Errorf("board %s: %w", board, err)
		}

		for _, raw := range resp.Jobs {
			var parsed ashbyJob
			if err := json.Unmarshal(raw, &parsed); err != nil {
				continue
			}

			full := string(raw)
			createdAt := parsed.CreatedAt
			if t, err := time.Parse(time.RFC3339, parsed.CreatedAt); err == nil {
				createdAt = t.UTC().Format(time.RFC3339)
			}
			sal := salary.Normalize(full)
			job := &jobs.Job{
				ID:           parsed.JobID,
				Title:        parsed.Title,
				Company:      board,
				Remote:       remotePattern.MatchString(full),
				SalaryEURMin: sal.Min,
				SalaryEURMax: sal.Max,
				URL:          fmt.Sprintf("https://jobs.ashbyhq.com/%s/%s", board, parsed.JobID),
				Source:       jobs.SourceAshby,
				CreatedAt:    createdAt,
				Description:  full,
			}
			if admit(job, a.cfg) {
				found.Items = append(found.Items, job)
			}
		}
	}
	return found, nil
}
