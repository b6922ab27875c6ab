package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
	"github.com/jobradar/jobradar/internal/salary"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// Greenhouse fetches postings from the public Greenhouse board API for
// a configured list of board tokens.
type Greenhouse struct {
	Boards  []string
	BaseURL string

	cfg    policy.Config
	client *http.Client
}

func NewGreenhouse(boards []string, cfg policy.Config) *Greenhouse {
	return &Greenhouse{
		Boards:  boards,
		BaseURL: greenhouseBaseURL,
		cfg:     cfg,
		client:  newHTTPClient(),
	}
}

func (g *Greenhouse) Name() string { return string(jobs.SourceGreenhouse) }

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	AbsoluteURL string `json:"absolute_url"`
	UpdatedAt   string `json:"updated_at"`
}

func (g *Greenhouse) Fetch(ctx context.Context) (*jobs.Jobs, error) {
	found := &jobs.Jobs{}
	for _, board := range g.Boards {
		url := fmt.Sprintf("%s/%s/jobs?content=true", g.BaseURL, board)

		var resp greenhouseResponse
		if err := getJSON(ctx, g.client, url, &resp); err != nil {
			return nil, fmt.Errorf("board %s: %w", board, err)
		}

		for _, raw := range resp.Jobs {
			remoteSource := raw.Location.Name
			if remoteSource == "" {
				remoteSource = raw.Content
			}
			sal := salary.Normalize(raw.Content)
			job := &jobs.Job{
				ID:           fmt.Sprintf("%d", raw.ID),
				Title:        raw.Title,
				Company:      board,
				Location:     raw.Location.Name,
				Remote:       remotePattern.MatchString(remoteSource),
				SalaryEURMin: sal.Min,
				SalaryEURMax: sal.Max,
				URL:          raw.AbsoluteURL,
				Source:       jobs.SourceGreenhouse,
				CreatedAt:    raw.UpdatedAt,
				Description:  raw.Content,
			}
			if admit(job, g.cfg) {
				found.Items = append(found.Items, job)
			}
		}
	}
	return found, nil
}
