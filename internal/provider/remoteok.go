package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
	"github.com/jobradar/jobradar/internal/salary"
)

const remoteOKURL = "https://remoteok.com/api"

// RemoteOK fetches the remoteok.com API. Every real posting on the
// board is remote by construction.
type RemoteOK struct {
	URL string

	cfg    policy.Config
	client *http.Client
}

func NewRemoteOK(cfg policy.Config) *RemoteOK {
	return &RemoteOK{
		URL:    remoteOKURL,
		cfg:    cfg,
		client: newHTTPClient(),
	}
}

func (r *RemoteOK) Name() string { return string(jobs.SourceRemoteOK) }

type remoteOKJob struct {
	ID          string   `json:"id"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	URL         string   `json:"url"`
	ApplyURL    string   `json:"apply_url"`
	Date        string   `json:"date"`
}

func (r *RemoteOK) Fetch(ctx context.Context) (*jobs.Jobs, error) {
	// The first array element is a legal notice with a different shape,
	// so the payload is decoded loosely first and mapped per item.
	var items []map[string]any
	if err := getJSON(ctx, r.client, r.URL, &items); err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}

	var resp []remoteOKJob
	cfg := &mapstructure.DecoderConfig{
		Result:           &resp,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("remoteok decoder: %w", err)
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("remoteok decode: %w", err)
	}

	found := &jobs.Jobs{}
	for _, raw := range resp {
		if raw.ID == "" || raw.Position == "" {
			continue
		}
		id := raw.ID

		content := strings.Join([]string{raw.Position, strings.Join(raw.Tags, " "), raw.Description, raw.Location}, " ")
		salaryText := raw.Salary
		if salaryText == "" {
			salaryText = content
		}
		sal := salary.Normalize(salaryText)

		company := raw.Company
		if company == "" {
			company = "RemoteOK"
		}
		url := raw.URL
		if url == "" {
			url = raw.ApplyURL
		}
		createdAt := raw.Date
		if createdAt == "" {
			createdAt = time.Now().UTC().Format(time.RFC3339)
		}

		job := &jobs.Job{
			ID:           id,
			Title:        raw.Position,
			Company:      company,
			Remote:       true,
			SalaryEURMin: sal.Min,
			SalaryEURMax: sal.Max,
			URL:          url,
			Source:       jobs.SourceRemoteOK,
			CreatedAt:    createdAt,
			Description:  content,
		}
		if policy.Admit(job.SearchText(), r.cfg) {
			found.Items = append(found.Items, job)
		}
	}
	return found, nil
}
