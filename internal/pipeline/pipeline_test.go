package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
)

type fakeProvider struct {
	name  string
	items []*jobs.Job
	err   error
	delay time.Duration
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context) (*jobs.Jobs, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &jobs.Jobs{Items: f.items}, nil
}

func testConfig() policy.Config {
	return policy.Config{
		Keywords:     []string{"typescript"},
		MinSalaryEUR: 50000,
	}
}

func remoteJob(id, url string) *jobs.Job {
	return &jobs.Job{
		ID:          id,
		Title:       "TypeScript Engineer",
		Description: "typescript services",
		Remote:      true,
		URL:         url,
		Source:      jobs.SourceLever,
	}
}

func TestPipelineRunScoresAndRanks(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "one", items: []*jobs.Job{remoteJob("a", "https://x/a")}},
		&fakeProvider{name: "two", items: []*jobs.Job{
			{ID: "b", Title: "On-site role", Remote: false, URL: "https://x/b", Source: jobs.SourceGreenhouse},
		}},
	}

	p := New(providers, testConfig(), zap.NewNop())
	got := p.Run(context.Background())

	if len(got) != 1 {
		t.Fatalf("expected 1 shortlisted posting, got %d", len(got))
	}
	if got[0].Job.ID != "a" {
		t.Errorf("expected posting a, got %s", got[0].Job.ID)
	}
	// keyword +5 and word-bounded backend track +10
	if got[0].Score.Total != 15 {
		t.Errorf("expected score 15, got %d (%+v)", got[0].Score.Total, got[0].Score.Details)
	}
}

func TestPipelineSwallowsProviderFailure(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "broken", err: errors.New("boom")},
		&fakeProvider{name: "ok", items: []*jobs.Job{remoteJob("a", "https://x/a")}},
	}

	p := New(providers, testConfig(), zap.NewNop())
	got := p.Run(context.Background())

	if len(got) != 1 {
		t.Fatalf("a failing provider must not abort the batch, got %d postings", len(got))
	}
}

func TestPipelineTimesOutSlowProvider(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "slow", delay: time.Second, items: []*jobs.Job{remoteJob("slow", "https://x/slow")}},
		&fakeProvider{name: "fast", items: []*jobs.Job{remoteJob("fast", "https://x/fast")}},
	}

	p := New(providers, testConfig(), zap.NewNop())
	p.timeout = 10 * time.Millisecond

	got := p.Run(context.Background())

	if len(got) != 1 || got[0].Job.ID != "fast" {
		t.Fatalf("expected only the fast provider to contribute, got %v", got)
	}
}

func TestPipelinePreservesProviderOrderOnTies(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "first", items: []*jobs.Job{remoteJob("a", "https://x/a")}},
		&fakeProvider{name: "second", items: []*jobs.Job{remoteJob("b", "https://x/b")}},
	}

	p := New(providers, testConfig(), zap.NewNop())
	got := p.Run(context.Background())

	if len(got) != 2 || got[0].Job.ID != "a" || got[1].Job.ID != "b" {
		t.Fatalf("tied scores must keep provider order, got %v", ids(got))
	}
}
