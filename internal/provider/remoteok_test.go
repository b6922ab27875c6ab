package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobradar/jobradar/internal/policy"
)

// The first element of the real payload is a legal notice without id or
// position; numeric ids appear in older postings.
const remoteOKFixture = `[
  {"legal": "API terms apply."},
  {
    "id": 555,
    "position": "TypeScript Developer",
    "company": "Globex",
    "tags": ["typescript", "node"],
    "description": "Build services, work from anywhere.",
    "location": "Worldwide",
    "salary": "$60,000 - $90,000",
    "url": "https://remoteok.com/remote-jobs/555",
    "date": "2024-05-01T10:00:00Z"
  },
  {
    "id": "556",
    "position": "Sales Lead",
    "company": "Globex",
    "description": "Worldwide sales role.",
    "url": "https://remoteok.com/remote-jobs/556"
  }
]`

func TestRemoteOKFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(remoteOKFixture))
	}))
	defer server.Close()

	r := NewRemoteOK(policy.Config{Keywords: []string{"typescript"}})
	r.URL = server.URL

	found, err := r.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The legal notice is skipped and 556 has no keyword match.
	if found.Len() != 1 {
		t.Fatalf("expected 1 admitted posting, got %d", found.Len())
	}

	job := found.Items[0]
	if job.ID != "555" {
		t.Errorf("numeric id must decode to string, got %q", job.ID)
	}
	if !job.Remote {
		t.Error("board postings are remote by construction")
	}
	if job.SalaryEURMin == nil || *job.SalaryEURMin != 55200 {
		t.Errorf("expected salary min 55200, got %v", job.SalaryEURMin)
	}
	if job.SalaryEURMax == nil || *job.SalaryEURMax != 82800 {
		t.Errorf("expected salary max 82800, got %v", job.SalaryEURMax)
	}
	if job.URL != "https://remoteok.com/remote-jobs/555" {
		t.Errorf("unexpected url %q", job.URL)
	}
}
