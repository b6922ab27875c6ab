package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobradar/jobradar/internal/policy"
)

const weWorkRemotelyFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Remote Programming Jobs</title>
<link>https://weworkremotely.example</link>
<description>listings</description>
<item>
  <title>Acme: Senior TypeScript Engineer</title>
  <link>https://weworkremotely.example/jobs/1</link>
  <description>US only. TypeScript services. Salary $70,000.</description>
  <pubDate>Mon, 01 Apr 2024 10:00:00 +0000</pubDate>
</item>
<item>
  <title>Globex: Rust Engineer</title>
  <link>https://weworkremotely.example/jobs/2</link>
  <description>Systems programming in Rust.</description>
  <pubDate>Mon, 01 Apr 2024 10:00:00 +0000</pubDate>
</item>
<item>
  <title>Initech: TypeScript Developer</title>
  <link>https://weworkremotely.example/jobs/3</link>
  <description>Must be based in Germany.</description>
  <pubDate>Mon, 01 Apr 2024 10:00:00 +0000</pubDate>
</item>
</channel>
</rss>`

func TestWeWorkRemotelyFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(weWorkRemotelyFixture))
	}))
	defer server.Close()

	wwr := NewWeWorkRemotely(policy.Config{
		Keywords:         []string{"typescript"},
		PreferredCountry: "spain",
	})
	wwr.FeedURL = server.URL

	found, err := wwr.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Item 2 has no keyword match, item 3 names another country. Item 1
	// says "US only", which only the geo policy would reject; the feed
	// adapter applies region and keyword gates alone, so it survives.
	if found.Len() != 1 {
		t.Fatalf("expected 1 admitted posting, got %d", found.Len())
	}

	job := found.Items[0]
	if job.URL != "https://weworkremotely.example/jobs/1" {
		t.Errorf("unexpected url %q", job.URL)
	}
	if job.Company != "Acme" {
		t.Errorf("company must come from the title before the colon, got %q", job.Company)
	}
	if !job.Remote {
		t.Error("feed listings are remote by construction")
	}
	if job.CreatedAt != "2024-04-01T10:00:00Z" {
		t.Errorf("pubDate must normalize to RFC3339 UTC, got %q", job.CreatedAt)
	}
	if job.SalaryEURMin == nil || *job.SalaryEURMin != 64400 {
		t.Errorf("expected salary min 64400, got %v", job.SalaryEURMin)
	}
}

func TestWeWorkRemotelyFetchBadFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer server.Close()

	wwr := NewWeWorkRemotely(policy.Config{Keywords: []string{"typescript"}})
	wwr.FeedURL = server.URL

	if _, err := wwr.Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for an unparseable feed")
	}
}
