package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
	"github.com/jobradar/jobradar/internal/salary"
)

const weWorkRemotelyFeedURL = "https://weworkremotely.com/categories/remote-programming-jobs.rss"

// WeWorkRemotely parses the WWR programming RSS feed. Feed items carry
// no structured location, so only the region and keyword gates apply;
// every listing is remote by construction.
type WeWorkRemotely struct {
	FeedURL string

	cfg    policy.Config
	parser *gofeed.Parser
}

func NewWeWorkRemotely(cfg policy.Config) *WeWorkRemotely {
	parser := gofeed.NewParser()
	parser.Client = newHTTPClient()
	return &WeWorkRemotely{
		FeedURL: weWorkRemotelyFeedURL,
		cfg:     cfg,
		parser:  parser,
	}
}

func (w *WeWorkRemotely) Name() string { return string(jobs.SourceWeWorkRemotely) }

func (w *WeWorkRemotely) Fetch(ctx context.Context) (*jobs.Jobs, error) {
	feed, err := w.parser.ParseURLWithContext(w.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("weworkremotely: %w", err)
	}

	found := &jobs.Jobs{}
	for _, item := range feed.Items {
		// WWR titles look like "Company: Role".
		company := strings.TrimSpace(strings.SplitN(item.Title, ":", 2)[0])

		createdAt := item.Published
		if item.PublishedParsed != nil {
			createdAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		}

		sal := salary.Normalize(item.Title + " " + item.Description)
		job := &jobs.Job{
			ID:           item.Link,
			Title:        item.Title,
			Company:      company,
			Remote:       true,
			SalaryEURMin: sal.Min,
			SalaryEURMax: sal.Max,
			URL:          item.Link,
			Source:       jobs.SourceWeWorkRemotely,
			CreatedAt:    createdAt,
			Description:  item.Description,
		}

		text := job.SearchText()
		if policy.RegionAllowed(text, w.cfg.AllowedLocationHints, w.cfg.BlockedLocationHints, w.cfg.PreferredCountry) &&
			policy.TextMatches(text, w.cfg.Keywords) {
			found.Items = append(found.Items, job)
		}
	}
	return found, nil
}
