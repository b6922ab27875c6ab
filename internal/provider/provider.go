// Package provider implements the source adapters. Every adapter maps a
// provider payload into canonical postings and applies the shared
// ingestion gates before handing anything to the pipeline.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
)

const httpTimeout = 15 * time.Second

// remotePattern is the provider-side remote detection used by the board
// APIs that list on-site and remote roles together.
var remotePattern = regexp.MustCompile(`(?i)remote|anywhere|distributed`)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// getJSON fetches url and decodes the response body into v. Non-2xx
// responses are errors; the caller treats any error as zero postings.
func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}

// admit applies the full ingestion gate shared by the board providers:
// the posting must be remote and pass the geo, region, and keyword
// policies. The salary floor is never gated here; it only feeds the
// scorer as a penalty.
func admit(j *jobs.Job, cfg policy.Config) bool {
	return j.Remote && policy.Admit(j.SearchText(), cfg)
}
