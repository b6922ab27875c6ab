// Package scoring implements the fixed rule-based relevance scorer. The
// rules fire in a fixed order and every firing rule appends one entry to
// the breakdown, so the output is reproducible and explainable.
package scoring

import (
	"fmt"
	"regexp"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
)

var (
	mobileTrackPattern  = regexp.MustCompile(`react\s*native|titanium`)
	backendTrackPattern = regexp.MustCompile(`(^|\W)(node|express|typescript|php)(\W|$)`)
	seniorityPattern    = regexp.MustCompile(`senior|staff|principal`)
	euTimezonePattern   = regexp.MustCompile(`europe|eu timezone|emea|cet|cest|utc\+?\s*[0-2]`)
	worldwidePattern    = regexp.MustCompile(`worldwide|global|anywhere`)
)

// Detail is one (reason, delta) contribution in evaluation order.
type Detail struct {
	Reason string `json:"reason"`
	Delta  int    `json:"delta"`
}

// Result is the scored outcome. Total may be negative; consumers treat
// total <= 0 as excluded but keep the breakdown for audit.
type Result struct {
	Total   int      `json:"total"`
	Details []Detail `json:"details"`
}

// Score evaluates every rule against the posting and accumulates the
// deltas. No rule is exclusive with another.
func Score(job *jobs.Job, cfg policy.Config) Result {
	var details []Detail
	add := func(reason string, delta int) {
		details = append(details, Detail{Reason: reason, Delta: delta})
	}

	text := job.SearchText()

	// Hard penalties.
	if !job.Remote {
		add("not remote", -100)
	}
	if job.SalaryEURMin != nil && *job.SalaryEURMin < cfg.MinSalaryEUR {
		add(fmt.Sprintf("salary below €%d floor", cfg.MinSalaryEUR), -50)
	}

	// Stack match: every keyword hit counts independently.
	for _, k := range cfg.Keywords {
		if policy.TextMatches(text, []string{k}) {
			add(fmt.Sprintf("keyword match: %q", k), +5)
		}
	}

	// Tracks.
	if mobileTrackPattern.MatchString(text) {
		add("mobile track (React Native/Titanium)", +10)
	}
	if backendTrackPattern.MatchString(text) {
		add("backend track (Node/TS/PHP)", +10)
	}

	// Seniority bonus applies only when no salary figure is published.
	if job.SalaryEURMin == nil && seniorityPattern.MatchString(text) {
		add("senior role without published salary", +8)
	}

	if euTimezonePattern.MatchString(text) || job.TimezoneNote != "" {
		add("EU timezone compatible", +5)
	}

	if worldwidePattern.MatchString(text) {
		add("worldwide/global/anywhere", +3)
	}

	total := 0
	for _, d := range details {
		total += d.Delta
	}

	return Result{Total: total, Details: details}
}

// TopReason returns the highest-delta contribution, used by the
// cover-note generator. Ties keep the earlier entry.
func (r Result) TopReason() string {
	if len(r.Details) == 0 {
		return ""
	}
	top := r.Details[0]
	for _, d := range r.Details[1:] {
		if d.Delta > top.Delta {
			top = d
		}
	}
	return top.Reason
}
