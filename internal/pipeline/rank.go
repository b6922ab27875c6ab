package pipeline

import (
	"sort"

	"github.com/jobradar/jobradar/internal/jobs"
)

// Rank drops non-positive scores, sorts by total descending (stable, so
// ties keep provider-fetch order), and deduplicates by URL with the
// first occurrence winning. Postings without a URL never survive.
func Rank(scored []*Scored) []*Scored {
	kept := make([]*Scored, 0, len(scored))
	for _, s := range scored {
		if s.Score.Total > 0 {
			kept = append(kept, s)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score.Total > kept[j].Score.Total
	})

	seen := make(map[string]struct{}, len(kept))
	shortlist := make([]*Scored, 0, len(kept))
	for _, s := range kept {
		if s.Job.URL == "" {
			continue
		}
		if _, ok := seen[s.Job.URL]; ok {
			continue
		}
		seen[s.Job.URL] = struct{}{}
		shortlist = append(shortlist, s)
	}

	return shortlist
}

// JobsOf strips the scores back to a plain collection for reporting and
// file dumps.
func JobsOf(scored []*Scored) *jobs.Jobs {
	out := &jobs.Jobs{}
	for _, s := range scored {
		out.Items = append(out.Items, s.Job)
	}
	return out
}
