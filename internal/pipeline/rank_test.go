package pipeline

import (
	"testing"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/scoring"
)

func scored(id, url string, source jobs.Source, total int) *Scored {
	return &Scored{
		Job:   &jobs.Job{ID: id, URL: url, Source: source},
		Score: scoring.Result{Total: total},
	}
}

func ids(list []*Scored) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Job.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankDropsNonPositiveScores(t *testing.T) {
	input := []*Scored{
		scored("a", "https://x/a", jobs.SourceLever, 10),
		scored("b", "https://x/b", jobs.SourceLever, 0),
		scored("c", "https://x/c", jobs.SourceLever, -100),
	}

	got := Rank(input)
	if !equal(ids(got), []string{"a"}) {
		t.Errorf("expected only positive scores to survive, got %v", ids(got))
	}
}

func TestRankSortsDescendingStable(t *testing.T) {
	input := []*Scored{
		scored("low", "https://x/low", jobs.SourceLever, 5),
		scored("tie1", "https://x/t1", jobs.SourceRemotive, 20),
		scored("high", "https://x/high", jobs.SourceAshby, 40),
		scored("tie2", "https://x/t2", jobs.SourceRemoteOK, 20),
	}

	got := Rank(input)
	want := []string{"high", "tie1", "tie2", "low"}
	if !equal(ids(got), want) {
		t.Errorf("Rank order = %v, want %v (ties keep input order)", ids(got), want)
	}
}

func TestRankDeduplicatesByURLFirstWins(t *testing.T) {
	// Same URL from two sources: the higher-scored one sorts first and
	// survives; the duplicate is dropped.
	input := []*Scored{
		scored("remotive-1", "https://job/1", jobs.SourceRemotive, 10),
		scored("remoteok-9", "https://job/1", jobs.SourceRemoteOK, 30),
	}

	got := Rank(input)
	if !equal(ids(got), []string{"remoteok-9"}) {
		t.Errorf("expected first occurrence after sorting to win, got %v", ids(got))
	}
}

func TestRankDropsEmptyURLs(t *testing.T) {
	input := []*Scored{
		scored("no-url", "", jobs.SourceLever, 50),
		scored("ok", "https://x/ok", jobs.SourceLever, 10),
	}

	got := Rank(input)
	if !equal(ids(got), []string{"ok"}) {
		t.Errorf("postings without URL must never survive, got %v", ids(got))
	}
}

func TestRankIsIdempotent(t *testing.T) {
	input := []*Scored{
		scored("a", "https://x/a", jobs.SourceLever, 15),
		scored("b", "https://x/b", jobs.SourceAshby, 25),
		scored("dup", "https://x/a", jobs.SourceRemotive, 5),
		scored("neg", "https://x/neg", jobs.SourceLever, -10),
	}

	once := Rank(input)
	twice := Rank(once)

	if !equal(ids(once), ids(twice)) {
		t.Errorf("Rank(Rank(xs)) = %v, want %v", ids(twice), ids(once))
	}
}
