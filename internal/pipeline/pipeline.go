// Package pipeline aggregates provider results, scores them, and
// produces the ranked, deduplicated shortlist.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/policy"
	"github.com/jobradar/jobradar/internal/scoring"
)

// DefaultFetchTimeout bounds a single provider fetch.
const DefaultFetchTimeout = 15 * time.Second

// Provider produces zero or more already-gated canonical postings. The
// pipeline never branches on the concrete source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (*jobs.Jobs, error)
}

// Scored pairs a posting with its score breakdown.
type Scored struct {
	Job   *jobs.Job
	Score scoring.Result
}

type Pipeline struct {
	providers []Provider
	cfg       policy.Config
	logger    *zap.Logger
	timeout   time.Duration
}

func New(providers []Provider, cfg policy.Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		providers: providers,
		cfg:       cfg,
		logger:    logger,
		timeout:   DefaultFetchTimeout,
	}
}

// Run fetches all providers in parallel, waits for every fetch to
// resolve, scores the merged list, and ranks it. A failed or timed-out
// provider is logged and contributes zero postings.
func (p *Pipeline) Run(ctx context.Context) []*Scored {
	results := make([]*jobs.Jobs, len(p.providers))

	g, gCtx := errgroup.WithContext(ctx)
	for i, provider := range p.providers {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gCtx, p.timeout)
			defer cancel()

			found, err := provider.Fetch(fetchCtx)
			if err != nil {
				p.logger.Warn("provider fetch failed",
					zap.String("provider", provider.Name()),
					zap.Error(err),
				)
				return nil
			}

			p.logger.Info("provider fetch complete",
				zap.String("provider", provider.Name()),
				zap.Int("postings", found.Len()),
			)
			results[i] = found
			return nil
		})
	}
	// Fetch errors are swallowed above, so Wait only acts as the
	// barrier before aggregation.
	_ = g.Wait()

	var scored []*Scored
	for _, found := range results {
		if found == nil {
			continue
		}
		for _, job := range found.Items {
			scored = append(scored, &Scored{Job: job, Score: scoring.Score(job, p.cfg)})
		}
	}

	ranked := Rank(scored)

	p.logger.Info("pipeline run complete",
		zap.Int("scored", len(scored)),
		zap.Int("shortlisted", len(ranked)),
	)

	return ranked
}
