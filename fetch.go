package bankfeed

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/bankfeed/date"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Source is one external financial provider integration. Implementations
// fetch their native records for the window and return fully normalized
// Transactions. A source must serialize or throttle its own calls (its rate
// budget binds per source, not globally), and is expected to absorb unit
// failures into partial results wherever best-effort aggregation applies.
type Source interface {
	Name() string
	Transactions(ctx context.Context, window date.Range) ([]Transaction, error)
}

// SourceStatus records the outcome of one source's fetch, so that a source
// that timed out is distinguishable from one that errored outright or that
// contributed data.
type SourceStatus struct {
	Name     string
	Count    int
	Err      error
	TimedOut bool
}

// fetchConcurrency bounds the fan-out. Tasks are I/O bound and sources are
// independent, so a small limit is enough.
const fetchConcurrency = 4

// FetchAll fetches the window from every source concurrently and merges the
// results into a single list sorted by timestamp descending. Each source
// collects into its own slot and the merge happens after all fetches complete
// (collect-then-merge: no shared mutable sink). Sources that fail contribute
// nothing; an error is returned only when every source failed.
func FetchAll(ctx context.Context, window date.Range, sources ...Source) ([]Transaction, []SourceStatus, error) {
	results := make([][]Transaction, len(sources))
	statuses := make([]SourceStatus, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, src := range sources {
		g.Go(func() error {
			txs, err := src.Transactions(ctx, window)
			statuses[i] = SourceStatus{
				Name:     src.Name(),
				Count:    len(txs),
				Err:      err,
				TimedOut: errors.Is(err, context.DeadlineExceeded),
			}
			if err != nil {
				log.Warn().Str("source", src.Name()).Err(err).Msg("source fetch failed, continuing with remaining sources")
				return nil // absorbed: best-effort aggregation
			}
			results[i] = txs
			return nil
		})
	}
	g.Wait() // errors are absorbed per source, Wait only synchronizes

	var merged []Transaction
	failed := 0
	for i := range sources {
		merged = append(merged, results[i]...)
		if statuses[i].Err != nil {
			failed++
		}
	}
	if len(sources) > 0 && failed == len(sources) {
		return nil, statuses, fmt.Errorf("all %d sources failed, first error: %w", failed, statuses[0].Err)
	}

	SortByTimeDesc(merged)
	return merged, statuses, nil
}
