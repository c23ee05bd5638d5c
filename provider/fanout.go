package provider

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/newscout/core"
)

// Fanout queries several engines concurrently and concatenates their
// results in fixed adapter order. No deduplication is attempted across
// engines. A bounded worker pool keeps upstream pressure predictable when
// many requests fan out at once.
type Fanout struct {
	providers []NewsProvider
	pool      *ants.Pool
	logger    *slog.Logger
}

var _ NewsProvider = (*Fanout)(nil)

// NewFanout creates a fan-out over the given providers.
// poolSize <= 0 sizes the pool to the number of providers.
func NewFanout(providers []NewsProvider, poolSize int) (*Fanout, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	if poolSize <= 0 {
		poolSize = len(providers)
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Fanout{
		providers: providers,
		pool:      pool,
		logger:    slog.Default().With("component", "provider-fanout"),
	}, nil
}

// Close releases the worker pool.
func (f *Fanout) Close() error {
	f.pool.Release()
	return nil
}

// News queries every provider concurrently. A failing provider contributes
// nothing; the fan-out itself only fails when no provider could be scheduled.
func (f *Fanout) News(ctx context.Context, query string, maxResults int) ([]core.NewsItem, error) {
	results := make([][]core.NewsItem, len(f.providers))

	var wg sync.WaitGroup
	for i, prov := range f.providers {
		i, prov := i, prov
		wg.Add(1)
		err := f.pool.Submit(func() {
			defer wg.Done()
			items, err := prov.News(ctx, query, maxResults)
			if err != nil {
				f.logger.Warn("fan-out provider failed", "index", i, "err", err)
				return
			}
			results[i] = items
		})
		if err != nil {
			wg.Done()
			f.logger.Warn("fan-out submission rejected", "index", i, "err", err)
		}
	}
	wg.Wait()

	merged := make([]core.NewsItem, 0, maxResults*len(f.providers))
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged, nil
}
