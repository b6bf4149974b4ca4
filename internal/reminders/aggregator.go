package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Aggregator fans out to the registered fetchers and joins all results.
type Aggregator struct {
	fetchers map[Source]Fetcher
	logger   *slog.Logger
}

// NewAggregator creates an aggregator over the given fetchers.
func NewAggregator(logger *slog.Logger, fetchers ...Fetcher) *Aggregator {
	m := make(map[Source]Fetcher, len(fetchers))
	for _, f := range fetchers {
		m[f.Source()] = f
	}
	return &Aggregator{fetchers: m, logger: logger}
}

// FetchAll fetches every requested source concurrently and waits for all of
// them. Each branch runs under its own timeout and returns its own slice;
// results are merged only after every branch has resolved, so no state is
// shared between branches. Per-source failures are captured in the error
// map and logged as warnings.
func (a *Aggregator) FetchAll(ctx context.Context, sources []Source) (map[Source][]Item, map[Source]error) {
	type result struct {
		src   Source
		items []Item
		err   error
	}

	slots := make([]result, len(sources))
	g, gCtx := errgroup.WithContext(ctx)

	for i, src := range sources {
		f, ok := a.fetchers[src]
		if !ok {
			slots[i] = result{src: src, err: fmt.Errorf("reminders: no fetcher registered for %q", src)}
			continue
		}
		i, src, f := i, src, f
		g.Go(func() error {
			fCtx, cancel := context.WithTimeout(gCtx, f.Timeout())
			defer cancel()

			start := time.Now()
			items, err := f.Fetch(fCtx)
			slots[i] = result{src: src, items: items, err: err}
			if err == nil {
				a.logger.Debug("reminders: fetched",
					slog.String("source", string(src)),
					slog.Int("items", len(items)),
					slog.Duration("elapsed", time.Since(start)))
			}
			// A failing source must not abort the others; errors are
			// captured in the slot instead of returned.
			return nil
		})
	}
	_ = g.Wait()

	items := make(map[Source][]Item, len(sources))
	errs := make(map[Source]error)
	for _, r := range slots {
		if r.src == "" {
			continue
		}
		if r.err != nil {
			errs[r.src] = r.err
			a.logger.Warn("reminders: source failed",
				slog.String("source", string(r.src)),
				slog.String("error", r.err.Error()))
			continue
		}
		items[r.src] = r.items
	}
	return items, errs
}
