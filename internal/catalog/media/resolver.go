// Package media annotates products with their media URL lists. Resolution is
// best effort and never gates the rest of the pipeline.
package media

import (
	"context"
	"log/slog"
	"sync"
)

type MediaAPI interface {
	FetchMedia(ctx context.Context, id string) ([]string, error)
}

type Resolver struct {
	api    MediaAPI
	logger *slog.Logger
}

func New(api MediaAPI, logger *slog.Logger) *Resolver {
	return &Resolver{api: api, logger: logger}
}

// Resolve fetches media URLs for each id concurrently. A failed id is logged
// and omitted from the result; the others are unaffected. The returned map is
// a snapshot with no ordering guarantee.
func (r *Resolver) Resolve(ctx context.Context, ids []string) map[string][]string {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = make(map[string][]string, len(ids))
	)

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			urls, err := r.api.FetchMedia(ctx, id)
			if err != nil {
				r.logger.Error("fetch media failed", "product_id", id, "error", err)
				return
			}

			mu.Lock()
			result[id] = urls
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return result
}
