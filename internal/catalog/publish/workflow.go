// Package publish moves products between the pending and published buckets,
// keeping the local view and the remote API in step.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"catalog-sync/internal/catalog"

	"github.com/prometheus/client_golang/prometheus"
)

type PublishAPI interface {
	Publish(ctx context.Context, ids []string, description string) error
	UpdateStatus(ctx context.Context, id string) error
}

type Store interface {
	GetByID(id string) (catalog.Product, bool)
	MarkPublished(ids []string) []string
	MarkUnpublished(ids []string) []string
}

type Publisher interface {
	Publish(ctx context.Context, event catalog.PipelineEvent) error
}

// Workflow serializes publish batches: while one batch is outstanding an
// overlapping call gets ErrPublishInFlight instead of interleaving. The local
// buckets only move after the remote call succeeds, so a failed publish
// leaves the pending bucket untouched.
type Workflow struct {
	api       PublishAPI
	store     Store
	publisher Publisher
	logger    *slog.Logger
	published prometheus.Counter

	gate catalog.Gate
}

func New(api PublishAPI, store Store, publisher Publisher, logger *slog.Logger, published prometheus.Counter) *Workflow {
	return &Workflow{
		api:       api,
		store:     store,
		publisher: publisher,
		logger:    logger,
		published: published,
	}
}

// Publish promotes the given local product ids from pending to published.
// Ids that are unknown or already published are ignored and excluded from
// the count.
func (w *Workflow) Publish(ctx context.Context, ids []string, description string) (catalog.PublishResult, error) {
	if len(ids) == 0 {
		return catalog.PublishResult{}, catalog.ErrNoProductIDs
	}
	if !w.gate.TryAcquire() {
		return catalog.PublishResult{}, catalog.ErrPublishInFlight
	}
	defer w.gate.Release()

	pending := make([]string, 0, len(ids))
	for _, id := range ids {
		p, ok := w.store.GetByID(id)
		if !ok || p.PublishStatus {
			continue
		}
		pending = append(pending, id)
	}
	if len(pending) == 0 {
		return catalog.PublishResult{}, nil
	}

	if err := w.api.Publish(ctx, pending, description); err != nil {
		return catalog.PublishResult{}, fmt.Errorf("publish batch: %w", err)
	}

	moved := w.store.MarkPublished(pending)
	w.published.Add(float64(len(moved)))
	w.emit(ctx, catalog.EventProductPublished, moved)

	w.logger.Info("products published", "requested", len(ids), "published", len(moved))
	return catalog.PublishResult{PublishedCount: len(moved)}, nil
}

// Unpublish is the structural inverse of Publish: it flips publish status
// back to pending without deleting anything. The remote toggle is per id, so
// only ids whose remote call succeeded are moved locally.
func (w *Workflow) Unpublish(ctx context.Context, ids []string) (catalog.PublishResult, error) {
	if len(ids) == 0 {
		return catalog.PublishResult{}, catalog.ErrNoProductIDs
	}

	toggled := make([]string, 0, len(ids))
	for _, id := range ids {
		p, ok := w.store.GetByID(id)
		if !ok || !p.PublishStatus {
			continue
		}
		if err := w.api.UpdateStatus(ctx, id); err != nil {
			w.logger.Error("unpublish toggle failed", "product_id", id, "error", err)
			continue
		}
		toggled = append(toggled, id)
	}

	moved := w.store.MarkUnpublished(toggled)
	if len(moved) > 0 {
		w.emit(ctx, catalog.EventProductUnpublished, moved)
	}

	return catalog.PublishResult{PublishedCount: len(moved)}, nil
}

// InFlight is the signal callers must respect before submitting another
// batch, typically to disable a publish button while one is outstanding.
func (w *Workflow) InFlight() bool {
	return w.gate.InFlight()
}

func (w *Workflow) emit(ctx context.Context, eventType string, ids []string) {
	err := w.publisher.Publish(ctx, catalog.PipelineEvent{
		EventType:  eventType,
		ProductIDs: ids,
		Count:      len(ids),
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		w.logger.Error("publish pipeline event failed", "event_type", eventType, "error", err)
	}
}
