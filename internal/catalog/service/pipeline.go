// Package service assembles the pipeline components into a single per-session
// object. All operations are pull based: the owning layer (HTTP handlers, the
// background ticker) decides when to call them.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"catalog-sync/internal/catalog"
	"catalog-sync/internal/catalog/media"
	"catalog-sync/internal/catalog/publish"
	"catalog-sync/internal/catalog/stock"
	"catalog-sync/internal/catalog/store"
	"catalog-sync/internal/catalog/syncer"
)

type Pipeline struct {
	coordinator *syncer.Coordinator
	reconciler  *stock.Reconciler
	workflow    *publish.Workflow
	resolver    *media.Resolver
	products    *store.Store
	logger      *slog.Logger
}

func NewPipeline(
	coordinator *syncer.Coordinator,
	reconciler *stock.Reconciler,
	workflow *publish.Workflow,
	resolver *media.Resolver,
	products *store.Store,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		coordinator: coordinator,
		reconciler:  reconciler,
		workflow:    workflow,
		resolver:    resolver,
		products:    products,
		logger:      logger,
	}
}

// Bootstrap restores the persisted cursor and seeds the store from the remote
// published and pending buckets. Seed failures are logged, not fatal: the
// store fills up on later syncs either way.
func (p *Pipeline) Bootstrap(ctx context.Context) error {
	if err := p.coordinator.Restore(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	if n, err := p.coordinator.LoadPublished(ctx); err != nil {
		p.logger.Error("seed published products failed", "error", err)
	} else {
		p.logger.Info("seeded published products", "count", n)
	}

	if n, err := p.coordinator.LoadPending(ctx); err != nil {
		p.logger.Error("seed pending products failed", "error", err)
	} else {
		p.logger.Info("seeded pending products", "count", n)
	}

	return nil
}

func (p *Pipeline) Sync(ctx context.Context) (catalog.SyncOutcome, error) {
	return p.coordinator.Sync(ctx)
}

func (p *Pipeline) Published(_ context.Context) []catalog.Product {
	return p.products.Published()
}

func (p *Pipeline) Pending(_ context.Context) []catalog.Product {
	return p.products.Pending()
}

func (p *Pipeline) PendingCount(_ context.Context) int {
	return p.products.PendingCount()
}

func (p *Pipeline) StockDrift(ctx context.Context) ([]catalog.StockRecord, error) {
	drift, err := p.reconciler.ComputeDrift(ctx)
	if err != nil {
		return nil, err
	}
	return drift.Records, nil
}

func (p *Pipeline) ApplyStockSync(ctx context.Context, ids []string) (catalog.StockSyncSummary, error) {
	return p.reconciler.ApplySync(ctx, ids)
}

func (p *Pipeline) SyncAllStock(ctx context.Context) (catalog.StockSyncSummary, error) {
	return p.reconciler.SyncAll(ctx)
}

func (p *Pipeline) Publish(ctx context.Context, ids []string, description string) (catalog.PublishResult, error) {
	return p.workflow.Publish(ctx, ids, description)
}

func (p *Pipeline) Unpublish(ctx context.Context, ids []string) (catalog.PublishResult, error) {
	return p.workflow.Unpublish(ctx, ids)
}

func (p *Pipeline) ResolveMedia(ctx context.Context, ids []string) map[string][]string {
	return p.resolver.Resolve(ctx, ids)
}

func (p *Pipeline) SyncInFlight() bool {
	return p.coordinator.InFlight()
}

func (p *Pipeline) PublishInFlight() bool {
	return p.workflow.InFlight()
}

func (p *Pipeline) Cursor() string {
	return p.coordinator.Cursor()
}
