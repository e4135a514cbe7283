// Package syncer implements the incremental fetch-and-merge cycle between
// the remote inventory feed and the local product store.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"catalog-sync/internal/catalog"
	"catalog-sync/internal/catalog/client"

	"github.com/prometheus/client_golang/prometheus"
)

type CatalogAPI interface {
	FetchPage(ctx context.Context, after string, limit int) (client.SyncPage, error)
	FetchStockStatus(ctx context.Context) (client.StockStatus, error)
	FetchPublished(ctx context.Context) ([]catalog.Product, error)
	FetchPending(ctx context.Context) ([]catalog.Product, error)
}

type Store interface {
	AddBatch(batch []catalog.Product) []catalog.Product
}

type CursorRepository interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, value string) error
}

type Publisher interface {
	Publish(ctx context.Context, event catalog.PipelineEvent) error
}

// Coordinator runs at most one fetch-and-merge cycle at a time. The cursor is
// advanced only after a batch has been merged into the store, so a failure
// between fetch and merge can never skip unmerged data.
type Coordinator struct {
	api       CatalogAPI
	store     Store
	cursors   CursorRepository
	publisher Publisher
	logger    *slog.Logger
	pageLimit int

	ingested    prometheus.Counter
	skippedRuns prometheus.Counter

	gate catalog.Gate

	mu     sync.Mutex
	cursor string
}

func New(
	api CatalogAPI,
	store Store,
	cursors CursorRepository,
	publisher Publisher,
	logger *slog.Logger,
	pageLimit int,
	ingested, skippedRuns prometheus.Counter,
) *Coordinator {
	return &Coordinator{
		api:         api,
		store:       store,
		cursors:     cursors,
		publisher:   publisher,
		logger:      logger,
		pageLimit:   pageLimit,
		ingested:    ingested,
		skippedRuns: skippedRuns,
	}
}

// Restore loads the persisted cursor into memory. Called once at startup,
// before the first Sync.
func (c *Coordinator) Restore(ctx context.Context) error {
	value, found, err := c.cursors.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore cursor: %w", err)
	}
	if found {
		c.setCursor(value)
	}
	return nil
}

// Sync fetches items created or updated after the current cursor and merges
// them into the store. A call that arrives while another sync is in flight is
// a silent no-op: it returns a stale outcome without touching the network.
func (c *Coordinator) Sync(ctx context.Context) (catalog.SyncOutcome, error) {
	if !c.gate.TryAcquire() {
		c.skippedRuns.Inc()
		return catalog.SyncOutcome{Stale: true}, nil
	}
	defer c.gate.Release()

	cursor := c.Cursor()

	page, err := c.api.FetchPage(ctx, cursor, c.pageLimit)
	if err != nil {
		return catalog.SyncOutcome{}, fmt.Errorf("fetch page: %w", err)
	}

	if cursor != "" && len(page.Products) == 0 {
		// Nothing new since the cursor; this is a success, not an error.
		return catalog.SyncOutcome{
			NewItems: []catalog.Product{},
			Cursor:   cursor,
			Synced:   page.Synced,
			Skipped:  page.Skipped,
		}, nil
	}

	items := page.Products
	if cursor == "" {
		// Full fetch: populate display quantities from a stock snapshot taken
		// now, so new items never show a stale or zero quantity first.
		items = c.mergeStockSnapshot(ctx, items)
	}

	added := c.store.AddBatch(items)

	// The server-reported timestamp is taken verbatim; computing the cursor
	// locally would open clock-skew gaps.
	if page.Timestamp != "" {
		c.setCursor(page.Timestamp)
		if err := c.cursors.Save(ctx, page.Timestamp); err != nil {
			// A stale persisted cursor only causes a re-fetch plus dedup on
			// the next restart, so this does not fail the sync.
			c.logger.Error("persist cursor failed", "cursor", page.Timestamp, "error", err)
		}
	}

	if len(added) > 0 {
		c.ingested.Add(float64(len(added)))
		c.emit(ctx, catalog.EventProductIngested, externalIDs(added))
	}

	c.logger.Info("sync completed",
		"new_items", len(added),
		"synced", page.Synced,
		"skipped", page.Skipped,
		"cursor", c.Cursor(),
	)

	return catalog.SyncOutcome{
		NewItems: added,
		Cursor:   c.Cursor(),
		Synced:   page.Synced,
		Skipped:  page.Skipped,
	}, nil
}

// LoadPublished seeds the store with the full published-product set, display
// quantities included. Used at startup before incremental syncs take over.
func (c *Coordinator) LoadPublished(ctx context.Context) (int, error) {
	products, err := c.api.FetchPublished(ctx)
	if err != nil {
		return 0, fmt.Errorf("load published products: %w", err)
	}

	for i := range products {
		products[i].PublishStatus = true
	}
	products = c.mergeStockSnapshot(ctx, products)

	added := c.store.AddBatch(products)
	return len(added), nil
}

// LoadPending seeds the store with the remote pending bucket.
func (c *Coordinator) LoadPending(ctx context.Context) (int, error) {
	products, err := c.api.FetchPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("load pending products: %w", err)
	}

	for i := range products {
		products[i].PublishStatus = false
	}

	added := c.store.AddBatch(products)
	return len(added), nil
}

// InFlight reports whether a sync is currently running.
func (c *Coordinator) InFlight() bool {
	return c.gate.InFlight()
}

// Cursor returns the current in-memory cursor; empty means full fetch.
func (c *Coordinator) Cursor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Coordinator) setCursor(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = value
}

func (c *Coordinator) mergeStockSnapshot(ctx context.Context, items []catalog.Product) []catalog.Product {
	status, err := c.api.FetchStockStatus(ctx)
	if err != nil {
		// Best effort: quantities catch up on the next reconciliation.
		c.logger.Error("fetch stock snapshot failed", "error", err)
		return items
	}

	quantities := make(map[string]int, len(status.Products))
	for _, entry := range status.Products {
		quantities[catalog.NormalizeExternalID(entry.ProductID)] = entry.DisplayQuantity
	}

	for i := range items {
		items[i].DisplayQuantity = quantities[catalog.NormalizeExternalID(items[i].ExternalID)]
	}
	return items
}

func (c *Coordinator) emit(ctx context.Context, eventType string, ids []string) {
	err := c.publisher.Publish(ctx, catalog.PipelineEvent{
		EventType:  eventType,
		ProductIDs: ids,
		Count:      len(ids),
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		c.logger.Error("publish pipeline event failed", "event_type", eventType, "error", err)
	}
}

func externalIDs(products []catalog.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ExternalID)
	}
	return ids
}
