// Package stock detects and repairs drift between the canonical stock ledger
// and the quantities the storefront displays.
package stock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"catalog-sync/internal/catalog"
	"catalog-sync/internal/catalog/client"

	"github.com/prometheus/client_golang/prometheus"
)

type LedgerAPI interface {
	FetchStockStatus(ctx context.Context) (client.StockStatus, error)
	SyncStock(ctx context.Context, ids []string) (client.StockSyncResult, error)
}

type Store interface {
	Get(externalID string) (catalog.Product, bool)
	SetDisplayQuantity(externalID string, qty int, at time.Time) bool
	LastSyncAt(externalID string) (time.Time, bool)
}

type Publisher interface {
	Publish(ctx context.Context, event catalog.PipelineEvent) error
}

// DriftReport is the set of products whose ledger quantity disagrees with the
// displayed one. Every drifting id starts selected; callers deselect before
// applying if they want a partial sync.
type DriftReport struct {
	Records  []catalog.StockRecord
	selected map[string]bool
}

func newDriftReport(records []catalog.StockRecord) DriftReport {
	selected := make(map[string]bool, len(records))
	for _, r := range records {
		selected[r.ExternalID] = true
	}
	return DriftReport{Records: records, selected: selected}
}

func (d *DriftReport) Deselect(externalID string) {
	delete(d.selected, catalog.NormalizeExternalID(externalID))
}

// SelectedIDs returns the selected external ids in record order.
func (d *DriftReport) SelectedIDs() []string {
	ids := make([]string, 0, len(d.selected))
	for _, r := range d.Records {
		if d.selected[r.ExternalID] {
			ids = append(ids, r.ExternalID)
		}
	}
	return ids
}

// Reconciler has no internal mutex: effects are keyed by external id and the
// remote ledger is the source of truth for per-id success, so concurrent
// calls degrade to last-writer-wins per id.
type Reconciler struct {
	ledger    LedgerAPI
	store     Store
	publisher Publisher
	logger    *slog.Logger
	synced    prometheus.Counter
}

func New(ledger LedgerAPI, store Store, publisher Publisher, logger *slog.Logger, synced prometheus.Counter) *Reconciler {
	return &Reconciler{
		ledger:    ledger,
		store:     store,
		publisher: publisher,
		logger:    logger,
		synced:    synced,
	}
}

// ComputeDrift joins the ledger against the local store by external id and
// returns only the records that need a corrective sync. Difference is signed:
// positive means the ledger holds more than the storefront shows.
func (r *Reconciler) ComputeDrift(ctx context.Context) (DriftReport, error) {
	status, err := r.ledger.FetchStockStatus(ctx)
	if err != nil {
		return DriftReport{}, fmt.Errorf("compute drift: %w", err)
	}

	records := make([]catalog.StockRecord, 0, len(status.Products))
	for _, entry := range status.Products {
		extID := catalog.NormalizeExternalID(entry.ProductID)
		product, known := r.store.Get(extID)
		if !known {
			continue
		}

		difference := entry.CurrentQuantity - product.DisplayQuantity
		if difference == 0 {
			continue
		}

		record := catalog.StockRecord{
			ExternalID:      extID,
			CurrentQuantity: entry.CurrentQuantity,
			DisplayQuantity: product.DisplayQuantity,
			Difference:      difference,
			NeedsSync:       true,
			LastSyncAt:      entry.LastSyncAt,
		}
		if at, ok := r.store.LastSyncAt(extID); ok {
			record.LastSyncAt = &at
		}
		records = append(records, record)
	}

	return newDriftReport(records), nil
}

// ApplySync sends the selected ids to the remote reconciliation endpoint and
// commits the display quantity for every id the server reports successful.
// Failed ids are left untouched and stay flagged for a later retry.
func (r *Reconciler) ApplySync(ctx context.Context, ids []string) (catalog.StockSyncSummary, error) {
	if len(ids) == 0 {
		return catalog.StockSyncSummary{}, catalog.ErrNoProductIDs
	}

	result, err := r.ledger.SyncStock(ctx, ids)
	if err != nil {
		return catalog.StockSyncSummary{}, fmt.Errorf("apply stock sync: %w", err)
	}

	now := time.Now().UTC()
	committed := make([]string, 0, len(result.Results))
	for _, item := range result.Results {
		if !item.Success {
			continue
		}
		if r.store.SetDisplayQuantity(item.ProductID, item.SyncedQuantity, now) {
			committed = append(committed, catalog.NormalizeExternalID(item.ProductID))
		}
	}

	if len(committed) > 0 {
		r.synced.Add(float64(len(committed)))
		r.emit(ctx, committed)
	}

	r.logger.Info("stock sync applied",
		"requested", len(ids),
		"success_count", result.Summary.SuccessCount,
		"failure_count", result.Summary.FailureCount,
	)

	return result.Summary, nil
}

// SyncAll applies a sync over the full drift set computed at call time.
func (r *Reconciler) SyncAll(ctx context.Context) (catalog.StockSyncSummary, error) {
	drift, err := r.ComputeDrift(ctx)
	if err != nil {
		return catalog.StockSyncSummary{}, err
	}

	ids := drift.SelectedIDs()
	if len(ids) == 0 {
		return catalog.StockSyncSummary{}, nil
	}
	return r.ApplySync(ctx, ids)
}

func (r *Reconciler) emit(ctx context.Context, ids []string) {
	err := r.publisher.Publish(ctx, catalog.PipelineEvent{
		EventType:  catalog.EventStockSynced,
		ProductIDs: ids,
		Count:      len(ids),
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		r.logger.Error("publish pipeline event failed", "event_type", catalog.EventStockSynced, "error", err)
	}
}
