package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrNoProductIDs    = errors.New("no product ids given")
	ErrPublishInFlight = errors.New("publish operation already in progress")
)

const (
	EventsQueue             = "catalog.events"
	EventProductIngested    = "product_ingested"
	EventStockSynced        = "stock_synced"
	EventProductPublished   = "product_published"
	EventProductUnpublished = "product_unpublished"
)

// Product is one catalog item as known to the sync pipeline. ExternalID is
// the identifier in the remote inventory system and is the dedup/join key;
// ID is assigned locally at ingestion.
type Product struct {
	ID              string    `json:"id"`
	ExternalID      string    `json:"product_id"`
	Name            string    `json:"product_name" example:"Aurora Pendant Light"`
	Price           float64   `json:"price" example:"1499.75"`
	Category        string    `json:"category" example:"Pendant Lights"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url"`
	DisplayQuantity int       `json:"display_quantity" example:"12"`
	PublishStatus   bool      `json:"publish_status"`
	CreatedAt       time.Time `json:"created_at" example:"2026-02-24T12:00:00Z"`
}

// StockRecord is the drift view for one external id: the canonical ledger
// quantity against what the storefront currently displays.
type StockRecord struct {
	ExternalID      string     `json:"product_id"`
	CurrentQuantity int        `json:"current_quantity" example:"120"`
	DisplayQuantity int        `json:"display_quantity" example:"80"`
	Difference      int        `json:"difference" example:"40"`
	NeedsSync       bool       `json:"needs_sync"`
	LastSyncAt      *time.Time `json:"last_sync_at,omitempty"`
}

// SyncOutcome reports one coordinator run. Stale means the run was skipped
// because another sync was already in flight; no network request was made.
type SyncOutcome struct {
	NewItems []Product `json:"new_items"`
	Cursor   string    `json:"cursor"`
	Synced   int       `json:"synced"`
	Skipped  int       `json:"skipped"`
	Stale    bool      `json:"stale"`
}

// StockSyncSummary reports a reconciliation batch. Failed ids keep their
// prior display quantity and stay flagged for the next drift computation.
type StockSyncSummary struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

type PublishResult struct {
	PublishedCount int `json:"published_count"`
}

type PipelineEvent struct {
	EventType  string    `json:"event_type"`
	ProductIDs []string  `json:"product_ids,omitempty"`
	Count      int       `json:"count"`
	Timestamp  time.Time `json:"timestamp"`
}

// ServerError is a non-2xx response from the remote inventory API with a
// structured error body. Transport-level failures are not ServerErrors; they
// surface as wrapped net/http errors.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("remote api: HTTP %d: %s", e.StatusCode, e.Message)
}

// NormalizeExternalID canonicalizes a remote product identifier. The remote
// feed and the stock ledger disagree on surrounding whitespace, so every
// ingestion and join point goes through this.
func NormalizeExternalID(raw string) string {
	return strings.TrimSpace(raw)
}
