// Package client talks to the remote centralized inventory API. All calls are
// JSON over HTTP with bearer-token auth; non-2xx responses are decoded into
// *catalog.ServerError, transport failures are wrapped as-is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"catalog-sync/internal/catalog"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SyncPage is one incremental fetch result. Timestamp is the server-reported
// cursor for the next fetch and must be taken verbatim.
type SyncPage struct {
	Products  []catalog.Product `json:"products"`
	Synced    int               `json:"synced"`
	Skipped   int               `json:"skipped"`
	Timestamp string            `json:"timestamp"`
}

type StockEntry struct {
	ProductID       string     `json:"product_id"`
	CurrentQuantity int        `json:"current_quantity"`
	DisplayQuantity int        `json:"display_quantity"`
	LastSyncAt      *time.Time `json:"last_sync_at"`
}

type StockStatus struct {
	Products []StockEntry `json:"products"`
	Summary  StockSummary `json:"summary"`
}

type StockSummary struct {
	NeedsSync int `json:"needsSync"`
	Total     int `json:"total"`
}

type StockSyncItem struct {
	ProductID      string `json:"product_id"`
	Success        bool   `json:"success"`
	SyncedQuantity int    `json:"synced_quantity"`
}

type StockSyncResult struct {
	Results []StockSyncItem          `json:"results"`
	Summary catalog.StockSyncSummary `json:"summary"`
}

// FetchPublished returns the full published-product set.
func (c *Client) FetchPublished(ctx context.Context) ([]catalog.Product, error) {
	var body struct {
		Success  bool              `json:"success"`
		Products []catalog.Product `json:"products"`
	}
	if err := c.get(ctx, "/api/client-products", nil, &body); err != nil {
		return nil, fmt.Errorf("fetch published products: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("fetch published products: unsuccessful response")
	}
	return body.Products, nil
}

// FetchPending returns the pending bucket.
func (c *Client) FetchPending(ctx context.Context) ([]catalog.Product, error) {
	var body struct {
		Products []catalog.Product `json:"products"`
	}
	if err := c.get(ctx, "/api/products/pending", nil, &body); err != nil {
		return nil, fmt.Errorf("fetch pending products: %w", err)
	}
	return body.Products, nil
}

func (c *Client) FetchPendingCount(ctx context.Context) (int, error) {
	var body struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/api/products/pending-count", nil, &body); err != nil {
		return 0, fmt.Errorf("fetch pending count: %w", err)
	}
	return body.Count, nil
}

// FetchPage requests items created or updated strictly after the given
// cursor. An empty cursor means a full fetch.
func (c *Client) FetchPage(ctx context.Context, after string, limit int) (SyncPage, error) {
	params := url.Values{}
	if after != "" {
		params.Set("after", after)
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sync", "true")

	var body struct {
		Success bool `json:"success"`
		SyncPage
	}
	if err := c.get(ctx, "/api/products", params, &body); err != nil {
		return SyncPage{}, fmt.Errorf("fetch product page: %w", err)
	}
	if !body.Success {
		return SyncPage{}, fmt.Errorf("fetch product page: unsuccessful response")
	}
	return body.SyncPage, nil
}

func (c *Client) FetchStockStatus(ctx context.Context) (StockStatus, error) {
	var body struct {
		Success bool `json:"success"`
		StockStatus
	}
	if err := c.get(ctx, "/api/products/stock-status", nil, &body); err != nil {
		return StockStatus{}, fmt.Errorf("fetch stock status: %w", err)
	}
	if !body.Success {
		return StockStatus{}, fmt.Errorf("fetch stock status: unsuccessful response")
	}
	return body.StockStatus, nil
}

// SyncStock asks the remote ledger to reconcile the given external ids. The
// server is authoritative for per-id success.
func (c *Client) SyncStock(ctx context.Context, ids []string) (StockSyncResult, error) {
	payload := struct {
		ProductIDs []string `json:"productIds"`
	}{ProductIDs: ids}

	var body struct {
		Success bool `json:"success"`
		StockSyncResult
	}
	if err := c.post(ctx, "/api/products/sync-stock", payload, &body); err != nil {
		return StockSyncResult{}, fmt.Errorf("sync stock: %w", err)
	}
	return body.StockSyncResult, nil
}

// Publish promotes the given product ids on the remote side.
func (c *Client) Publish(ctx context.Context, ids []string, description string) error {
	payload := struct {
		ProductIDs  []string `json:"productIds"`
		Description string   `json:"description,omitempty"`
	}{ProductIDs: ids, Description: description}

	var body struct {
		Success bool `json:"success"`
	}
	if err := c.post(ctx, "/api/products/publish", payload, &body); err != nil {
		return fmt.Errorf("publish products: %w", err)
	}
	return nil
}

// UpdateStatus toggles the publish status of a single product.
func (c *Client) UpdateStatus(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodPut, "/api/products/"+id+"/status", nil)
	if err != nil {
		return fmt.Errorf("update status %s: %w", id, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("update status %s: %w", id, err)
	}
	return nil
}

func (c *Client) FetchMedia(ctx context.Context, id string) ([]string, error) {
	var body struct {
		MediaURLs []string `json:"mediaUrls"`
	}
	if err := c.get(ctx, "/api/products/"+id+"/media", nil, &body); err != nil {
		return nil, fmt.Errorf("fetch media %s: %w", id, err)
	}
	return body.MediaURLs, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeServerError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeServerError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	return &catalog.ServerError{StatusCode: resp.StatusCode, Message: msg}
}
