package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-sync/internal/catalog"

	"github.com/gin-gonic/gin"
)

type stubPipeline struct {
	syncFn      func(ctx context.Context) (catalog.SyncOutcome, error)
	driftFn     func(ctx context.Context) ([]catalog.StockRecord, error)
	stockSyncFn func(ctx context.Context, ids []string) (catalog.StockSyncSummary, error)
	publishFn   func(ctx context.Context, ids []string, description string) (catalog.PublishResult, error)
	published   []catalog.Product
	pending     []catalog.Product
	media       map[string][]string
}

func (s *stubPipeline) Sync(ctx context.Context) (catalog.SyncOutcome, error) {
	return s.syncFn(ctx)
}
func (s *stubPipeline) Published(context.Context) []catalog.Product { return s.published }
func (s *stubPipeline) Pending(context.Context) []catalog.Product   { return s.pending }
func (s *stubPipeline) PendingCount(context.Context) int            { return len(s.pending) }
func (s *stubPipeline) StockDrift(ctx context.Context) ([]catalog.StockRecord, error) {
	return s.driftFn(ctx)
}
func (s *stubPipeline) ApplyStockSync(ctx context.Context, ids []string) (catalog.StockSyncSummary, error) {
	return s.stockSyncFn(ctx, ids)
}
func (s *stubPipeline) SyncAllStock(ctx context.Context) (catalog.StockSyncSummary, error) {
	return s.stockSyncFn(ctx, nil)
}
func (s *stubPipeline) Publish(ctx context.Context, ids []string, description string) (catalog.PublishResult, error) {
	return s.publishFn(ctx, ids, description)
}
func (s *stubPipeline) Unpublish(ctx context.Context, ids []string) (catalog.PublishResult, error) {
	return s.publishFn(ctx, ids, "")
}
func (s *stubPipeline) ResolveMedia(_ context.Context, ids []string) map[string][]string {
	out := make(map[string][]string)
	for _, id := range ids {
		if urls, ok := s.media[id]; ok {
			out[id] = urls
		}
	}
	return out
}
func (s *stubPipeline) SyncInFlight() bool    { return false }
func (s *stubPipeline) PublishInFlight() bool { return false }
func (s *stubPipeline) Cursor() string        { return "T1" }

type okChecker struct{}

func (okChecker) Health() error { return nil }

func setupRouter(p PipelineService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewHandler(p), okChecker{})
	return r
}

func TestHandler_SyncProducts(t *testing.T) {
	tests := []struct {
		name       string
		outcome    catalog.SyncOutcome
		err        error
		wantStatus int
		wantStale  bool
	}{
		{
			name: "success",
			outcome: catalog.SyncOutcome{
				NewItems: []catalog.Product{{ExternalID: "ext-1"}},
				Cursor:   "T1",
				Synced:   1,
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "stale outcome is a success",
			outcome:    catalog.SyncOutcome{Stale: true},
			wantStatus: http.StatusOK,
			wantStale:  true,
		},
		{
			name:       "remote failure",
			err:        &catalog.ServerError{StatusCode: 500},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPipeline{
				syncFn: func(context.Context) (catalog.SyncOutcome, error) {
					return tt.outcome, tt.err
				},
			}

			r := setupRouter(p)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/sync", nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("want status %d, got %d, body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp syncResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Stale != tt.wantStale {
				t.Fatalf("want stale %v, got %v", tt.wantStale, resp.Stale)
			}
		})
	}
}

func TestHandler_SyncStock(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		summary    catalog.StockSyncSummary
		err        error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"productIds":["A","B"]}`,
			summary:    catalog.StockSyncSummary{SuccessCount: 2},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing ids",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty selection",
			body:       `{"productIds":[]}`,
			err:        catalog.ErrNoProductIDs,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "remote failure",
			body:       `{"productIds":["A"]}`,
			err:        &catalog.ServerError{StatusCode: 502},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPipeline{
				stockSyncFn: func(_ context.Context, _ []string) (catalog.StockSyncSummary, error) {
					return tt.summary, tt.err
				},
			}

			r := setupRouter(p)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/stock/sync", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("want status %d, got %d, body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_PublishProducts(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		result     catalog.PublishResult
		err        error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"productIds":["p1","p2"],"description":"spring"}`,
			result:     catalog.PublishResult{PublishedCount: 2},
			wantStatus: http.StatusOK,
		},
		{
			name:       "publish already in flight",
			body:       `{"productIds":["p1"]}`,
			err:        catalog.ErrPublishInFlight,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "remote failure",
			body:       `{"productIds":["p1"]}`,
			err:        &catalog.ServerError{StatusCode: 500},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "missing body",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPipeline{
				publishFn: func(_ context.Context, _ []string, _ string) (catalog.PublishResult, error) {
					return tt.result, tt.err
				},
			}

			r := setupRouter(p)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/products/publish", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("want status %d, got %d, body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_StockDrift(t *testing.T) {
	p := &stubPipeline{
		driftFn: func(context.Context) ([]catalog.StockRecord, error) {
			return []catalog.StockRecord{
				{ExternalID: "B", CurrentQuantity: 30, DisplayQuantity: 10, Difference: 20, NeedsSync: true},
			}, nil
		},
	}

	r := setupRouter(p)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stock/drift", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}

	var resp driftResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NeedsSync != 1 || len(resp.Records) != 1 || resp.Records[0].Difference != 20 {
		t.Fatalf("unexpected drift response: %+v", resp)
	}
}

func TestHandler_ProductMedia(t *testing.T) {
	p := &stubPipeline{media: map[string][]string{"p1": {"https://cdn.example.com/a.jpg"}}}
	r := setupRouter(p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/p1/media", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var resp mediaResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.MediaURLs) != 1 {
		t.Fatalf("want 1 url, got %v", resp.MediaURLs)
	}

	// An id the resolver failed on still yields an empty list, not an error.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/products/unknown/media", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200 for unresolved id, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MediaURLs == nil || len(resp.MediaURLs) != 0 {
		t.Fatalf("want empty url list, got %v", resp.MediaURLs)
	}
}

func TestHandler_ListAndCount(t *testing.T) {
	p := &stubPipeline{
		published: []catalog.Product{{ExternalID: "ext-1", PublishStatus: true}},
		pending:   []catalog.Product{{ExternalID: "ext-2"}, {ExternalID: "ext-3"}},
	}
	r := setupRouter(p)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	var list listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("want 1 published, got %d", list.Total)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?filter=pending", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("want 2 pending via filter, got %d", list.Total)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/pending-count", nil))
	var count countResponse
	if err := json.Unmarshal(w.Body.Bytes(), &count); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if count.Count != 2 {
		t.Fatalf("want pending count 2, got %d", count.Count)
	}
}
