package http

import (
	"context"
	"errors"
	"net/http"

	"catalog-sync/internal/catalog"

	"github.com/gin-gonic/gin"
)

type PipelineService interface {
	Sync(ctx context.Context) (catalog.SyncOutcome, error)
	Published(ctx context.Context) []catalog.Product
	Pending(ctx context.Context) []catalog.Product
	PendingCount(ctx context.Context) int
	StockDrift(ctx context.Context) ([]catalog.StockRecord, error)
	ApplyStockSync(ctx context.Context, ids []string) (catalog.StockSyncSummary, error)
	SyncAllStock(ctx context.Context) (catalog.StockSyncSummary, error)
	Publish(ctx context.Context, ids []string, description string) (catalog.PublishResult, error)
	Unpublish(ctx context.Context, ids []string) (catalog.PublishResult, error)
	ResolveMedia(ctx context.Context, ids []string) map[string][]string
	SyncInFlight() bool
	PublishInFlight() bool
	Cursor() string
}

type Handler struct {
	pipeline PipelineService
}

func NewHandler(pipeline PipelineService) *Handler {
	return &Handler{pipeline: pipeline}
}

type productIDsRequest struct {
	ProductIDs  []string `json:"productIds" binding:"required"`
	Description string   `json:"description,omitempty"`
}

type errorResponse struct {
	Error string `json:"error" example:"no product ids given"`
}

type syncResponse struct {
	NewItems int    `json:"new_items" example:"3"`
	Synced   int    `json:"synced" example:"3"`
	Skipped  int    `json:"skipped" example:"0"`
	Cursor   string `json:"cursor" example:"2026-02-24T12:00:00Z"`
	Stale    bool   `json:"stale"`
}

type listResponse struct {
	Items []catalog.Product `json:"items"`
	Total int               `json:"total" example:"42"`
}

type countResponse struct {
	Count int `json:"count" example:"7"`
}

type driftResponse struct {
	Records   []catalog.StockRecord `json:"records"`
	NeedsSync int                   `json:"needsSync" example:"2"`
}

type publishResponse struct {
	PublishedCount int `json:"published_count" example:"2"`
}

type mediaResponse struct {
	MediaURLs []string `json:"mediaUrls"`
}

type statusResponse struct {
	SyncInFlight    bool   `json:"sync_in_flight"`
	PublishInFlight bool   `json:"publish_in_flight"`
	Cursor          string `json:"cursor"`
	PendingCount    int    `json:"pending_count"`
}

// SyncProducts godoc
// @Summary      Run one incremental sync against the remote inventory feed
// @Tags         sync
// @Produce      json
// @Success      200  {object}  syncResponse
// @Failure      502  {object}  errorResponse
// @Router       /sync [post]
func (h *Handler) SyncProducts(c *gin.Context) {
	outcome, err := h.pipeline.Sync(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to sync products"})
		return
	}

	c.JSON(http.StatusOK, syncResponse{
		NewItems: len(outcome.NewItems),
		Synced:   outcome.Synced,
		Skipped:  outcome.Skipped,
		Cursor:   outcome.Cursor,
		Stale:    outcome.Stale,
	})
}

// ListProducts godoc
// @Summary      List products, published by default
// @Tags         products
// @Produce      json
// @Param        filter  query     string  false  "pending or published"
// @Success      200     {object}  listResponse
// @Router       /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	var items []catalog.Product
	if c.Query("filter") == "pending" {
		items = h.pipeline.Pending(c.Request.Context())
	} else {
		items = h.pipeline.Published(c.Request.Context())
	}
	c.JSON(http.StatusOK, listResponse{Items: items, Total: len(items)})
}

// ListPending godoc
// @Summary      List the pending bucket
// @Tags         products
// @Produce      json
// @Success      200  {object}  listResponse
// @Router       /products/pending [get]
func (h *Handler) ListPending(c *gin.Context) {
	items := h.pipeline.Pending(c.Request.Context())
	c.JSON(http.StatusOK, listResponse{Items: items, Total: len(items)})
}

// PendingCount godoc
// @Summary      Count products waiting to be published
// @Tags         products
// @Produce      json
// @Success      200  {object}  countResponse
// @Router       /products/pending-count [get]
func (h *Handler) PendingCount(c *gin.Context) {
	c.JSON(http.StatusOK, countResponse{Count: h.pipeline.PendingCount(c.Request.Context())})
}

// StockDrift godoc
// @Summary      Report products whose displayed quantity drifted from the ledger
// @Tags         stock
// @Produce      json
// @Success      200  {object}  driftResponse
// @Failure      502  {object}  errorResponse
// @Router       /stock/drift [get]
func (h *Handler) StockDrift(c *gin.Context) {
	records, err := h.pipeline.StockDrift(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to compute stock drift"})
		return
	}
	c.JSON(http.StatusOK, driftResponse{Records: records, NeedsSync: len(records)})
}

// SyncStock godoc
// @Summary      Reconcile displayed quantities for the selected products
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body      productIDsRequest  true  "External product ids"
// @Success      200   {object}  catalog.StockSyncSummary
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /stock/sync [post]
func (h *Handler) SyncStock(c *gin.Context) {
	var req productIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	summary, err := h.pipeline.ApplyStockSync(c.Request.Context(), req.ProductIDs)
	if err != nil {
		if errors.Is(err, catalog.ErrNoProductIDs) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to sync stock"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SyncAllStock godoc
// @Summary      Reconcile every drifting product
// @Tags         stock
// @Produce      json
// @Success      200  {object}  catalog.StockSyncSummary
// @Failure      502  {object}  errorResponse
// @Router       /stock/sync-all [post]
func (h *Handler) SyncAllStock(c *gin.Context) {
	summary, err := h.pipeline.SyncAllStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to sync stock"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PublishProducts godoc
// @Summary      Promote pending products to the published bucket
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      productIDsRequest  true  "Local product ids"
// @Success      200   {object}  publishResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /products/publish [post]
func (h *Handler) PublishProducts(c *gin.Context) {
	var req productIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.pipeline.Publish(c.Request.Context(), req.ProductIDs, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNoProductIDs):
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, catalog.ErrPublishInFlight):
			c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to publish products"})
		}
		return
	}

	c.JSON(http.StatusOK, publishResponse{PublishedCount: result.PublishedCount})
}

// UnpublishProducts godoc
// @Summary      Move published products back to the pending bucket
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      productIDsRequest  true  "Local product ids"
// @Success      200   {object}  publishResponse
// @Failure      400   {object}  errorResponse
// @Router       /products/unpublish [post]
func (h *Handler) UnpublishProducts(c *gin.Context) {
	var req productIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.pipeline.Unpublish(c.Request.Context(), req.ProductIDs)
	if err != nil {
		if errors.Is(err, catalog.ErrNoProductIDs) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to unpublish products"})
		return
	}

	c.JSON(http.StatusOK, publishResponse{PublishedCount: result.PublishedCount})
}

// ProductMedia godoc
// @Summary      Resolve media URLs for one product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Local product id"
// @Success      200  {object}  mediaResponse
// @Router       /products/{id}/media [get]
func (h *Handler) ProductMedia(c *gin.Context) {
	id := c.Param("id")
	urls := h.pipeline.ResolveMedia(c.Request.Context(), []string{id})[id]
	if urls == nil {
		urls = []string{}
	}
	c.JSON(http.StatusOK, mediaResponse{MediaURLs: urls})
}

// PipelineStatus godoc
// @Summary      Report in-flight flags and the current cursor
// @Tags         sync
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /status [get]
func (h *Handler) PipelineStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		SyncInFlight:    h.pipeline.SyncInFlight(),
		PublishInFlight: h.pipeline.PublishInFlight(),
		Cursor:          h.pipeline.Cursor(),
		PendingCount:    h.pipeline.PendingCount(c.Request.Context()),
	})
}
