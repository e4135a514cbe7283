package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	healthStatusOK        = "ok"
	healthStatusUnhealthy = "unhealthy"
)

type HealthChecker interface {
	Health() error
}

func RegisterRoutes(router *gin.Engine, handler *Handler, checker HealthChecker) {
	router.POST("/sync", handler.SyncProducts)
	router.GET("/status", handler.PipelineStatus)

	router.GET("/products", handler.ListProducts)
	router.GET("/products/pending", handler.ListPending)
	router.GET("/products/pending-count", handler.PendingCount)
	router.POST("/products/publish", handler.PublishProducts)
	router.POST("/products/unpublish", handler.UnpublishProducts)
	router.GET("/products/:id/media", handler.ProductMedia)

	router.GET("/stock/drift", handler.StockDrift)
	router.POST("/stock/sync", handler.SyncStock)
	router.POST("/stock/sync-all", handler.SyncAllStock)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := checker.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": healthStatusUnhealthy})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": healthStatusOK})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
