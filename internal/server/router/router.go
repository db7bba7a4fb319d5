package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Inventory *handlers.InventoryHandler
	Sales     *handlers.SalesHandler
	Dashboard *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/catalog/:type", h.Inventory.Catalog)
	r.GET("/batches", h.Inventory.ListBatches)
	r.POST("/batches", h.Inventory.CreateBatch)
	r.POST("/batches/preview", h.Inventory.PreviewBatch)
	r.GET("/cuts/available", h.Inventory.AvailableCuts)

	r.GET("/orders", h.Sales.ListOrders)
	r.POST("/orders", h.Sales.CreateOrder)

	r.GET("/dashboard", h.Dashboard.Dashboard)
	r.GET("/reports/daily", h.Dashboard.DailyReport)
	r.POST("/reports/daily/send", h.Dashboard.SendDailyReport)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r, nil
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
