package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harborview/venue-metrics/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(metricsHandler *handlers.MetricsHandler, budgetHandler *handlers.BudgetHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/home", metricsHandler.Home)
		api.GET("/restaurant/snapshot", metricsHandler.RestaurantSnapshot)
		api.GET("/restaurant/statement", metricsHandler.RestaurantStatement)
		api.GET("/events", metricsHandler.Events)
		api.GET("/budgets", metricsHandler.AnnualBudget)
		api.PUT("/budgets", budgetHandler.Upsert)
		api.POST("/budgets/import", budgetHandler.Import)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
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
