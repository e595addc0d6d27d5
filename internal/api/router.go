package api

import (
	"net/http"

	"coursemarket-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires the HTTP surface: health and metrics stay open, everything
// under /api/v1 requires a valid token.
func NewRouter(handler *Handler, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth(jwtSecret))
	v1.Use(limiter.Middleware())
	{
		v1.POST("/orders", handler.CreateOrder)
		v1.POST("/complex-orders", handler.CreateComplexOrder)
		v1.GET("/orders/:id", handler.GetOrder)
		v1.POST("/orders/:id/cancel", handler.CancelOrder)
		v1.POST("/orders/:id/refund", handler.RefundOrder)
		v1.GET("/order-number/:number", handler.GetOrderByNumber)
		v1.GET("/users/:userID/orders", handler.GetStudentOrders)
		v1.GET("/statistics", handler.GetStatistics)
	}

	return r
}
