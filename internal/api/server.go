// Package api exposes the ordering core over HTTP for the UI surfaces: the
// landing-page menu, the order chat, the payment flow and the admin
// dashboard. Surfaces never talk to each other; they read and write through
// these routes and listen on the WebSocket notification bridge.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"khanabuddy/internal/analytics"
	"khanabuddy/internal/auth"
	"khanabuddy/internal/bus"
	"khanabuddy/internal/chat"
	"khanabuddy/internal/inventory"
	"khanabuddy/internal/monitoring"
	"khanabuddy/internal/orders"
	"khanabuddy/internal/payment"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "khanabuddy_http_requests_total",
	Help: "Number of HTTP requests handled, by method, path and status.",
}, []string{"method", "path", "status"})

// Server is the HTTP API for the ordering service
type Server struct {
	router    *gin.Engine
	inv       *inventory.Service
	orders    *orders.Service
	analytics *analytics.Service
	assistant *chat.Assistant
	payments  *payment.Service
	auth      *auth.Service
	monitor   *monitoring.Monitor
	hub       *hub
}

// NewServer creates the API server and wires its routes
func NewServer(
	inv *inventory.Service,
	ord *orders.Service,
	an *analytics.Service,
	assistant *chat.Assistant,
	payments *payment.Service,
	authSvc *auth.Service,
	monitor *monitoring.Monitor,
	b *bus.Bus,
) *Server {
	s := &Server{
		router:    gin.Default(),
		inv:       inv,
		orders:    ord,
		analytics: an,
		assistant: assistant,
		payments:  payments,
		auth:      authSvc,
		monitor:   monitor,
		hub:       newHub(b),
	}
	s.router.Use(s.countRequests())
	s.setupRoutes()
	return s
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "KhanaBuddy API is running"})
	})
	s.router.POST("/login", s.handleLogin)
	s.router.GET("/ws", s.handleWebSocket)

	v1 := s.router.Group("/api/v1")
	{
		// Customer-facing surfaces
		v1.GET("/menu", s.handleMenu)
		v1.POST("/chat/:session/messages", s.handleChatMessage)
		v1.GET("/chat/:session/order", s.handleChatOrder)
		v1.DELETE("/chat/:session", s.handleChatEnd)
		v1.POST("/payment/quote", s.handlePaymentQuote)
		v1.POST("/payment/confirm", s.handlePaymentConfirm)

		// Admin dashboard
		admin := v1.Group("/admin", s.auth.Middleware())
		{
			admin.GET("/inventory", s.handleListInventory)
			admin.POST("/inventory", s.handleAddItem)
			admin.PUT("/inventory/:id", s.handleUpdateItem)
			admin.PUT("/inventory/:id/quantity", s.handleSetQuantity)
			admin.DELETE("/inventory/:id", s.handleDeleteItem)

			admin.GET("/orders", s.handleActiveOrders)
			admin.GET("/orders/delivered", s.handleDeliveredOrders)
			admin.PUT("/orders/:id/status", s.handleOrderStatus)
			admin.POST("/orders/:id/deliver", s.handleDeliver)

			admin.GET("/analytics/today", s.handleTodayStats)
			admin.GET("/analytics/summary", s.handleSummary)
			admin.GET("/analytics/items", s.handleItemCounts)
			admin.GET("/analytics/hourly", s.handleHourlyRevenue)

			admin.GET("/metrics", s.handleMetricsSnapshot)
		}
	}
}

// countRequests records per-request counters for prometheus and the
// in-process monitor.
func (s *Server) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		s.monitor.Incr("http_requests_total")
		if c.Writer.Status() >= 400 {
			s.monitor.Incr("http_errors_total")
		}
	}
}
