package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"khanabuddy/internal/analytics"
	"khanabuddy/internal/auth"
	"khanabuddy/internal/chat"
	"khanabuddy/internal/inventory"
	"khanabuddy/internal/models"
	"khanabuddy/internal/orders"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleMenu serves the derived-status map the landing page and dashboard
// render from: display name to quantity, price, status and flags.
func (s *Server) handleMenu(c *gin.Context) {
	c.JSON(http.StatusOK, s.inv.StatusMap())
}

// Inventory handlers

func (s *Server) handleListInventory(c *gin.Context) {
	items := s.inv.Items()
	if items == nil {
		items = []models.InventoryItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleAddItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.inv.Add(item)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ItemID = c.Param("id")
	if err := s.inv.Update(item); err != nil {
		s.writeInventoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleSetQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.inv.SetQuantity(c.Param("id"), req.Quantity); err != nil {
		s.writeInventoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quantity updated"})
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	if err := s.inv.Delete(c.Param("id")); err != nil {
		s.writeInventoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func (s *Server) writeInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case errors.Is(err, inventory.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Order handlers

func (s *Server) handleActiveOrders(c *gin.Context) {
	active := s.orders.Active()
	if active == nil {
		active = []models.Order{}
	}
	c.JSON(http.StatusOK, active)
}

func (s *Server) handleDeliveredOrders(c *gin.Context) {
	delivered := s.orders.Delivered()
	if delivered == nil {
		delivered = []models.Order{}
	}
	c.JSON(http.StatusOK, delivered)
}

func (s *Server) handleOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.orders.SetStatus(c.Param("id"), req.Status); err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, orders.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (s *Server) handleDeliver(c *gin.Context) {
	order, err := s.orders.Deliver(c.Param("id"))
	if err != nil {
		var unavailable *orders.UnavailableError
		switch {
		case errors.As(err, &unavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error":            "items unavailable",
				"unavailableItems": unavailable.Items,
			})
		case errors.Is(err, orders.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, orders.ErrNoStockChange):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	s.monitor.Incr("orders_delivered_total")
	c.JSON(http.StatusOK, order)
}

// Chat handlers

func (s *Server) handleChatMessage(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := s.assistant.Session(c.Param("session"))
	replies := session.Handle(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{
		"replies": replies,
		"items":   session.Items(),
		"bill":    session.Bill(),
		"done":    session.Done(),
	})
}

func (s *Server) handleChatOrder(c *gin.Context) {
	session := s.assistant.Session(c.Param("session"))
	c.JSON(http.StatusOK, gin.H{
		"greeting": chat.Greeting,
		"items":    session.Items(),
		"bill":     session.Bill(),
		"done":     session.Done(),
	})
}

func (s *Server) handleChatEnd(c *gin.Context) {
	s.assistant.End(c.Param("session"))
	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}

// Payment handlers

func (s *Server) handlePaymentQuote(c *gin.Context) {
	var req struct {
		Items []string `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quote := s.payments.Quote(req.Items)
	payload, err := quote.Receipt.Payload()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bill":      quote.Bill,
		"receipt":   quote.Receipt,
		"qrPayload": payload,
	})
}

func (s *Server) handlePaymentConfirm(c *gin.Context) {
	var req struct {
		CustomerName string   `json:"customerName"`
		Phone        string   `json:"phone"`
		Items        []string `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := s.payments.Confirm(req.CustomerName, req.Phone, req.Items)
	if err != nil {
		if errors.Is(err, orders.ErrEmptyOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.monitor.Incr("orders_created_total")
	c.JSON(http.StatusCreated, order)
}

// Analytics handlers

func (s *Server) handleTodayStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.analytics.Today(time.Now()))
}

func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.analytics.Overall())
}

func (s *Server) handleItemCounts(c *gin.Context) {
	counts := s.analytics.ItemCounts()
	if counts == nil {
		counts = []analytics.ItemSales{}
	}
	c.JSON(http.StatusOK, counts)
}

func (s *Server) handleHourlyRevenue(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hours": s.analytics.HourlyRevenue(time.Now())})
}

func (s *Server) handleMetricsSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.Snapshot())
}
