// Package payment implements the mock QR payment flow. No gateway is
// involved: the receipt payload is what the UI encodes into the QR image,
// and confirming a payment is what creates the order.
package payment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"khanabuddy/internal/inventory"
	"khanabuddy/internal/models"
	"khanabuddy/internal/orders"
)

// Receipt is the payload encoded into the payment QR code.
type Receipt struct {
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Amount        float64   `json:"amount"`
	PaymentID     string    `json:"orderId"`
	PaymentMethod string    `json:"paymentMethod"`
	Timestamp     time.Time `json:"timestamp"`
}

// Payload serializes the receipt for QR rendering
func (r Receipt) Payload() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Quote is the final bill shown before the customer confirms.
type Quote struct {
	Bill    models.Bill `json:"bill"`
	Receipt Receipt     `json:"receipt"`
}

// Service prices quotes and turns confirmed payments into orders.
type Service struct {
	inv    *inventory.Service
	orders *orders.Service
}

// NewService creates the payment service
func NewService(inv *inventory.Service, o *orders.Service) *Service {
	return &Service{inv: inv, orders: o}
}

// Quote prices the flattened item list at live inventory prices and builds
// the mock receipt for the QR code.
func (s *Service) Quote(items []string) Quote {
	bill := s.inv.PriceOrder(items)
	return Quote{
		Bill: bill,
		Receipt: Receipt{
			Status:        "PAYMENT_SUCCESS",
			Message:       "Payment Completed Successfully",
			Amount:        bill.Total,
			PaymentID:     uuid.NewString(),
			PaymentMethod: "QR_SCAN",
			Timestamp:     time.Now(),
		},
	}
}

// Confirm records the payment as successful and creates the order in the
// preparing state.
func (s *Service) Confirm(customerName, phone string, items []string) (models.Order, error) {
	return s.orders.Create(customerName, phone, items)
}
