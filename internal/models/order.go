package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CanTransitionTo reports whether the status machine allows moving to next:
// pending -> confirmed -> completed, with cancelled reachable from any
// non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		// completed and cancelled are terminal
		return false
	}
}

// OrderItem is an immutable snapshot taken at purchase time. BookTitle and
// PriceAtPurchase must never be re-read from the live Book record.
type OrderItem struct {
	BookID          uuid.UUID       `json:"book_id"`
	BookTitle       string          `json:"book_title"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

type Order struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
	Status      OrderStatus     `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}
