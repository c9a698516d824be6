package models_test

import (
	"testing"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"Pending To Confirmed", models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{"Pending To Cancelled", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"Pending To Completed Skips Confirmation", models.OrderStatusPending, models.OrderStatusCompleted, false},
		{"Confirmed To Completed", models.OrderStatusConfirmed, models.OrderStatusCompleted, true},
		{"Confirmed To Cancelled", models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{"Confirmed Back To Pending", models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{"Completed Is Terminal", models.OrderStatusCompleted, models.OrderStatusCancelled, false},
		{"Cancelled Is Terminal", models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{"Same Status Is Not A Transition", models.OrderStatusConfirmed, models.OrderStatusConfirmed, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}
