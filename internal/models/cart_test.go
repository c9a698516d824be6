package models_test

import (
	"testing"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItem(t *testing.T) {
	bookID := uuid.New()
	otherID := uuid.New()

	t.Run("New Book Appends A Line", func(t *testing.T) {
		cart := &models.Cart{}

		cart.AddItem(bookID, 2)
		cart.AddItem(otherID, 1)

		require.Len(t, cart.Items, 2)
		assert.Equal(t, bookID, cart.Items[0].BookID)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("Existing Book Increments Instead Of Duplicating", func(t *testing.T) {
		cart := &models.Cart{}

		cart.AddItem(bookID, 2)
		cart.AddItem(bookID, 3)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})
}

func TestCartUpdateItemQuantity(t *testing.T) {
	bookID := uuid.New()

	t.Run("Sets Quantity", func(t *testing.T) {
		cart := &models.Cart{Items: []models.CartItem{{BookID: bookID, Quantity: 5}}}

		cart.UpdateItemQuantity(bookID, 2)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("Zero Removes The Line", func(t *testing.T) {
		cart := &models.Cart{Items: []models.CartItem{{BookID: bookID, Quantity: 5}}}

		cart.UpdateItemQuantity(bookID, 0)

		assert.Empty(t, cart.Items)
	})

	t.Run("Negative Removes The Line", func(t *testing.T) {
		cart := &models.Cart{Items: []models.CartItem{{BookID: bookID, Quantity: 5}}}

		cart.UpdateItemQuantity(bookID, -3)

		assert.Empty(t, cart.Items)
	})

	t.Run("Unknown Book Is A No-Op", func(t *testing.T) {
		cart := &models.Cart{Items: []models.CartItem{{BookID: bookID, Quantity: 5}}}

		cart.UpdateItemQuantity(uuid.New(), 9)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})
}

func TestCartRemoveItem(t *testing.T) {
	bookID := uuid.New()
	keepID := uuid.New()

	cart := &models.Cart{Items: []models.CartItem{
		{BookID: bookID, Quantity: 1},
		{BookID: keepID, Quantity: 2},
	}}

	cart.RemoveItem(bookID)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, keepID, cart.Items[0].BookID)
}

func TestCartClear(t *testing.T) {
	cart := &models.Cart{Items: []models.CartItem{{BookID: uuid.New(), Quantity: 1}}}

	cart.Clear()

	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}
