package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	BookID   uuid.UUID `json:"book_id"`
	Quantity int       `json:"quantity"`
}

// Cart holds one user's shopping cart. Items keep insertion order and carry
// at most one entry per book id; adding an existing book increments its
// quantity instead of appending a duplicate line.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddItem adds quantity copies of a book, merging into the existing line if
// one exists.
func (c *Cart) AddItem(bookID uuid.UUID, quantity int) {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items[i].Quantity += quantity
			return
		}
	}

	c.Items = append(c.Items, CartItem{BookID: bookID, Quantity: quantity})
}

// UpdateItemQuantity sets the quantity of an existing line. A quantity of
// zero or less removes the line; a line never persists with quantity <= 0.
func (c *Cart) UpdateItemQuantity(bookID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(bookID)
		return
	}

	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem drops the line for bookID. Builds a fresh slice instead of
// mutating the one being scanned.
func (c *Cart) RemoveItem(bookID uuid.UUID) {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.BookID != bookID {
			items = append(items, item)
		}
	}

	c.Items = items
}

// Clear empties the cart. The cart itself persists for reuse.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

type AddCartItemRequest struct {
	BookID   uuid.UUID `json:"book_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type UpdateCartQuantityRequest struct {
	BookID uuid.UUID `json:"book_id" validate:"required"`
	// Quantity <= 0 removes the item.
	Quantity int `json:"quantity"`
}

// CartDetail is the display-time view of a cart with book records resolved.
// Lines whose book has been deleted are skipped here; the checkout path does
// NOT share that tolerance and fails instead.
type CartDetail struct {
	CartID uuid.UUID        `json:"cart_id"`
	UserID uuid.UUID        `json:"user_id"`
	Items  []CartItemDetail `json:"items"`
	Total  decimal.Decimal  `json:"total"`
}

type CartItemDetail struct {
	Book      Book            `json:"book"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}
