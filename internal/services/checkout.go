package service

import (
	"context"
	"errors"
	"time"

	appErrors "github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	repository "github.com/amazinbookstore/bookstore-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutService converts a user's cart into a confirmed order. The whole
// operation runs inside one database transaction: validation, inventory
// decrements, order insert, purchase-history update and cart clearing either
// all happen or none do.
type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error)
}

type checkoutService struct {
	tx        repository.TxRunner
	userRepo  repository.UserRepository
	bookRepo  repository.BookRepository
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
}

func NewCheckoutService(tx repository.TxRunner, userRepo repository.UserRepository, bookRepo repository.BookRepository, cartRepo repository.CartRepository, orderRepo repository.OrderRepository) CheckoutService {
	return &checkoutService{
		tx:        tx,
		userRepo:  userRepo,
		bookRepo:  bookRepo,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {

	var order *models.Order

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {

		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return appErrors.NotFoundError("User not found").WithError(err)
			}

			return appErrors.DatabaseError("Failed to fetch user").WithError(err)
		}

		cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// no cart has ever been created for this user
				return appErrors.EmptyCartError()
			}

			return appErrors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		if len(cart.Items) == 0 {
			return appErrors.EmptyCartError()
		}

		// Validation pass: read-only. Every line must reference an existing
		// book with enough stock before any mutation begins; a failure on
		// line N must not have touched inventory for lines before it.
		for _, item := range cart.Items {
			book, err := s.bookRepo.GetBookByID(ctx, item.BookID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return appErrors.NotFoundError("Book no longer exists: " + item.BookID.String()).WithError(err)
				}

				return appErrors.DatabaseError("Failed to fetch book").WithError(err)
			}

			if item.Quantity > book.Inventory {
				return appErrors.InsufficientInventoryError(book.Title, book.Inventory, item.Quantity)
			}
		}

		// Commit pass. Each book is re-read so the price snapshot is fresh,
		// and the decrement is conditional so a concurrent checkout racing
		// past the validation pass still cannot oversell.
		items := make([]models.OrderItem, 0, len(cart.Items))
		totalAmount := decimal.Zero

		for _, item := range cart.Items {
			book, err := s.bookRepo.GetBookByID(ctx, item.BookID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return appErrors.NotFoundError("Book no longer exists: " + item.BookID.String()).WithError(err)
				}

				return appErrors.DatabaseError("Failed to fetch book").WithError(err)
			}

			if err := s.bookRepo.DecrementInventory(ctx, book.ID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientInventory) {
					return appErrors.InsufficientInventoryError(book.Title, book.Inventory, item.Quantity)
				}

				return appErrors.DatabaseError("Failed to update inventory").WithError(err)
			}

			items = append(items, models.OrderItem{
				BookID:          book.ID,
				BookTitle:       book.Title,
				Quantity:        item.Quantity,
				PriceAtPurchase: book.Price,
			})

			totalAmount = totalAmount.Add(book.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order = &models.Order{
			ID:          uuid.New(),
			UserID:      userID,
			Items:       items,
			TotalAmount: totalAmount,
			OrderDate:   time.Now(),
			Status:      models.OrderStatusConfirmed,
		}

		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			return appErrors.DatabaseError("Failed to create order").WithError(err)
		}

		// Set-like purchase-history append: every distinct book id from the
		// order lands in the user's history exactly once.
		owned := make(map[uuid.UUID]struct{}, len(user.PurchasedBookIDs))
		for _, id := range user.PurchasedBookIDs {
			owned[id] = struct{}{}
		}

		purchased := user.PurchasedBookIDs

		for _, item := range order.Items {
			if _, ok := owned[item.BookID]; ok {
				continue
			}

			owned[item.BookID] = struct{}{}
			purchased = append(purchased, item.BookID)
		}

		if err := s.userRepo.UpdatePurchasedBooks(ctx, userID, purchased); err != nil {
			return appErrors.DatabaseError("Failed to update purchase history").WithError(err)
		}

		cart.Clear()

		if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
			return appErrors.DatabaseError("Failed to clear cart").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
