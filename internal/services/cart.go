package service

import (
	"context"
	"errors"

	appErrors "github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	repository "github.com/amazinbookstore/bookstore-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService interface {
	GetCartDetail(ctx context.Context, userID uuid.UUID) (*models.CartDetail, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, bookID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
}

func NewCartService(cartRepo repository.CartRepository, bookRepo repository.BookRepository) CartService {
	return &cartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// getOrCreateCart lazily provisions a cart the first time a user touches it.
func (s *cartService) getOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart = &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []models.CartItem{},
	}

	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

// GetCartDetail resolves cart lines into full book records with line totals.
// Lines whose book has since been deleted are skipped rather than failing the
// whole view.
func (s *cartService) GetCartDetail(ctx context.Context, userID uuid.UUID) (*models.CartDetail, error) {

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail := &models.CartDetail{
		CartID: cart.ID,
		UserID: cart.UserID,
		Items:  make([]models.CartItemDetail, 0, len(cart.Items)),
		Total:  decimal.Zero,
	}

	for _, item := range cart.Items {
		book, err := s.bookRepo.GetBookByID(ctx, item.BookID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}

			return nil, appErrors.DatabaseError("Failed to fetch book").WithError(err)
		}

		lineTotal := book.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))

		detail.Items = append(detail.Items, models.CartItemDetail{
			Book:      *book,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})

		detail.Total = detail.Total.Add(lineTotal)
	}

	return detail, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error) {

	// the book must exist at add time; stock is only enforced at checkout
	if _, err := s.bookRepo.GetBookByID(ctx, req.BookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Book not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch book").WithError(err)
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(req.BookID, req.Quantity)

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartQuantityRequest) (*models.Cart, error) {

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.UpdateItemQuantity(req.BookID, req.Quantity)

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, bookID uuid.UUID) (*models.Cart, error) {

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(bookID)

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	cart.Clear()

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
