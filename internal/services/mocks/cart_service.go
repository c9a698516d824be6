package mocks

import (
	"context"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func NewCartService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartService {
	m := &CartService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartService) GetCartDetail(ctx context.Context, userID uuid.UUID) (*models.CartDetail, error) {
	args := m.Called(ctx, userID)

	var detail *models.CartDetail
	if args.Get(0) != nil {
		detail = args.Get(0).(*models.CartDetail)
	}

	return detail, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)

	var cart *models.Cart
	if args.Get(0) != nil {
		cart = args.Get(0).(*models.Cart)
	}

	return cart, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartQuantityRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)

	var cart *models.Cart
	if args.Get(0) != nil {
		cart = args.Get(0).(*models.Cart)
	}

	return cart, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, bookID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID, bookID)

	var cart *models.Cart
	if args.Get(0) != nil {
		cart = args.Get(0).(*models.Cart)
	}

	return cart, args.Error(1)
}

func (m *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
