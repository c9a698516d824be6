package mocks

import (
	"context"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type BookService struct {
	mock.Mock
}

func NewBookService(t interface {
	mock.TestingT
	Cleanup(func())
}) *BookService {
	m := &BookService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *BookService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, req)

	var book *models.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*models.Book)
	}

	return book, args.Error(1)
}

func (m *BookService) GetBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	args := m.Called(ctx, id)

	var book *models.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*models.Book)
	}

	return book, args.Error(1)
}

func (m *BookService) UpdateBook(ctx context.Context, id uuid.UUID, req *models.UpdateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, id, req)

	var book *models.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*models.Book)
	}

	return book, args.Error(1)
}

func (m *BookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookService) SearchBooks(ctx context.Context, query *models.SearchBooksQuery) ([]models.Book, error) {
	args := m.Called(ctx, query)

	var books []models.Book
	if args.Get(0) != nil {
		books = args.Get(0).([]models.Book)
	}

	return books, args.Error(1)
}
