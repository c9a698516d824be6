package mocks

import (
	"context"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type BookRepository struct {
	mock.Mock
}

func NewBookRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *BookRepository {
	m := &BookRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *BookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *BookRepository) GetBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	args := m.Called(ctx, id)

	var book *models.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*models.Book)
	}

	return book, args.Error(1)
}

func (m *BookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *BookRepository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookRepository) SearchBooks(ctx context.Context, q *models.SearchBooksQuery) ([]models.Book, error) {
	args := m.Called(ctx, q)

	var books []models.Book
	if args.Get(0) != nil {
		books = args.Get(0).([]models.Book)
	}

	return books, args.Error(1)
}

func (m *BookRepository) DecrementInventory(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}
