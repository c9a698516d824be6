package service_test

import (
	"context"
	"testing"

	appErrors "github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	repository "github.com/amazinbookstore/bookstore-platform/internal/repositories"
	"github.com/amazinbookstore/bookstore-platform/internal/repositories/mocks"
	service "github.com/amazinbookstore/bookstore-platform/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Description Sanitized", func(t *testing.T) {
		// Arrange
		mockBookRepo := mocks.NewBookRepository(t)
		bookService := service.NewBookService(mockBookRepo)

		req := &models.CreateBookRequest{
			Title:       "Clean Book",
			Author:      "Some Author",
			Publisher:   "Some House",
			ISBN:        "9780000000001",
			Price:       decimal.RequireFromString("15.00"),
			Description: `An honest review <script>alert("xss")</script> of things`,
			Inventory:   10,
		}

		mockBookRepo.On("CreateBook", ctx, mock.AnythingOfType("*models.Book")).Return(nil).Once()

		// Act
		book, err := bookService.CreateBook(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.NotContains(t, book.Description, "<script>")
		assert.Contains(t, book.Description, "An honest review")
		assert.NotEqual(t, uuid.Nil, book.ID)
	})

	t.Run("Failure - Non-Positive Price", func(t *testing.T) {
		// Arrange
		mockBookRepo := mocks.NewBookRepository(t)
		bookService := service.NewBookService(mockBookRepo)

		req := &models.CreateBookRequest{
			Title:     "Free Book",
			Author:    "Anyone",
			Publisher: "Anywhere",
			ISBN:      "9780000000002",
			Price:     decimal.Zero,
			Inventory: 1,
		}

		// Act
		book, err := bookService.CreateBook(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, book)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockBookRepo.AssertNotCalled(t, "CreateBook", ctx, mock.Anything)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()

	existing := func() *models.Book {
		return &models.Book{
			ID:        bookID,
			Title:     "Original Title",
			Author:    "Original Author",
			Publisher: "Original House",
			ISBN:      "9780000000003",
			Price:     decimal.RequireFromString("10.00"),
			Inventory: 5,
		}
	}

	t.Run("Partial Update Keeps Other Fields", func(t *testing.T) {
		// Arrange
		mockBookRepo := mocks.NewBookRepository(t)
		bookService := service.NewBookService(mockBookRepo)
		newTitle := "Second Edition"

		mockBookRepo.On("GetBookByID", ctx, bookID).Return(existing(), nil).Once()
		mockBookRepo.On("UpdateBook", ctx, mock.AnythingOfType("*models.Book")).Return(nil).Once()

		// Act
		book, err := bookService.UpdateBook(ctx, bookID, &models.UpdateBookRequest{Title: &newTitle})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Second Edition", book.Title)
		assert.Equal(t, "Original Author", book.Author)
		assert.True(t, book.Price.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("Failure - Negative Price", func(t *testing.T) {
		// Arrange
		mockBookRepo := mocks.NewBookRepository(t)
		bookService := service.NewBookService(mockBookRepo)
		badPrice := decimal.RequireFromString("-1.00")

		mockBookRepo.On("GetBookByID", ctx, bookID).Return(existing(), nil).Once()

		// Act
		book, err := bookService.UpdateBook(ctx, bookID, &models.UpdateBookRequest{Price: &badPrice})

		// Assert
		require.Error(t, err)
		assert.Nil(t, book)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Book Not Found", func(t *testing.T) {
		// Arrange
		mockBookRepo := mocks.NewBookRepository(t)
		bookService := service.NewBookService(mockBookRepo)
		newTitle := "Ghost"

		mockBookRepo.On("GetBookByID", ctx, bookID).Return(nil, repository.ErrNotFound).Once()

		// Act
		book, err := bookService.UpdateBook(ctx, bookID, &models.UpdateBookRequest{Title: &newTitle})

		// Assert
		require.Error(t, err)
		assert.Nil(t, book)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestSearchBooks(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockBookRepo := mocks.NewBookRepository(t)
	bookService := service.NewBookService(mockBookRepo)

	query := &models.SearchBooksQuery{Author: "tolkien", SortBy: "price"}
	results := []models.Book{{ID: uuid.New(), Author: "J.R.R. Tolkien"}}

	mockBookRepo.On("SearchBooks", ctx, query).Return(results, nil).Once()

	// Act
	books, err := bookService.SearchBooks(ctx, query)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, results, books)
}
