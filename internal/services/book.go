package service

import (
	"context"
	"errors"

	appErrors "github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	repository "github.com/amazinbookstore/bookstore-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type BookService interface {
	CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req *models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	SearchBooks(ctx context.Context, query *models.SearchBooksQuery) ([]models.Book, error)
}

type bookService struct {
	repo      repository.BookRepository
	sanitizer *bluemonday.Policy
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{
		repo: repo,
		// description is the only free-text field that may carry markup
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *bookService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {

	if !req.Price.IsPositive() {
		return nil, appErrors.ValidationError("Price must be positive")
	}

	book := &models.Book{
		ID:              uuid.New(),
		Title:           req.Title,
		Author:          req.Author,
		Publisher:       req.Publisher,
		ISBN:            req.ISBN,
		Price:           req.Price,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		Description:     s.sanitizer.Sanitize(req.Description),
		Inventory:       req.Inventory,
		PictureURL:      req.PictureURL,
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, appErrors.DatabaseError("Failed to create book").WithError(err)
	}

	return book, nil
}

func (s *bookService) GetBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Book not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch book").WithError(err)
	}

	return book, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req *models.UpdateBookRequest) (*models.Book, error) {

	book, err := s.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}

	if req.Author != nil {
		book.Author = *req.Author
	}

	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}

	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}

	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, appErrors.ValidationError("Price must be positive")
		}

		book.Price = *req.Price
	}

	if req.Genre != nil {
		book.Genre = *req.Genre
	}

	if req.PublicationYear != nil {
		book.PublicationYear = *req.PublicationYear
	}

	if req.Description != nil {
		book.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Inventory != nil {
		book.Inventory = *req.Inventory
	}

	if req.PictureURL != nil {
		book.PictureURL = *req.PictureURL
	}

	if err := s.repo.UpdateBook(ctx, book); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Book not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update book").WithError(err)
	}

	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError("Book not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete book").WithError(err)
	}

	return nil
}

func (s *bookService) SearchBooks(ctx context.Context, query *models.SearchBooksQuery) ([]models.Book, error) {

	books, err := s.repo.SearchBooks(ctx, query)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search books").WithError(err)
	}

	return books, nil
}
