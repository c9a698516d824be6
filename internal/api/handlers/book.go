package handlers

import (
	"net/http"

	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	service "github.com/amazinbookstore/bookstore-platform/internal/services"
	"github.com/amazinbookstore/bookstore-platform/internal/utils"
	"github.com/amazinbookstore/bookstore-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type BookHandler struct {
	bookService service.BookService
	validator   *validator.Validate
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService, validator: validator.New()}
}

func (h *BookHandler) CreateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateBookRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		book, err := h.bookService.CreateBook(r.Context(), &req)
		if err != nil {
			logger.Error("Book creation failed", "title", req.Title, "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("Book created", "bookId", book.ID.String())
		response.Success(w, http.StatusCreated, book)
	}
}

func (h *BookHandler) GetBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		book, err := h.bookService.GetBookByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, book)
	}
}

func (h *BookHandler) UpdateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateBookRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		book, err := h.bookService.UpdateBook(r.Context(), id, &req)
		if err != nil {
			logger.Error("Book update failed", "bookId", id.String(), "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("Book updated", "bookId", book.ID.String())
		response.Success(w, http.StatusOK, book)
	}
}

func (h *BookHandler) DeleteBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.bookService.DeleteBook(r.Context(), id); err != nil {
			logger.Error("Book deletion failed", "bookId", id.String(), "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("Book deleted", "bookId", id.String())
		response.Success(w, http.StatusOK, map[string]string{"id": id.String()})
	}
}

// SearchBooks filters the catalog by optional substring filters and sorts by
// a whitelisted key. No filters returns the whole catalog.
func (h *BookHandler) SearchBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := &models.SearchBooksQuery{
			Author:    r.URL.Query().Get("author"),
			Publisher: r.URL.Query().Get("publisher"),
			Genre:     r.URL.Query().Get("genre"),
			Title:     r.URL.Query().Get("title"),
			SortBy:    r.URL.Query().Get("sortBy"),
		}

		books, err := h.bookService.SearchBooks(r.Context(), query)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, books)
	}
}
