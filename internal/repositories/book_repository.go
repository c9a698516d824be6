package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/amazinbookstore/bookstore-platform/internal/utils"
	"github.com/google/uuid"
)

type BookRepository interface {
	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
	SearchBooks(ctx context.Context, q *models.SearchBooksQuery) ([]models.Book, error)
	DecrementInventory(ctx context.Context, id uuid.UUID, quantity int) error
}

type bookRepository struct {
	DB *sql.DB
}

func NewBookRepo(db *sql.DB) BookRepository {
	return &bookRepository{DB: db}
}

const bookColumns = `id, title, author, publisher, isbn, price, genre, publication_year, description, inventory, picture_url, created_at, updated_at`

func scanBook(row interface{ Scan(dest ...any) error }, book *models.Book) error {
	var genre, description, pictureURL sql.NullString

	var publicationYear sql.NullInt64

	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Publisher, &book.ISBN, &book.Price,
		&genre, &publicationYear, &description, &book.Inventory, &pictureURL, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return err
	}

	book.Genre = genre.String
	book.PublicationYear = int(publicationYear.Int64)
	book.Description = description.String
	book.PictureURL = pictureURL.String

	return nil
}

func (r *bookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO books (id, title, author, publisher, isbn, price, genre, publication_year, description, inventory, picture_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, 0), NULLIF($9, ''), $10, NULLIF($11, ''), NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return dbtx(ctx, r.DB).QueryRowContext(dbCtx, query,
		book.ID, book.Title, book.Author, book.Publisher, book.ISBN, book.Price,
		book.Genre, book.PublicationYear, book.Description, book.Inventory, book.PictureURL,
	).Scan(&book.CreatedAt, &book.UpdatedAt)
}

func (r *bookRepository) GetBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	book := &models.Book{}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	err := scanBook(dbtx(ctx, r.DB).QueryRowContext(dbCtx, query, id), book)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return book, nil
}

func (r *bookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE books
		SET title = $1, author = $2, publisher = $3, isbn = $4, price = $5, genre = NULLIF($6, ''),
		    publication_year = NULLIF($7, 0), description = NULLIF($8, ''), inventory = $9, picture_url = NULLIF($10, ''), updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	err := dbtx(ctx, r.DB).QueryRowContext(dbCtx, query,
		book.Title, book.Author, book.Publisher, book.ISBN, book.Price,
		book.Genre, book.PublicationYear, book.Description, book.Inventory, book.PictureURL, book.ID,
	).Scan(&book.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}

		return fmt.Errorf("failed to update book: %w", err)
	}

	return nil
}

func (r *bookRepository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := dbtx(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return ErrNotFound
	}

	return nil
}

// sortClauses whitelists the catalog sort keys. Anything else falls back to
// insertion order.
var sortClauses = map[string]string{
	"price":      "price ASC",
	"price_desc": "price DESC",
	"title":      "LOWER(title) ASC",
	"author":     "LOWER(author) ASC",
	"year":       "publication_year ASC NULLS LAST",
	"year_desc":  "publication_year DESC NULLS LAST",
}

func (r *bookRepository) SearchBooks(ctx context.Context, q *models.SearchBooksQuery) ([]models.Book, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + bookColumns + ` FROM books`

	var conds []string

	var args []any

	addFilter := func(column, value string) {
		if value == "" {
			return
		}

		args = append(args, "%"+value+"%")
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}

	addFilter("author", q.Author)
	addFilter("publisher", q.Publisher)
	addFilter("genre", q.Genre)
	addFilter("title", q.Title)

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	if clause, ok := sortClauses[strings.ToLower(q.SortBy)]; ok {
		query += " ORDER BY " + clause
	} else {
		query += " ORDER BY created_at"
	}

	rows, err := dbtx(ctx, r.DB).QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var books []models.Book

	for rows.Next() {
		var book models.Book

		if err := scanBook(rows, &book); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}

		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// DecrementInventory atomically subtracts quantity from a book's stock. The
// update only applies when enough stock remains, so concurrent checkouts can
// never drive inventory below zero.
func (r *bookRepository) DecrementInventory(ctx context.Context, id uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE books
		SET inventory = inventory - $2, updated_at = NOW()
		WHERE id = $1 AND inventory >= $2
	`

	result, err := dbtx(ctx, r.DB).ExecContext(dbCtx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement inventory: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return ErrInsufficientInventory
	}

	return nil
}
