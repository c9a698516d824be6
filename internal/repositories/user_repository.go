package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/amazinbookstore/bookstore-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdatePurchasedBooks(ctx context.Context, id uuid.UUID, bookIDs []uuid.UUID) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, username, email, password, role, purchased_book_ids, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }, user *models.User) error {
	var purchasedJSON []byte

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role,
		&purchasedJSON, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(purchasedJSON, &user.PurchasedBookIDs); err != nil {
		return fmt.Errorf("failed to unmarshal purchased book ids: %w", err)
	}

	return nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (id, username, email, password, role, purchased_book_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := dbtx(ctx, r.DB).QueryRowContext(dbCtx, query,
		user.ID, user.Username, user.Email, user.Password, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.PurchasedBookIDs = []uuid.UUID{}

	return nil
}

func (r *userRepository) getBy(ctx context.Context, column string, value any) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	err := scanUser(dbtx(ctx, r.DB).QueryRowContext(dbCtx, query, value), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := dbtx(ctx, r.DB).QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var users []models.User

	for rows.Next() {
		var user models.User

		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) UpdatePurchasedBooks(ctx context.Context, id uuid.UUID, bookIDs []uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	purchasedJSON, err := json.Marshal(bookIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal purchased book ids: %w", err)
	}

	query := `
		UPDATE users
		SET purchased_book_ids = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := dbtx(ctx, r.DB).ExecContext(dbCtx, query, purchasedJSON, id)
	if err != nil {
		return fmt.Errorf("failed to update purchase history: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := dbtx(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
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
