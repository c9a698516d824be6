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
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// Order items are embedded JSONB snapshots: they are immutable after
// purchase and never addressed independently.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, items, total_amount, order_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = dbtx(ctx, r.DB).ExecContext(dbCtx, query,
		order.ID, order.UserID, itemsJSON, order.TotalAmount, order.OrderDate, order.Status)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func scanOrder(row interface{ Scan(dest ...any) error }, order *models.Order) error {
	var itemsJSON []byte

	err := row.Scan(&order.ID, &order.UserID, &itemsJSON, &order.TotalAmount, &order.OrderDate, &order.Status)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, items, total_amount, order_date, status
		FROM orders
		WHERE id = $1
	`

	order := &models.Order{}

	err := scanOrder(dbtx(ctx, r.DB).QueryRowContext(dbCtx, query, id), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, items, total_amount, order_date, status
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC
	`

	rows, err := dbtx(ctx, r.DB).QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order

		if err := scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		RETURNING id, user_id, items, total_amount, order_date, status
	`

	order := &models.Order{}

	err := scanOrder(dbtx(ctx, r.DB).QueryRowContext(dbCtx, query, status, id), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}
