package repository_test

import (
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	repository "github.com/amazinbookstore/bookstore-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumns = []string{"id", "user_id", "items", "total_amount", "order_date", "status"}

func orderRow(t *testing.T, order *models.Order) *sqlmock.Rows {
	t.Helper()

	itemsJSON, err := json.Marshal(order.Items)
	require.NoError(t, err)

	return sqlmock.NewRows(orderColumns).AddRow(
		order.ID, order.UserID, itemsJSON, order.TotalAmount.String(), order.OrderDate, order.Status,
	)
}

func sampleOrder(userID uuid.UUID) *models.Order {
	return &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.OrderItem{
			{BookID: uuid.New(), BookTitle: "A Novel", Quantity: 2, PriceAtPurchase: decimal.RequireFromString("9.99")},
		},
		TotalAmount: decimal.RequireFromString("19.98"),
		OrderDate:   time.Now(),
		Status:      models.OrderStatusConfirmed,
	}
}

func TestOrderRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewOrderRepo(db)
	ctx := t.Context()

	t.Run("CreateOrder", func(t *testing.T) {
		// Arrange
		expectedSQL := regexp.QuoteMeta(`INSERT INTO orders (id, user_id, items, total_amount, order_date, status)`)
		order := sampleOrder(uuid.New())
		itemsJSON, err := json.Marshal(order.Items)
		require.NoError(t, err)

		mock.ExpectExec(expectedSQL).
			WithArgs(order.ID, order.UserID, itemsJSON, order.TotalAmount, order.OrderDate, order.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err = repo.CreateOrder(ctx, order)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetOrderByID", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`FROM orders`)

		t.Run("Success - Item Snapshots Unmarshalled", func(t *testing.T) {
			// Arrange
			order := sampleOrder(uuid.New())

			mock.ExpectQuery(expectedSQL).WithArgs(order.ID).WillReturnRows(orderRow(t, order))

			// Act
			got, err := repo.GetOrderByID(ctx, order.ID)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, order.ID, got.ID)
			require.Len(t, got.Items, 1)
			assert.Equal(t, "A Novel", got.Items[0].BookTitle)
			assert.True(t, got.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("9.99")))
			assert.True(t, got.TotalAmount.Equal(order.TotalAmount))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			// Arrange
			orderID := uuid.New()
			mock.ExpectQuery(expectedSQL).WithArgs(orderID).WillReturnError(sql.ErrNoRows)

			// Act
			got, err := repo.GetOrderByID(ctx, orderID)

			// Assert
			assert.Nil(t, got)
			assert.ErrorIs(t, err, repository.ErrNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListOrdersByUser", func(t *testing.T) {
		// Arrange
		expectedSQL := regexp.QuoteMeta(`ORDER BY order_date DESC`)
		userID := uuid.New()
		newer := sampleOrder(userID)
		older := sampleOrder(userID)
		older.OrderDate = newer.OrderDate.Add(-time.Hour)

		newerItems, _ := json.Marshal(newer.Items)
		olderItems, _ := json.Marshal(older.Items)

		rows := sqlmock.NewRows(orderColumns).
			AddRow(newer.ID, newer.UserID, newerItems, newer.TotalAmount.String(), newer.OrderDate, newer.Status).
			AddRow(older.ID, older.UserID, olderItems, older.TotalAmount.String(), older.OrderDate, older.Status)

		mock.ExpectQuery(expectedSQL).WithArgs(userID).WillReturnRows(rows)

		// Act
		orders, err := repo.ListOrdersByUser(ctx, userID)

		// Assert
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, newer.ID, orders[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateOrderStatus", func(t *testing.T) {
		// Arrange
		expectedSQL := regexp.QuoteMeta(`SET status = $1`)
		order := sampleOrder(uuid.New())
		order.Status = models.OrderStatusCompleted

		mock.ExpectQuery(expectedSQL).
			WithArgs(models.OrderStatusCompleted, order.ID).
			WillReturnRows(orderRow(t, order))

		// Act
		got, err := repo.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCompleted)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, got.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
