package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/amazinbookstore/bookstore-platform/internal/utils"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, user_id, type, recipient, subject, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NOW())
		RETURNING created_at
	`

	return dbtx(ctx, r.DB).QueryRowContext(dbCtx, query,
		notification.ID, notification.UserID, notification.Type, notification.Recipient,
		notification.Subject, notification.Status, notification.Error,
	).Scan(&notification.CreatedAt)
}

func (r *notificationRepository) ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, type, recipient, subject, status, COALESCE(error, ''), created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := dbtx(ctx, r.DB).QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var notifications []models.Notification

	for rows.Next() {
		var n models.Notification

		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Recipient, &n.Subject, &n.Status, &n.Error, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
