package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	appErrors "github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	repository "github.com/amazinbookstore/bookstore-platform/internal/repositories"
	"github.com/amazinbookstore/bookstore-platform/pkg/sendGrid"
	"github.com/google/uuid"
)

// NotificationService sends transactional emails and records the outcome.
// Delivery is best-effort: a failed send is recorded but never surfaced as an
// error, so a mail outage cannot fail a checkout that already committed.
type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order)
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
}

type notificationService struct {
	repo  repository.NotificationRepository
	email sendGrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, email sendGrid.EmailService) NotificationService {
	return &notificationService{
		repo:  repo,
		email: email,
	}
}

func (s *notificationService) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) {

	logger := middleware.LoggerFromContext(ctx)

	subject := fmt.Sprintf("Order confirmation #%s", order.ID)

	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Type:      models.NotificationTypeOrderConfirmation,
		Recipient: user.Email,
		Subject:   subject,
		Status:    models.NotificationStatusSent,
	}

	req := &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: subject,
		Content: orderConfirmationBody(user, order),
	}

	if err := s.email.Send(ctx, req); err != nil {
		logger.Warn("Order confirmation email failed",
			slog.String("orderId", order.ID.String()),
			slog.Any("error", err))

		notification.Status = models.NotificationStatusFailed
		notification.Error = err.Error()
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		logger.Warn("Failed to record notification",
			slog.String("orderId", order.ID.String()),
			slog.Any("error", err))
	}
}

func (s *notificationService) ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {

	notifications, err := s.repo.ListNotificationsByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, nil
}

func orderConfirmationBody(user *models.User, order *models.Order) string {

	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order! Here is what you bought:\n\n", user.Username)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %s x%d @ %s\n", item.BookTitle, item.Quantity, item.PriceAtPurchase.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n\nYour order id is %s.\n", order.TotalAmount.StringFixed(2), order.ID)

	return b.String()
}
