package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/amazinbookstore/bookstore-platform/internal/repositories/mocks"
	service "github.com/amazinbookstore/bookstore-platform/internal/services"
	"github.com/amazinbookstore/bookstore-platform/pkg/sendGrid"
	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubEmailService struct {
	sent []*models.EmailNotificationRequest
	err  error
}

func (s *stubEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	s.sent = append(s.sent, req)
	return s.err
}

func (s *stubEmailService) GetSendGridClient() *sendgrid.Client {
	return nil
}

var _ sendGrid.EmailService = (*stubEmailService)(nil)

func TestSendOrderConfirmation(t *testing.T) {
	ctx := t.Context()

	user := &models.User{ID: uuid.New(), Username: "reader", Email: "reader@example.com"}
	order := &models.Order{
		ID:     uuid.New(),
		UserID: user.ID,
		Items: []models.OrderItem{
			{BookID: uuid.New(), BookTitle: "Dune", Quantity: 2, PriceAtPurchase: decimal.RequireFromString("12.99")},
		},
		TotalAmount: decimal.RequireFromString("25.98"),
		Status:      models.OrderStatusConfirmed,
	}

	t.Run("Success - Email Sent And Recorded", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewNotificationRepository(t)
		email := &stubEmailService{}
		svc := service.NewNotificationService(mockRepo, email)

		mockRepo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.UserID == user.ID &&
				n.Type == models.NotificationTypeOrderConfirmation &&
				n.Recipient == user.Email &&
				n.Status == models.NotificationStatusSent &&
				n.Error == ""
		})).Return(nil).Once()

		// Act
		svc.SendOrderConfirmation(ctx, user, order)

		// Assert
		require.Len(t, email.sent, 1)
		assert.Equal(t, user.Email, email.sent[0].To)
		assert.Contains(t, email.sent[0].Subject, order.ID.String())
		assert.Contains(t, email.sent[0].Content, "Dune x2 @ 12.99")
		assert.Contains(t, email.sent[0].Content, "Total: 25.98")
	})

	t.Run("Email Failure Is Recorded, Never Surfaced", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewNotificationRepository(t)
		email := &stubEmailService{err: errors.New("smtp gateway down")}
		svc := service.NewNotificationService(mockRepo, email)

		mockRepo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Status == models.NotificationStatusFailed && n.Error == "smtp gateway down"
		})).Return(nil).Once()

		// Act
		svc.SendOrderConfirmation(ctx, user, order)
	})
}

func TestListNotificationsByUser(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewNotificationRepository(t)
		svc := service.NewNotificationService(mockRepo, &stubEmailService{})

		stored := []models.Notification{
			{ID: uuid.New(), UserID: userID, Type: models.NotificationTypeOrderConfirmation, Status: models.NotificationStatusSent},
		}
		mockRepo.On("ListNotificationsByUser", mock.Anything, userID).Return(stored, nil).Once()

		// Act
		notifications, err := svc.ListNotificationsByUser(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stored, notifications)
	})

	t.Run("Repository Error Wrapped", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewNotificationRepository(t)
		svc := service.NewNotificationService(mockRepo, &stubEmailService{})

		dbError := errors.New("connection reset")
		mockRepo.On("ListNotificationsByUser", mock.Anything, userID).Return(nil, dbError).Once()

		// Act
		notifications, err := svc.ListNotificationsByUser(ctx, userID)

		// Assert
		assert.Nil(t, notifications)
		require.Error(t, err)
		assert.ErrorIs(t, err, dbError)
	})
}
