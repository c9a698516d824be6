package handlers

import (
	"net/http"

	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	"github.com/amazinbookstore/bookstore-platform/internal/errors"
	service "github.com/amazinbookstore/bookstore-platform/internal/services"
	"github.com/amazinbookstore/bookstore-platform/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the caller's notification history, newest first.
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		notifications, err := h.notificationService.ListNotificationsByUser(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Notification listing failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, notifications)
	}
}
