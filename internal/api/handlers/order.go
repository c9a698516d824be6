package handlers

import (
	"net/http"

	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	"github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/metrics"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	service "github.com/amazinbookstore/bookstore-platform/internal/services"
	"github.com/amazinbookstore/bookstore-platform/internal/utils"
	"github.com/amazinbookstore/bookstore-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService        service.OrderService
	checkoutService     service.CheckoutService
	userService         service.UserService
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewOrderHandler(orderService service.OrderService, checkoutService service.CheckoutService, userService service.UserService, notificationService service.NotificationService) *OrderHandler {
	return &OrderHandler{
		orderService:        orderService,
		checkoutService:     checkoutService,
		userService:         userService,
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// Checkout godoc
//
//	@Summary		Checkout the current cart
//	@Description	Turns the caller's cart into a confirmed order: validates stock, snapshots prices, decrements inventory and clears the cart in one transaction. Requires authentication.
//	@Tags			Orders
//	@Produce		json
//	@Success		201	{object}	models.Order			"Successfully created order"
//	@Failure		400	{object}	response.ErrorResponse	"Empty cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"User or book not found"
//	@Failure		409	{object}	response.ErrorResponse	"Insufficient inventory"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/checkout [post]
//
// The confirmation email goes out after the transaction commits and never
// fails the request.
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		order, err := h.checkoutService.Checkout(r.Context(), claims.UserID)
		if err != nil {
			outcome := errors.ErrCodeInternal
			if appErr, ok := errors.IsAppError(err); ok {
				outcome = appErr.Code
			}

			metrics.ObserveCheckout(outcome)

			logger.Warn("Checkout failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		metrics.ObserveCheckout("success")

		logger.Info("Checkout completed",
			"orderId", order.ID.String(),
			"total", order.TotalAmount.StringFixed(2))

		if user, err := h.userService.GetUserByID(r.Context(), claims.UserID); err == nil {
			h.notificationService.SendOrderConfirmation(r.Context(), user, order)
		}

		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//
//	@Summary		Get an order by ID
//	@Description	Fetches a single order. Customers can only read their own orders.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"
//	@Success		200	{object}	models.Order			"Order details"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		// customers can only see their own orders
		if order.UserID != claims.UserID && claims.Role != models.RoleOwner {
			response.Error(w, errors.NotFoundError("Order not found"))
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//
//	@Summary		List the caller's orders
//	@Description	Returns the caller's orders, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Success		200	{array}		models.Order			"List of orders"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orders, err := h.orderService.ListOrdersByUser(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// UpdateStatus godoc
//
//	@Summary		Update order status (Owner)
//	@Description	Moves an order along pending -> confirmed -> completed, with cancellation from any non-terminal state.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"Target status"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid status transition"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, models.OrderStatus(req.Status))
		if err != nil {
			logger.Warn("Order status update failed", "orderId", id.String(), "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("Order status updated", "orderId", id.String(), "status", string(order.Status))
		response.Success(w, http.StatusOK, order)
	}
}
