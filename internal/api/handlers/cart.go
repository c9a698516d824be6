package handlers

import (
	"net/http"

	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	"github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	service "github.com/amazinbookstore/bookstore-platform/internal/services"
	"github.com/amazinbookstore/bookstore-platform/internal/utils"
	"github.com/amazinbookstore/bookstore-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func userClaims(r *http.Request) (*models.Claims, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
	return claims, ok
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		detail, err := h.cartService.GetCartDetail(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddCartItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Add to cart failed", "bookId", req.BookID.String(), "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateCartQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Cart quantity update failed", "bookId", req.BookID.String(), "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		bookID, err := utils.ParseID(r, "bookId")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, bookID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
