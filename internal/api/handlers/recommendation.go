package handlers

import (
	"net/http"
	"strconv"

	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	"github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/metrics"
	service "github.com/amazinbookstore/bookstore-platform/internal/services"
	"github.com/amazinbookstore/bookstore-platform/internal/utils/response"
)

const (
	defaultRecommendationLimit = 5
	maxRecommendationLimit     = 50
)

type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

func (h *RecommendationHandler) GetRecommendations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := userClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		limit := defaultRecommendationLimit

		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				response.Error(w, errors.BadRequestError("Limit must be a positive integer"))
				return
			}

			limit = min(parsed, maxRecommendationLimit)
		}

		result, err := h.recommendationService.GetRecommendations(r.Context(), claims.UserID, limit)
		if err != nil {
			logger.Warn("Recommendation lookup failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		metrics.ObserveRecommendation(string(result.Source))

		response.Success(w, http.StatusOK, result)
	}
}
