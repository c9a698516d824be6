package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	appErrors "github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the JSON body into dest and validates it against
// its struct tags. On failure it writes the error envelope and returns false,
// so handlers can bail out with a bare return.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	logger := middleware.LoggerFromContext(r.Context())

	if err := DecodeJSONBody(r, dest); err != nil {
		logger.Warn("Malformed request body", "error", err.Error())
		response.Error(w, appErrors.BadRequestError("Invalid request payload").WithError(err))

		return false
	}

	if err := validate.Struct(dest); err != nil {
		logger.Warn("Request validation failed", "error", err.Error())

		appErr := appErrors.ValidationError("Invalid input data").WithError(err)

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			reasons := make([]string, 0, len(fieldErrs))
			for _, fieldErr := range fieldErrs {
				reasons = append(reasons, fmt.Sprintf("%s failed on the %q rule", fieldErr.Field(), fieldErr.Tag()))
			}

			appErr = appErr.WithDetail(strings.Join(reasons, "; "))
		}

		response.Error(w, appErr)

		return false
	}

	return true
}
