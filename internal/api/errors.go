package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lingo-review/internal/api/shared"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/srs"
	"github.com/phrazzld/lingo-review/internal/service"
	"github.com/phrazzld/lingo-review/internal/service/auth"
	"github.com/phrazzld/lingo-review/internal/service/quiz"
	"github.com/phrazzld/lingo-review/internal/service/review"
	"github.com/phrazzld/lingo-review/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidSubject),
		errors.Is(err, review.ErrInvalidLearner),
		errors.Is(err, quiz.ErrInvalidLearner):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, review.ErrWordNotTracked):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, review.ErrInvalidWord),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidSubject):
		return "Invalid token"

	case errors.Is(err, review.ErrInvalidLearner),
		errors.Is(err, quiz.ErrInvalidLearner):
		return "Learner ID not found or invalid"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this wrong answer"

	case errors.Is(err, review.ErrWordNotTracked),
		errors.Is(err, store.ErrSrsDataNotFound):
		return "Word is not tracked"

	case errors.Is(err, store.ErrWrongAnswerNotFound):
		return "Wrong answer not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, domain.ErrInvalidRating):
		return "Invalid rating: must be one of again, hard, good, easy"

	case errors.Is(err, domain.ErrInvalidLevel):
		return "Invalid level: must be one of A1, A2, B1, B2, C1, C2"

	case errors.Is(err, srs.ErrInvalidDays):
		return "Invalid days: must be at least 1"

	case errors.Is(err, review.ErrInvalidWord):
		return "Word ID is required"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field, without exposing struct names.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte", "gt":
		return "too small"
	case "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
