package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/lingo-review/internal/api/shared"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/srs"
	"github.com/phrazzld/lingo-review/internal/service"
	"github.com/phrazzld/lingo-review/internal/service/auth"
	"github.com/phrazzld/lingo-review/internal/service/quiz"
	"github.com/phrazzld/lingo-review/internal/service/review"
	"github.com/phrazzld/lingo-review/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing learner", review.ErrInvalidLearner, http.StatusUnauthorized},
		{"quiz missing learner", quiz.ErrInvalidLearner, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"srs not found", store.ErrSrsDataNotFound, http.StatusNotFound},
		{"wrong answer not found", store.ErrWrongAnswerNotFound, http.StatusNotFound},
		{"word not tracked", review.ErrWordNotTracked, http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid rating", fmt.Errorf("%w: %q", domain.ErrInvalidRating, "x"), http.StatusBadRequest},
		{"invalid level", domain.ErrInvalidLevel, http.StatusBadRequest},
		{"invalid days", srs.ErrInvalidDays, http.StatusBadRequest},
		{"domain validation", domain.ErrWrongAnswerCorrectEmpty, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{
			"wrapped in service error",
			service.NewServiceError("submit_rating", "failed", fmt.Errorf("create: %w", store.ErrDuplicate)),
			http.StatusConflict,
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"bad subject", auth.ErrInvalidSubject, "Invalid token"},
		{"srs not found", store.ErrSrsDataNotFound, "Word is not tracked"},
		{"generic not found", store.ErrNotFound, "Resource not found"},
		{"domain validation", domain.ErrWrongAnswerTypeEmpty, "Validation error"},
		{
			"internal details stay hidden",
			errors.New(`dial tcp 10.0.0.7:5432: password authentication failed for user "lingo"`),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	type body struct {
		ExerciseID string `json:"exercise_id" validate:"required,max=4"`
		Days       int    `json:"days" validate:"lte=10"`
	}

	tests := []struct {
		name string
		in   body
		want string
	}{
		{"required", body{}, "Invalid exercise_id: required field"},
		{"too long", body{ExerciseID: "abcdef"}, "Invalid exercise_id: too long"},
		{"too large", body{ExerciseID: "ab", Days: 11}, "Invalid days: too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := shared.ValidateRequest(tt.in)
			assert.Equal(t, tt.want, SanitizeValidationError(err))
		})
	}

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
