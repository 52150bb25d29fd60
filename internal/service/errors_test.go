package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrNotOwned(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "resource is owned by another learner", ErrNotOwned.Error())
	assert.ErrorIs(t, fmt.Errorf("build quiz: %w", ErrNotOwned), ErrNotOwned)
}

func TestServiceError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ServiceError
		expected string
	}{
		{
			name:     "with cause",
			err:      NewServiceError("submit_rating", "failed to submit rating", errors.New("connection reset")),
			expected: "submit_rating operation failed: failed to submit rating: connection reset",
		},
		{
			name:     "without cause",
			err:      NewServiceError("build_quiz", "generator unavailable", nil),
			expected: "build_quiz operation failed: generator unavailable",
		},
		{
			name:     "wrapped sentinel",
			err:      NewServiceError("due_queue", "failed", ErrNotOwned),
			expected: "due_queue operation failed: failed: resource is owned by another learner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestServiceError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := fmt.Errorf("handler: %w", NewServiceError("postpone", "failed to postpone review", cause))

	assert.ErrorIs(t, err, cause)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "postpone", svcErr.Operation)
	assert.Equal(t, "failed to postpone review", svcErr.Message)

	assert.Nil(t, NewServiceError("stats", "no cause", nil).Unwrap())
}
