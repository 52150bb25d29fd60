package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	IssueTokenFn    func(ctx context.Context, learnerID uuid.UUID, ttl time.Duration) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token       string
	Err         error
	ValidateErr error
	Claims      *auth.Claims
}

var _ auth.TokenService = (*MockTokenService)(nil)

// IssueToken implements the auth.TokenService interface
func (m *MockTokenService) IssueToken(ctx context.Context, learnerID uuid.UUID, ttl time.Duration) (string, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, learnerID, ttl)
	}
	return m.Token, m.Err
}

// ValidateToken implements the auth.TokenService interface
func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// WithLearner makes ValidateToken accept exactly token, authenticating it as
// learnerID, and reject everything else with auth.ErrInvalidToken.
func (m *MockTokenService) WithLearner(token string, learnerID uuid.UUID) *MockTokenService {
	m.ValidateTokenFn = func(_ context.Context, got string) (*auth.Claims, error) {
		if got != token {
			return nil, auth.ErrInvalidToken
		}
		return &auth.Claims{LearnerID: learnerID}, nil
	}
	return m
}
