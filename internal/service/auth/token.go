// Package auth verifies the bearer tokens that identify learners. Tokens are
// HS256-signed JWTs whose subject is the learner's UUID; accounts and token
// issuance for end users live outside this service, and IssueToken exists for
// operators and tests.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MinSecretLength is the shortest accepted HMAC signing secret.
const MinSecretLength = 32

// TokenService issues and validates learner access tokens.
type TokenService interface {
	// IssueToken creates a signed token for learnerID valid for ttl.
	IssueToken(ctx context.Context, learnerID uuid.UUID, ttl time.Duration) (string, error)

	// ValidateToken verifies the signature, time claims and issuer of a token
	// and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of a learner token.
type Claims struct {
	LearnerID uuid.UUID `json:"learner_id"`
	Issuer    string    `json:"iss,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
