package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, issuer string, now time.Time) TokenService {
	t.Helper()
	svc, err := NewTokenService(
		config.AuthConfig{JWTSecret: testSecret, Issuer: issuer},
		WithTimeFunc(func() time.Time { return now }),
	)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_WeakSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(config.AuthConfig{JWTSecret: "short"})
	assert.ErrorIs(t, err, ErrWeakSecret)
}

func TestIssueAndValidate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "lingo", fixedTime)
	learnerID := uuid.New()

	token, err := svc.IssueToken(context.Background(), learnerID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, learnerID, claims.LearnerID)
	assert.Equal(t, "lingo", claims.Issuer)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestIssueToken_NilLearner(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "", fixedTime)
	_, err := svc.IssueToken(context.Background(), uuid.Nil, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

func TestValidateToken_Failures(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	issue := func(t *testing.T, svc TokenService, ttl time.Duration) string {
		t.Helper()
		token, err := svc.IssueToken(context.Background(), learnerID, ttl)
		require.NoError(t, err)
		return token
	}
	signRaw := func(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name    string
		issuer  string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "expired",
			token: func(t *testing.T) string {
				return issue(t, newTestService(t, "", fixedTime.Add(-3*time.Hour)), time.Hour)
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "not yet valid",
			token: func(t *testing.T) string {
				return signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
					Subject:   learnerID.String(),
					NotBefore: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(2 * time.Hour)),
				})
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				svc, err := NewTokenService(config.AuthConfig{JWTSecret: "another-secret-that-is-long-enough-too"},
					WithTimeFunc(func() time.Time { return fixedTime }))
				require.NoError(t, err)
				return issue(t, svc, time.Hour)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed",
			issuer:  "lingo",
			token:   func(t *testing.T) string { return "not.a.jwt" },
			wantErr: ErrInvalidToken,
		},
		{
			name:   "wrong issuer",
			issuer: "lingo",
			token: func(t *testing.T) string {
				return issue(t, newTestService(t, "someone-else", fixedTime), time.Hour)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:   "missing expiry",
			issuer: "lingo",
			token: func(t *testing.T) string {
				return signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
					Subject: learnerID.String(),
					Issuer:  "lingo",
				})
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:   "subject not a uuid",
			issuer: "lingo",
			token: func(t *testing.T) string {
				return signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
					Subject:   "learner-42",
					Issuer:    "lingo",
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
				})
			},
			wantErr: ErrInvalidSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, tt.issuer, fixedTime)
			_, err := svc.ValidateToken(context.Background(), tt.token(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
