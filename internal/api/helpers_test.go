package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/api/shared"
	"github.com/phrazzld/lingo-review/internal/mocks"
	"github.com/stretchr/testify/require"
)

const validToken = "valid-token"

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

// newTestRouter wires the router with mock services. Requests carrying
// "Bearer valid-token" authenticate as learnerID.
func newTestRouter(
	t *testing.T,
	learnerID uuid.UUID,
	reviewSvc *mocks.MockReviewService,
	quizSvc *mocks.MockQuizService,
) http.Handler {
	t.Helper()

	if reviewSvc == nil {
		reviewSvc = &mocks.MockReviewService{}
	}
	if quizSvc == nil {
		quizSvc = &mocks.MockQuizService{}
	}

	return NewRouter(RouterDeps{
		ReviewService: reviewSvc,
		QuizService:   quizSvc,
		TokenService:  (&mocks.MockTokenService{}).WithLearner(validToken, learnerID),
	})
}

// doRequest performs an authenticated request against handler.
func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+validToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}
