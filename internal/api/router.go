package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/lingo-review/internal/api/middleware"
	"github.com/phrazzld/lingo-review/internal/service/auth"
	"github.com/phrazzld/lingo-review/internal/service/quiz"
	"github.com/phrazzld/lingo-review/internal/service/review"
)

// RouterDeps are the collaborators the HTTP surface is built from.
type RouterDeps struct {
	ReviewService review.Service
	QuizService   quiz.Service
	TokenService  auth.TokenService
	RateLimiter   *apiMiddleware.RateLimiter // nil disables rate limiting
	DB            Pinger                     // nil skips the database health check
	Logger        *slog.Logger
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	reviewHandler := NewReviewHandler(deps.ReviewService, log)
	quizHandler := NewQuizHandler(deps.QuizService, log)
	healthHandler := NewHealthHandler(deps.DB, log)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.TokenService)

	limit := func(next http.Handler) http.Handler { return next }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.Limit
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(log))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(limit)

		r.Post("/words/{wordID}/reviews", reviewHandler.SubmitRating)
		r.Post("/words/{wordID}/postpone", reviewHandler.Postpone)
		r.Get("/reviews/due", reviewHandler.DueQueue)
		r.Get("/reviews/stats", reviewHandler.Stats)

		r.Post("/wrong-answers", quizHandler.RecordWrongAnswer)
		r.Get("/wrong-answers/{id}/quiz", quizHandler.BuildQuiz)
		r.Post("/wrong-answers/{id}/attempts", quizHandler.RecordAttempt)
	})

	r.With(limit).Get("/health", healthHandler.Health)

	return r
}
