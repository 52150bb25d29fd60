package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingo-review/internal/api/shared"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/phrazzld/lingo-review/internal/service/quiz"
)

// DefaultQuizLevel is used when a quiz request names no level.
const DefaultQuizLevel = domain.LevelA1

// RecordAttemptRequest is the body of POST /api/wrong-answers/{id}/attempts.
type RecordAttemptRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// QuizHandler handles wrong-answer and re-quiz requests.
type QuizHandler struct {
	quizService quiz.Service
	logger      *slog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService quiz.Service, logger *slog.Logger) *QuizHandler {
	if quizService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("quizService cannot be nil for QuizHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &QuizHandler{
		quizService: quizService,
		logger:      logger.With(slog.String("component", "quiz_handler")),
	}
}

// RecordWrongAnswer handles POST /api/wrong-answers.
func (h *QuizHandler) RecordWrongAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := requireLearner(w, r, log)
	if !ok {
		return
	}

	var req quiz.RecordInput
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	wa, err := h.quizService.RecordWrongAnswer(r.Context(), learnerID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record wrong answer")
		return
	}

	log.Debug("wrong answer recorded",
		slog.String("learner_id", learnerID.String()),
		slog.String("wrong_answer_id", wa.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, wa)
}

// BuildQuiz handles GET /api/wrong-answers/{id}/quiz?level=B1.
func (h *QuizHandler) BuildQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, wrongAnswerID, ok := handleLearnerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	level := DefaultQuizLevel
	if raw := r.URL.Query().Get("level"); raw != "" {
		parsed, err := domain.ParseLevel(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		level = parsed
	}

	q, err := h.quizService.BuildQuiz(r.Context(), learnerID, wrongAnswerID, level)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build quiz")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, q)
}

// RecordAttempt handles POST /api/wrong-answers/{id}/attempts.
func (h *QuizHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, wrongAnswerID, ok := handleLearnerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req RecordAttemptRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	wa, err := h.quizService.RecordAttempt(r.Context(), learnerID, wrongAnswerID, *req.Correct)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record attempt")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wa)
}
