package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/lingo-review/internal/api/shared"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/phrazzld/lingo-review/internal/service/review"
)

// SubmitRatingRequest is the body of POST /api/words/{wordID}/reviews.
type SubmitRatingRequest struct {
	Rating string `json:"rating" validate:"required"`
}

// PostponeRequest is the body of POST /api/words/{wordID}/postpone.
type PostponeRequest struct {
	Days int `json:"days" validate:"gte=1,lte=3650"`
}

// ScheduleResponse is a learner's schedule for one word.
type ScheduleResponse struct {
	WordID         string    `json:"word_id"`
	Repetition     int       `json:"repetition"`
	EaseFactor     float64   `json:"ease_factor"`
	Interval       int       `json:"interval"`
	NextReviewDate time.Time `json:"next_review_date"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DueQueueResponse lists the words a learner should review now.
type DueQueueResponse struct {
	Items []review.QueueItem `json:"items"`
	Count int                `json:"count"`
}

// ReviewHandler handles review scheduling requests.
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitRating handles POST /api/words/{wordID}/reviews.
func (h *ReviewHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := requireLearner(w, r, log)
	if !ok {
		return
	}
	wordID, err := getPathWordID(r, "wordID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SubmitRatingRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	rating, err := domain.ParseRating(req.Rating)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	data, err := h.reviewService.SubmitRating(r.Context(), learnerID, wordID, rating)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit rating")
		return
	}

	log.Debug("rating submitted",
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID),
		slog.String("rating", string(rating)),
		slog.Int("interval", data.Interval))
	shared.RespondWithJSON(w, r, http.StatusOK, scheduleToResponse(data))
}

// Postpone handles POST /api/words/{wordID}/postpone.
func (h *ReviewHandler) Postpone(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := requireLearner(w, r, log)
	if !ok {
		return
	}
	wordID, err := getPathWordID(r, "wordID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req PostponeRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	data, err := h.reviewService.Postpone(r.Context(), learnerID, wordID, req.Days)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to postpone review")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, scheduleToResponse(data))
}

// DueQueue handles GET /api/reviews/due?limit=n.
func (h *ReviewHandler) DueQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := requireLearner(w, r, log)
	if !ok {
		return
	}
	limit, err := getQueryInt(r, "limit", review.DefaultQueueLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	items, err := h.reviewService.DueQueue(r.Context(), learnerID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load due reviews")
		return
	}
	if items == nil {
		items = []review.QueueItem{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DueQueueResponse{Items: items, Count: len(items)})
}

// Stats handles GET /api/reviews/stats.
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := requireLearner(w, r, log)
	if !ok {
		return
	}

	stats, err := h.reviewService.Stats(r.Context(), learnerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load review statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

func scheduleToResponse(data *domain.SrsData) ScheduleResponse {
	return ScheduleResponse{
		WordID:         data.WordID,
		Repetition:     data.Repetition,
		EaseFactor:     data.EaseFactor,
		Interval:       data.Interval,
		NextReviewDate: data.NextReviewDate,
		UpdatedAt:      data.UpdatedAt,
	}
}
