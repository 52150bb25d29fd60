package srs

import (
	"math"
	"slices"
	"time"

	"github.com/phrazzld/lingo-review/internal/domain"
)

// State is the scheduling portion of an SrsData record produced by a review.
type State = domain.Schedule

const day = 24 * time.Hour

// ratingScores is the reporting scale. Scheduling uses Params.Quality instead.
var ratingScores = map[domain.Rating]int{
	domain.RatingAgain: 0,
	domain.RatingHard:  2,
	domain.RatingGood:  4,
	domain.RatingEasy:  5,
}

// ComputeNextState returns the scheduling state that follows prev after a review
// rated with rating at time now.
//
// A nil prev is a first exposure: the word starts at repetition 0 with the
// initial ease factor and is due immediately, whatever the rating. An "again"
// rating resets the repetition count and schedules the word FailureInterval days
// out without touching the ease factor. Successful ratings walk the staircase
// FirstInterval, SecondInterval, then ceil(interval * ease) using the ease
// factor from before this review, and adjust the ease factor by the SM-2
// quality formula, floored at MinEaseFactor.
//
// The returned NextReviewDate is always UpdatedAt plus Interval days.
func ComputeNextState(prev *State, rating domain.Rating, now time.Time, params *Params) State {
	now = now.UTC()

	if prev == nil {
		return State{
			Repetition:     0,
			EaseFactor:     params.InitialEaseFactor,
			Interval:       0,
			NextReviewDate: now,
			UpdatedAt:      now,
		}
	}

	next := State{
		EaseFactor: prev.EaseFactor,
		UpdatedAt:  now,
	}

	if rating.IsFailure() {
		next.Repetition = 0
		next.Interval = params.FailureInterval
	} else {
		next.Repetition = prev.Repetition + 1
		next.Interval = calculateNewInterval(next.Repetition, prev.Interval, prev.EaseFactor, params)
		next.EaseFactor = calculateNewEaseFactor(prev.EaseFactor, params.Quality[rating], params)
	}

	next.NextReviewDate = now.AddDate(0, 0, next.Interval)
	return next
}

// calculateNewInterval applies the interval staircase for a successful review.
func calculateNewInterval(repetition, prevInterval int, prevEase float64, params *Params) int {
	switch repetition {
	case 1:
		return params.FirstInterval
	case 2:
		return params.SecondInterval
	default:
		next := math.Ceil(float64(prevInterval) * prevEase)
		if next >= float64(params.MaxInterval) {
			return params.MaxInterval
		}
		return int(next)
	}
}

// calculateNewEaseFactor applies the SM-2 ease update for quality q.
// q=4 leaves the ease unchanged; lower scores shrink it.
func calculateNewEaseFactor(current float64, q int, params *Params) float64 {
	d := float64(5 - q)
	ef := current + (0.1 - d*(0.08+d*0.02))
	if ef < params.MinEaseFactor {
		ef = params.MinEaseFactor
	}
	return ef
}

// IsDue reports whether the record should be reviewed at now.
// A record is due from the instant of its NextReviewDate onward.
func IsDue(record *domain.SrsData, now time.Time) bool {
	return !now.Before(record.NextReviewDate)
}

// OverdueDays returns the number of whole days now is past the record's
// NextReviewDate, or 0 when the record is not yet overdue.
func OverdueDays(record *domain.SrsData, now time.Time) int {
	late := now.Sub(record.NextReviewDate)
	if late <= 0 {
		return 0
	}
	return int(late / day)
}

// RatingScore maps a rating to its reporting score: again 0, hard 2, good 4, easy 5.
// Unknown ratings score 0.
func RatingScore(rating domain.Rating) int {
	return ratingScores[rating]
}

// Ranked pairs a scheduling record with caller data that travels with it
// through RankByPriority.
type Ranked[T any] struct {
	Record  *domain.SrsData
	Payload T
}

// RankByPriority returns a new slice ordered by urgency: most overdue first,
// then lowest ease factor first. Items that tie on both keys keep their input
// order. The input slice is not modified.
func RankByPriority[T any](items []Ranked[T], now time.Time) []Ranked[T] {
	ranked := slices.Clone(items)
	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		da, db := OverdueDays(a.Record, now), OverdueDays(b.Record, now)
		if da != db {
			return db - da
		}
		switch {
		case a.Record.EaseFactor < b.Record.EaseFactor:
			return -1
		case a.Record.EaseFactor > b.Record.EaseFactor:
			return 1
		}
		return 0
	})
	return ranked
}

// postpone pushes the next review out by days. The interval grows by the same
// amount so the due date stays UpdatedAt plus Interval days.
func postpone(record *domain.SrsData, days int) *domain.SrsData {
	s := record.Schedule
	s.Interval += days
	s.NextReviewDate = s.NextReviewDate.AddDate(0, 0, days)
	return record.WithSchedule(s)
}

// preview replays ratings against a new word first seen at start. Each review
// happens exactly when the previous state falls due. The first returned state
// is the first exposure.
func preview(ratings []domain.Rating, start time.Time, params *Params) []State {
	states := make([]State, 0, len(ratings)+1)
	cur := ComputeNextState(nil, domain.RatingGood, start, params)
	states = append(states, cur)
	for _, r := range ratings {
		cur = ComputeNextState(&cur, r, cur.NextReviewDate, params)
		states = append(states, cur)
	}
	return states
}
