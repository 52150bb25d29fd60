package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/lingo-review/internal/domain"
)

// Common errors
var (
	ErrNilRecord   = errors.New("srs record cannot be nil")
	ErrInvalidDays = errors.New("postpone days must be at least 1")
)

// Clock returns the current time.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// Service defines the interface for SRS algorithm operations bound to a clock.
// Ranking is generic and lives in RankByPriority; use Now for its time argument.
type Service interface {
	// ComputeNextState computes the state following prev after a review rated with rating.
	// A nil prev means the word has never been seen.
	ComputeNextState(prev *State, rating domain.Rating) (State, error)

	// IsDue reports whether the record is due at the current time
	IsDue(record *domain.SrsData) bool

	// OverdueDays reports whole days the record is past due
	OverdueDays(record *domain.SrsData) int

	// PostponeReview pushes the next review forward by a number of days
	PostponeReview(record *domain.SrsData, days int) (*domain.SrsData, error)

	// Preview replays a rating sequence for a new word first seen at start
	Preview(ratings []domain.Rating, start time.Time) ([]State, error)

	// Now returns the service clock's current time
	Now() time.Time

	// Params returns the algorithm parameters in use
	Params() *Params
}

// Option configures a Service.
type Option func(*defaultService)

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(s *defaultService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
	clock  Clock
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService(opts ...Option) Service {
	return NewServiceWithParams(NewDefaultParams(), opts...)
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params, opts ...Option) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	s := &defaultService{
		params: params,
		clock:  systemClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *defaultService) ComputeNextState(prev *State, rating domain.Rating) (State, error) {
	if !rating.IsValid() {
		return State{}, fmt.Errorf("%w: %q", domain.ErrInvalidRating, rating)
	}
	return ComputeNextState(prev, rating, s.clock(), s.params), nil
}

func (s *defaultService) IsDue(record *domain.SrsData) bool {
	return IsDue(record, s.clock())
}

func (s *defaultService) OverdueDays(record *domain.SrsData) int {
	return OverdueDays(record, s.clock())
}

func (s *defaultService) PostponeReview(record *domain.SrsData, days int) (*domain.SrsData, error) {
	if record == nil {
		return nil, ErrNilRecord
	}
	if days < 1 {
		return nil, ErrInvalidDays
	}
	return postpone(record, days), nil
}

func (s *defaultService) Preview(ratings []domain.Rating, start time.Time) ([]State, error) {
	for _, r := range ratings {
		if !r.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRating, r)
		}
	}
	return preview(ratings, start, s.params), nil
}

func (s *defaultService) Now() time.Time {
	return s.clock()
}

func (s *defaultService) Params() *Params {
	return s.params
}
