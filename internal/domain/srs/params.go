package srs

import (
	"github.com/phrazzld/lingo-review/internal/domain"
)

// DefaultMaxInterval is the longest gap between reviews, roughly a century.
const DefaultMaxInterval = 36500

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// Ease factor limits
	MinEaseFactor     float64
	InitialEaseFactor float64

	// Interval staircase, in days
	FirstInterval   int
	SecondInterval  int
	FailureInterval int

	// MaxInterval caps the multiplicative step so long success streaks stay finite
	MaxInterval int

	// Quality score fed into the ease update for each successful rating
	Quality map[domain.Rating]int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the defaults.
type ParamsConfig struct {
	MinEaseFactor     float64
	InitialEaseFactor float64

	FirstInterval   int
	SecondInterval  int
	FailureInterval int
	MaxInterval     int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:     domain.MinEaseFactor,
		InitialEaseFactor: domain.DefaultEaseFactor,

		FirstInterval:   1,
		SecondInterval:  6,
		FailureInterval: 1,
		MaxInterval:     DefaultMaxInterval,

		Quality: map[domain.Rating]int{
			domain.RatingHard: 2,
			domain.RatingGood: 4,
			domain.RatingEasy: 5,
		},
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.InitialEaseFactor > 0 {
		params.InitialEaseFactor = config.InitialEaseFactor
	}

	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}
	if config.FailureInterval > 0 {
		params.FailureInterval = config.FailureInterval
	}
	if config.MaxInterval > 0 {
		params.MaxInterval = config.MaxInterval
	}

	return params
}
