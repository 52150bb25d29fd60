package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidRating is returned when a rating is not one of again, hard, good, easy.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidLevel is returned when a difficulty level is not a CEFR tier.
	ErrInvalidLevel = errors.New("invalid level")
)
