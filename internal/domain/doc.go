// Package domain contains the core entities of the review service: per-word
// scheduling records, ratings, difficulty levels, and the wrong answers that
// feed quiz reconstruction. It is independent of any storage or transport.
package domain
