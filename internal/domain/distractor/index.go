package distractor

// SimilarQuery narrows a content index lookup.
type SimilarQuery struct {
	SameLevel bool
	MaxCount  int
}

// Index looks up content related to an exercise. Implementations must be
// safe for concurrent use.
type Index interface {
	// FindSimilarItems returns ids of items near itemID within the same activity type.
	FindSimilarItems(itemID string, q SimilarQuery) []string
	// ResolveAnswer returns the correct answer of an item.
	ResolveAnswer(itemID string) (string, bool)
}
