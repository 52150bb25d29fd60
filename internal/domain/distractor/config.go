package distractor

import (
	"fmt"

	"github.com/phrazzld/lingo-review/internal/domain"
)

// Band is a difficulty band for fallback distractor words.
type Band string

// Bands from easiest to hardest.
const (
	BandSimple   Band = "simple"
	BandModerate Band = "moderate"
	BandAdvanced Band = "advanced"
)

// Bands lists all bands from easiest to hardest.
var Bands = []Band{BandSimple, BandModerate, BandAdvanced}

// ParseBand converts a band name into a Band.
func ParseBand(s string) (Band, error) {
	b := Band(s)
	if b.rank() < 0 {
		return "", fmt.Errorf("unknown band %q", s)
	}
	return b, nil
}

func (b Band) rank() int {
	for i, known := range Bands {
		if b == known {
			return i
		}
	}
	return -1
}

// searchOrder returns b followed by the other bands ordered by distance from b.
// On equal distance the easier band comes first.
func (b Band) searchOrder() []Band {
	start := b.rank()
	if start < 0 {
		start = 0
	}
	order := []Band{Bands[start]}
	for dist := 1; dist < len(Bands); dist++ {
		if lower := start - dist; lower >= 0 {
			order = append(order, Bands[lower])
		}
		if upper := start + dist; upper < len(Bands) {
			order = append(order, Bands[upper])
		}
	}
	return order
}

// Config holds the generator's safety knobs.
type Config struct {
	// SameTypeOnly restricts peer distractors to the target's activity type.
	SameTypeOnly bool
	// LevelCap maps a learner level to the hardest fallback band they should see.
	LevelCap map[domain.Level]Band
	// MinOptions is the option count the generator tries to reach.
	MinOptions int
	// MaxPeerDistractors caps how many options come from the learner's pool.
	MaxPeerDistractors int
	// MaxSimilarItems caps the content index lookup.
	MaxSimilarItems int
}

// DefaultConfig returns the standard generator configuration.
func DefaultConfig() Config {
	return Config{
		SameTypeOnly: true,
		LevelCap: map[domain.Level]Band{
			domain.LevelA1: BandSimple,
			domain.LevelA2: BandSimple,
			domain.LevelB1: BandModerate,
			domain.LevelB2: BandModerate,
			domain.LevelC1: BandAdvanced,
			domain.LevelC2: BandAdvanced,
		},
		MinOptions:         4,
		MaxPeerDistractors: 2,
		MaxSimilarItems:    5,
	}
}

// bandFor returns the band for level. Unknown levels get the easiest band.
func (c Config) bandFor(level domain.Level) Band {
	if b, ok := c.LevelCap[level]; ok {
		return b
	}
	return BandSimple
}

// withDefaults fills zero numeric fields and a nil LevelCap from DefaultConfig.
// A negative limit disables that source.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.LevelCap == nil {
		c.LevelCap = def.LevelCap
	}
	if c.MinOptions <= 0 {
		c.MinOptions = def.MinOptions
	}
	switch {
	case c.MaxPeerDistractors == 0:
		c.MaxPeerDistractors = def.MaxPeerDistractors
	case c.MaxPeerDistractors < 0:
		c.MaxPeerDistractors = 0
	}
	switch {
	case c.MaxSimilarItems == 0:
		c.MaxSimilarItems = def.MaxSimilarItems
	case c.MaxSimilarItems < 0:
		c.MaxSimilarItems = 0
	}
	return c
}
