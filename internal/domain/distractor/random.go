package distractor

import "math/rand/v2"

// RandomSource returns a uniformly distributed float in [0, 1).
type RandomSource func() float64

func defaultRandom() float64 {
	return rand.Float64()
}

// shuffle permutes options in place with Fisher-Yates.
func shuffle(options []string, rnd RandomSource) {
	for i := len(options) - 1; i > 0; i-- {
		j := int(rnd() * float64(i+1))
		if j > i {
			j = i
		} else if j < 0 {
			j = 0
		}
		options[i], options[j] = options[j], options[i]
	}
}
