package distractor

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/phrazzld/lingo-review/internal/domain"
)

//go:embed data/bank.json
var defaultBankJSON []byte

// Bank holds fallback distractor words by activity type and band.
// A Bank is read-only once built.
type Bank map[domain.ActivityType]map[Band][]string

var (
	defaultBank     Bank
	defaultBankOnce sync.Once
)

// DefaultBank returns the bank shipped with the binary.
// The returned value is shared and must not be modified.
func DefaultBank() Bank {
	defaultBankOnce.Do(func() {
		bank, err := LoadBank(bytes.NewReader(defaultBankJSON))
		if err != nil {
			panic(fmt.Sprintf("distractor: embedded bank is invalid: %v", err))
		}
		defaultBank = bank
	})
	return defaultBank
}

// LoadBank decodes a bank from JSON of the form
// {"<type>": {"simple": [...], "moderate": [...], "advanced": [...]}}.
func LoadBank(r io.Reader) (Bank, error) {
	var raw map[string]map[string][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	bank := make(Bank, len(raw))
	for activity, bands := range raw {
		if activity == "" {
			return nil, fmt.Errorf("bank contains an empty activity type")
		}
		byBand := make(map[Band][]string, len(bands))
		for name, words := range bands {
			band, err := ParseBand(name)
			if err != nil {
				return nil, fmt.Errorf("activity %q: %w", activity, err)
			}
			byBand[band] = append([]string(nil), words...)
		}
		bank[domain.ActivityType(activity)] = byBand
	}
	return bank, nil
}

// Words returns the words for an activity type and band.
func (b Bank) Words(activity domain.ActivityType, band Band) []string {
	return b[activity][band]
}

// Size returns the total number of words in the bank.
func (b Bank) Size() int {
	n := 0
	for _, bands := range b {
		for _, words := range bands {
			n += len(words)
		}
	}
	return n
}
