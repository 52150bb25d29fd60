package distractor

import (
	"strings"

	"github.com/phrazzld/lingo-review/internal/domain"
)

// NoUserAnswer is the UserAnswerIndex reported when the learner's original
// answer is blank or equal to the correct answer.
const NoUserAnswer = -1

// GeneratedOptions is a shuffled multiple-choice option set.
// Options may hold fewer than Config.MinOptions entries when every source is
// exhausted; callers decide whether to show a short quiz.
type GeneratedOptions struct {
	Options         []string `json:"options"`
	CorrectIndex    int      `json:"correct_index"`
	UserAnswerIndex int      `json:"user_answer_index"`
}

// Option configures a Generator.
type Option func(*Generator)

// WithConfig replaces the default configuration. Zero numeric fields and a nil
// LevelCap keep their defaults; a negative limit disables that source.
func WithConfig(cfg Config) Option {
	return func(g *Generator) {
		g.config = cfg.withDefaults()
	}
}

// WithBank replaces the embedded fallback bank.
func WithBank(bank Bank) Option {
	return func(g *Generator) {
		if bank != nil {
			g.bank = bank
		}
	}
}

// WithIndex adds a content index consulted when peer distractors run short.
func WithIndex(index Index) Option {
	return func(g *Generator) {
		g.index = index
	}
}

// WithRandom replaces the shuffle's random source.
func WithRandom(rnd RandomSource) Option {
	return func(g *Generator) {
		if rnd != nil {
			g.random = rnd
		}
	}
}

// Generator assembles option sets. The zero value is not usable; call NewGenerator.
type Generator struct {
	config Config
	bank   Bank
	index  Index
	random RandomSource
}

// NewGenerator creates a Generator with the default config, the embedded bank,
// no content index and the system random source.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		config: DefaultConfig(),
		bank:   DefaultBank(),
		random: defaultRandom,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the generator's effective configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Generate builds options for target using a one-off Generator.
func Generate(target domain.WrongAnswer, pool []domain.WrongAnswer, level domain.Level, opts ...Option) GeneratedOptions {
	return NewGenerator(opts...).Generate(target, pool, level)
}

// Generate builds an option set for re-asking target.
//
// The set starts with the correct answer and the learner's original answer,
// then takes up to MaxPeerDistractors correct answers from other unmastered
// entries in pool, then answers of similar items from the index, then words
// from the bank for the target's type starting at the level's band. Values
// are trimmed, and distractors are compared case-insensitively against
// everything already in the set. The learner's answer is compared with the
// correct answer exactly, so "apple" against "Apple" keeps both options and
// UserAnswerIndex is NoUserAnswer only when the two strings are equal.
func (g *Generator) Generate(target domain.WrongAnswer, pool []domain.WrongAnswer, level domain.Level) GeneratedOptions {
	set := newOptionSet(g.config.MinOptions)

	correct := strings.TrimSpace(target.CorrectAnswer)
	set.add(correct)
	userAnswer := strings.TrimSpace(target.UserAnswer)
	hasUserAnswer := userAnswer != "" && userAnswer != correct && set.addSeed(userAnswer)

	g.addPeers(set, target, pool)
	g.addSimilar(set, target)
	g.addFallback(set, target.Type, level)

	options := set.values
	shuffle(options, g.random)

	result := GeneratedOptions{
		Options:         options,
		CorrectIndex:    indexOf(options, correct),
		UserAnswerIndex: NoUserAnswer,
	}
	if hasUserAnswer {
		result.UserAnswerIndex = indexOf(options, userAnswer)
	}
	return result
}

func (g *Generator) addPeers(set *optionSet, target domain.WrongAnswer, pool []domain.WrongAnswer) {
	taken := 0
	for i := range pool {
		if set.full() || taken >= g.config.MaxPeerDistractors {
			return
		}
		peer := &pool[i]
		if peer.ID == target.ID || peer.Mastered {
			continue
		}
		if g.config.SameTypeOnly && peer.Type != target.Type {
			continue
		}
		if set.add(peer.CorrectAnswer) {
			taken++
		}
	}
}

func (g *Generator) addSimilar(set *optionSet, target domain.WrongAnswer) {
	if g.index == nil || set.full() || g.config.MaxSimilarItems == 0 {
		return
	}
	ids := g.index.FindSimilarItems(target.ExerciseID, SimilarQuery{
		SameLevel: true,
		MaxCount:  g.config.MaxSimilarItems,
	})
	for _, id := range ids {
		if set.full() {
			return
		}
		if id == target.ExerciseID {
			continue
		}
		if answer, ok := g.index.ResolveAnswer(id); ok {
			set.add(answer)
		}
	}
}

func (g *Generator) addFallback(set *optionSet, activity domain.ActivityType, level domain.Level) {
	for _, band := range g.config.bandFor(level).searchOrder() {
		for _, word := range g.bank.Words(activity, band) {
			if set.full() {
				return
			}
			set.add(word)
		}
	}
}

// optionSet is an ordered set of trimmed, non-empty option strings.
type optionSet struct {
	values []string
	seen   map[string]struct{}
	target int
}

func newOptionSet(target int) *optionSet {
	return &optionSet{
		values: make([]string, 0, target),
		seen:   make(map[string]struct{}, target),
		target: target,
	}
}

// add appends v unless it is blank or already present. It reports whether v was added.
func (s *optionSet) add(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	key := strings.ToLower(v)
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// addSeed appends v even when it matches an existing option case-insensitively.
func (s *optionSet) addSeed(v string) bool {
	for _, o := range s.values {
		if o == v {
			return false
		}
	}
	s.seen[strings.ToLower(v)] = struct{}{}
	s.values = append(s.values, v)
	return true
}

func (s *optionSet) full() bool {
	return len(s.values) >= s.target
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return NoUserAnswer
}
