// Package distractor builds multiple-choice option sets for re-quizzing a
// learner on a question they previously got wrong.
//
// Options are drawn, in order of preference, from the learner's own other
// wrong answers, from an injected content Index, and from a static fallback
// Bank capped by the learner's level. The generator performs no I/O and never
// mutates its inputs, so a single Generator may be shared across goroutines.
package distractor
