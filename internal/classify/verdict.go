// Package classify judges a child's transcribed answer against a lesson
// target. Matching is lexical and heuristic on purpose: input arrives from
// speech-to-text and exactness would punish the child for the recognizer's
// mistakes.
package classify

// Verdict is the outcome of judging one answer.
type Verdict int

const (
	Wrong Verdict = iota
	Close
	Correct
)

// String returns the verdict label used in events and tests.
func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Close:
		return "close"
	default:
		return "wrong"
	}
}
