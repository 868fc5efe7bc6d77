package lesson

import "github.com/paixi-lab/paixi/internal/reply"

// Threshold lessons complete after successThreshold correct answers and
// force-advance after skipThreshold wrong ones. The asymmetry is
// deliberate: success should come quickly, and repeated failure must never
// trap the child on one lesson.
const (
	successThreshold = 2
	skipThreshold    = 10
)

// thresholdTexts are the fixed replies a threshold lesson cycles through.
type thresholdTexts struct {
	praiseDone  string // completed by success
	praiseAgain string // correct, one more repetition wanted
	skip        string // too many wrong answers, moving on
	retry       string // wrong, try again
}

// stepThreshold applies one answer to the correct/wrong counters and
// returns the reply for this turn. The counters live in the caller's
// lesson state under "correct" and "wrong".
func stepThreshold(state State, correct bool, texts thresholdTexts) (string, State, bool, reply.Emotion) {
	next := state.Clone()

	if correct {
		n := next.Int("correct") + 1
		next["correct"] = n
		if n >= successThreshold {
			return texts.praiseDone, next, true, reply.Celebrate
		}
		return texts.praiseAgain, next, false, reply.Celebrate
	}

	n := next.Int("wrong") + 1
	next["wrong"] = n
	if n >= skipThreshold {
		return texts.skip, next, true, reply.Frustration
	}
	return texts.retry, next, false, reply.Frustration
}
