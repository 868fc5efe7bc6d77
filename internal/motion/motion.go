// Package motion decides the robot's wheel commands. Explicit movement
// requests are matched deterministically by keyword; event-driven
// spontaneous sequences cover celebration and comfort wiggles.
package motion

import (
	"strings"

	"github.com/paixi-lab/paixi/internal/arabic"
	"github.com/paixi-lab/paixi/internal/reply"
)

// Decision is the motion outcome for one turn.
type Decision struct {
	Primary  int
	Sequence []int
}

// Event names for spontaneous sequences.
const (
	EventVeryHappy   = "very_happy"
	EventSad         = "sad"
	EventWrongAnswer = "wrong_answer"
)

var motionKeywords = []struct {
	motion int
	words  []string
}{
	{reply.MotionStop, []string{"توقف", "ستوب", "وقف"}},
	{reply.MotionForward, []string{"امام", "قدام", "للامام", "forward"}},
	{reply.MotionBack, []string{"وراء", "للخلف", "خلف", "backward", "back"}},
	{reply.MotionRight, []string{"يمين", "right"}},
	{reply.MotionLeft, []string{"يسار", "left"}},
}

// Decide returns the motion for this utterance. Without an explicit
// movement keyword the robot holds defaultState.
func Decide(userText string, defaultState int) Decision {
	if kw, ok := keywordMotion(userText); ok {
		return Decision{Primary: kw, Sequence: []int{kw}}
	}
	return Decision{Primary: defaultState, Sequence: []int{defaultState}}
}

// keywordMotion matches whole words only, so "يمينك" does not move the
// robot but "لف يمين" does.
func keywordMotion(text string) (int, bool) {
	words := strings.Fields(arabic.Normalize(strings.ToLower(text)))
	for _, entry := range motionKeywords {
		for _, kw := range entry.words {
			nk := arabic.Normalize(kw)
			for _, w := range words {
				if w == nk {
					return entry.motion, true
				}
			}
		}
	}
	return 0, false
}

// SpontaneousFor maps an event to its wiggle sequence, always ending in
// stop. Unknown events stay parked.
func SpontaneousFor(event string) []int {
	switch event {
	case EventVeryHappy:
		return []int{1, 2, 1, 2, 1, 2, 0}
	case EventSad:
		return []int{2, 0}
	case EventWrongAnswer:
		return []int{3, 4, 3, 4, 3, 4, 3, 4, 3, 4, 0}
	default:
		return []int{0}
	}
}

// EventForEmotion maps an emotion label to the spontaneous event it
// triggers, or "" when none applies.
func EventForEmotion(e reply.Emotion) string {
	switch e {
	case reply.Happy:
		return EventVeryHappy
	case reply.Sad:
		return EventSad
	case reply.Frustration:
		return EventWrongAnswer
	default:
		return ""
	}
}
