// Package curriculum routes each conversational turn: it decides whether a
// deterministic lesson should handle the utterance, delegates to the
// matching subject module, and owns subject ordering and advancement.
package curriculum

// Subject identifies one curriculum track.
type Subject string

const (
	SubjectPronunciation Subject = "pronunciation"
	SubjectSpelling      Subject = "spelling"
	SubjectStories       Subject = "stories"
	SubjectWorld         Subject = "world"
)

// SubjectOrder is the fixed cyclic ordering of subjects. One full pass is
// a round; completing a round advances the lesson number.
var SubjectOrder = []Subject{
	SubjectPronunciation,
	SubjectSpelling,
	SubjectStories,
	SubjectWorld,
}

// ParseSubject coerces a raw subject label, defaulting to the first
// subject in the ordering for anything unknown.
func ParseSubject(s string) Subject {
	for _, sub := range SubjectOrder {
		if string(sub) == s {
			return sub
		}
	}
	return SubjectOrder[0]
}

// Advance computes the next subject and lesson number after a completed
// lesson. The lesson number carries through the round and increments only
// when the ordering wraps back to the first subject.
func Advance(subject Subject, lessonNo int) (Subject, int) {
	if lessonNo < 1 {
		lessonNo = 1
	}
	idx := 0
	for i, s := range SubjectOrder {
		if s == subject {
			idx = i
			break
		}
	}
	if idx < len(SubjectOrder)-1 {
		return SubjectOrder[idx+1], lessonNo
	}
	return SubjectOrder[0], lessonNo + 1
}
