// Package reply produces the wire reply format consumed by the companion
// app:
//
//	"<text>" (<emotion>) <m1><m2>...<mn>
//
// The client parses by locating the quote, paren, and angle-bracket
// delimiters, so the quoted segment must never contain a stray delimiter.
package reply

import (
	"fmt"
	"strings"
	"unicode"
)

// Emotion labels the affect of a reply. The set is fixed by the client
// protocol; the mixed casing of Gratitude and Teacher is part of the wire
// contract.
type Emotion string

const (
	Normal      Emotion = "normal"
	Happy       Emotion = "happy"
	Sad         Emotion = "sad"
	Encourage   Emotion = "encourage"
	Fraid       Emotion = "fraid"
	Gratitude   Emotion = "Gratitude"
	Teacher     Emotion = "Teacher"
	Celebrate   Emotion = "celebrate"
	Frustration Emotion = "frustration"
)

// All returns every valid emotion label.
func All() []Emotion {
	return []Emotion{Normal, Happy, Sad, Encourage, Fraid, Gratitude, Teacher, Celebrate, Frustration}
}

// Parse maps a raw label to an Emotion, falling back to Normal for
// anything outside the fixed set.
func Parse(s string) Emotion {
	for _, e := range All() {
		if string(e) == s {
			return e
		}
	}
	return Normal
}

// Motion codes understood by the robot base.
const (
	MotionStop    = 0
	MotionForward = 1
	MotionBack    = 2
	MotionRight   = 3
	MotionLeft    = 4
)

// Format wraps text, emotion, and a motion sequence into the wire shape.
// The quoted segment keeps only letters, digits, and whitespace; an empty
// motion sequence defaults to a single stop.
func Format(text string, emo Emotion, motions []int) string {
	var b strings.Builder
	if len(motions) == 0 {
		motions = []int{MotionStop}
	}
	for _, m := range motions {
		fmt.Fprintf(&b, "<%d>", m)
	}
	return fmt.Sprintf("%q (%s) %s", Sanitize(text), emo, b.String())
}

// Sanitize strips every rune that is not a letter, digit, or whitespace,
// then collapses runs of whitespace. This guards the quote/paren/angle
// delimiters the client splits on.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		// Combining marks ride along with their letter so vowel marks in
		// prompts survive.
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
