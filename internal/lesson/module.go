// Package lesson contains the per-subject deterministic lesson modules.
//
// Each module implements the same two-operation contract: start a lesson
// at a given number, and handle one turn given the state from the previous
// turn. State round-trips through the caller as an opaque map, so modules
// hold no session-scoped mutable state of their own.
package lesson

import "github.com/paixi-lab/paixi/internal/reply"

// Module is the uniform per-subject lesson contract.
type Module interface {
	// Start begins the lesson and returns its first prompt. It is
	// idempotent for a given lesson number.
	Start(lessonNo int) (text string, state State, emo reply.Emotion)

	// HandleTurn processes one answer. done reports lesson completion;
	// next must be persisted by the caller for the following turn.
	HandleTurn(lessonNo int, utterance string, state State) (text string, next State, done bool, emo reply.Emotion)
}

// State is the opaque per-lesson state round-tripped by the caller.
// Accessors coerce malformed values to safe defaults instead of failing:
// caller-supplied state arrives from JSON and may have drifted.
type State map[string]any

// Clone returns a shallow copy so handlers never mutate caller state.
func (s State) Clone() State {
	out := make(State, len(s)+2)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Int reads an integer field, tolerating JSON float64 decoding.
func (s State) Int(key string) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Bool reads a boolean field.
func (s State) Bool(key string) bool {
	v, _ := s[key].(bool)
	return v
}

// String reads a string field.
func (s State) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Strings reads a string-slice field, tolerating []any from JSON.
func (s State) Strings(key string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// Coerce returns a usable State from an arbitrary caller-supplied value.
// Anything that is not a map becomes an empty State.
func Coerce(v any) State {
	switch m := v.(type) {
	case State:
		return m.Clone()
	case map[string]any:
		return State(m).Clone()
	default:
		return State{}
	}
}
