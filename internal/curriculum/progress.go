package curriculum

import "github.com/paixi-lab/paixi/internal/lesson"

// Phase says whether the session is in free chat or inside a lesson turn.
type Phase string

const (
	PhaseChat   Phase = "chat"
	PhaseLesson Phase = "lesson"
)

// Progress is the externally persisted curriculum position for one child.
// The zero value is not meaningful; use DefaultProgress or FromProfile.
type Progress struct {
	Subject         Subject      `json:"current_subject"`
	Lesson          int          `json:"current_lesson"`
	Phase           Phase        `json:"phase"`
	State           lesson.State `json:"lesson_state"`
	AwaitNewSession bool         `json:"await_new_session"`
	Paused          bool         `json:"curriculum_paused"`
}

// DefaultProgress is the starting position for a child with no history.
func DefaultProgress() Progress {
	return Progress{
		Subject: SubjectOrder[0],
		Lesson:  1,
		Phase:   PhaseChat,
		State:   lesson.State{},
	}
}

// FromProfile rebuilds a Progress from an untrusted profile map. Missing or
// malformed fields fall back to safe defaults so a corrupted record can
// never wedge the curriculum.
func FromProfile(profile map[string]any) Progress {
	p := DefaultProgress()
	if profile == nil {
		return p
	}
	raw, ok := profile["progress"].(map[string]any)
	if !ok {
		return p
	}
	if s, ok := raw["current_subject"].(string); ok {
		p.Subject = ParseSubject(s)
	}
	if n := coerceInt(raw["current_lesson"]); n >= 1 {
		p.Lesson = n
	}
	if ph, ok := raw["phase"].(string); ok && Phase(ph) == PhaseLesson {
		p.Phase = PhaseLesson
	}
	p.State = lesson.Coerce(raw["lesson_state"])
	p.AwaitNewSession, _ = raw["await_new_session"].(bool)
	p.Paused, _ = raw["curriculum_paused"].(bool)
	return p
}

// ToProfileField renders the progress in the persisted wire shape, suitable
// for storing back under the profile's "progress" key.
func (p Progress) ToProfileField() map[string]any {
	state := p.State
	if state == nil {
		state = lesson.State{}
	}
	return map[string]any{
		"current_subject":   string(p.Subject),
		"current_lesson":    p.Lesson,
		"phase":             string(p.Phase),
		"lesson_state":      map[string]any(state),
		"await_new_session": p.AwaitNewSession,
		"curriculum_paused": p.Paused,
	}
}

func coerceInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
