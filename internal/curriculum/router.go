package curriculum

import (
	"fmt"
	"strings"

	"github.com/paixi-lab/paixi/internal/lesson"
	"github.com/paixi-lab/paixi/internal/reply"
	"github.com/paixi-lab/paixi/internal/trigger"
)

// startedKey marks lesson state that already received its opening prompt.
const startedKey = "started"

// Outcome is the router's verdict for one turn. When Handled is false the
// caller falls through to free chat and Reply and Update are empty.
type Outcome struct {
	Handled bool
	Reply   string
	Update  *Progress
}

// Router dispatches lesson turns to subject modules.
type Router struct {
	modules map[Subject]lesson.Module
}

// NewRouter builds a router with the full subject catalog registered.
func NewRouter() *Router {
	return &Router{modules: map[Subject]lesson.Module{
		SubjectPronunciation: lesson.PronunciationModule{},
		SubjectSpelling:      lesson.SpellingModule{},
		SubjectStories:       lesson.StoriesModule{},
		SubjectWorld:         lesson.WorldModule{},
	}}
}

// Register replaces the module for a subject. Used by tests.
func (r *Router) Register(subject Subject, m lesson.Module) {
	r.modules[subject] = m
}

// Handle runs one curriculum turn. It inspects the persisted progress in
// profile, decides whether the lesson engine owns this utterance, and if so
// returns the formatted reply plus the progress to persist. Any panic in a
// subject module is swallowed and reported as unhandled so a lesson bug can
// never take down the conversation.
func (r *Router) Handle(profile map[string]any, utterance, kidName string) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = Outcome{}
		}
	}()

	if strings.TrimSpace(utterance) == "" {
		return Outcome{}
	}

	prog := FromProfile(profile)
	if prog.AwaitNewSession {
		return Outcome{}
	}

	triggered := trigger.MatchesAny(utterance, trigger.LearningTime)
	if trigger.MatchesAny(utterance, trigger.Spelling) {
		triggered = true
		if prog.Subject != SubjectSpelling {
			prog.Subject = SubjectSpelling
			prog.State = lesson.State{}
		}
	}
	if prog.Paused && !triggered {
		return Outcome{}
	}
	if triggered {
		prog.Paused = false
	}
	if !triggered && prog.Phase != PhaseLesson {
		return Outcome{}
	}

	mod, ok := r.modules[prog.Subject]
	if !ok {
		return Outcome{}
	}

	// A fresh trigger restarts from the opening prompt even if stale
	// lesson state survived a crash mid turn.
	if triggered && prog.Phase != PhaseLesson {
		prog.State = lesson.State{}
	}

	if !prog.State.Bool(startedKey) {
		text, state, emo := mod.Start(prog.Lesson)
		state[startedKey] = true
		prog.Phase = PhaseLesson
		prog.State = state
		return Outcome{
			Handled: true,
			Reply:   reply.Format(text, emo, nil),
			Update:  &prog,
		}
	}

	text, state, done, emo := mod.HandleTurn(prog.Lesson, utterance, prog.State)
	if done {
		nextSubject, nextLesson := Advance(prog.Subject, prog.Lesson)
		next := prog
		next.Subject = nextSubject
		next.Lesson = nextLesson
		next.Phase = PhaseChat
		next.State = lesson.State{}
		next.AwaitNewSession = true
		// The outro replaces the module's completion text and always
		// carries the Teacher tag.
		return Outcome{
			Handled: true,
			Reply:   reply.Format(closingRemark(kidName), reply.Teacher, nil),
			Update:  &next,
		}
	}

	state[startedKey] = true
	prog.Phase = PhaseLesson
	prog.State = state
	return Outcome{
		Handled: true,
		Reply:   reply.Format(text, emo, nil),
		Update:  &prog,
	}
}

// closingRemark is the end-of-lesson send-off, addressing the child by
// name when one is known.
func closingRemark(kidName string) string {
	name := strings.TrimSpace(kidName)
	if name == "" {
		return "احسنت خلصنا الدرس هسه سوالف وبعدين نكمل"
	}
	return fmt.Sprintf("احسنت %s خلصنا الدرس هسه سوالف وبعدين نكمل", name)
}
