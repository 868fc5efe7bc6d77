package lesson

import (
	"strings"
	"testing"

	"github.com/paixi-lab/paixi/internal/reply"
)

func TestSpelling_FullWalkthrough(t *testing.T) {
	m := SpellingModule{}

	// Lesson 1 drills أرنب: four letters, then the whole word.
	text, state, emo := m.Start(1)
	if emo != reply.Teacher {
		t.Errorf("start emotion = %v, want Teacher", emo)
	}
	if !strings.Contains(text, "أرنب") {
		t.Errorf("start prompt missing the word: %q", text)
	}

	answers := []string{"ألف", "راء", "نون", "باء"}
	for i, ans := range answers {
		var done bool
		text, state, done, emo = m.HandleTurn(1, ans, state)
		if done {
			t.Fatalf("letter %d: lesson ended early", i)
		}
		if emo != reply.Celebrate {
			t.Errorf("letter %d: emotion = %v, want Celebrate", i, emo)
		}
	}

	if state.String("stage") != stageWhole {
		t.Fatalf("stage = %q after all letters, want %q", state.String("stage"), stageWhole)
	}
	if state.Int("index") != 4 {
		t.Errorf("cursor = %d after all letters, want 4", state.Int("index"))
	}

	text, _, done, emo := m.HandleTurn(1, "أرنب", state)
	if !done {
		t.Error("whole-word recitation should complete the lesson")
	}
	if emo != reply.Happy {
		t.Errorf("completion emotion = %v, want Happy", emo)
	}
	if !strings.Contains(text, "رائع") {
		t.Errorf("completion text = %q", text)
	}
}

func TestSpelling_WholeStageNearMissReprompts(t *testing.T) {
	m := SpellingModule{}
	state := State{"stage": stageWhole, "index": 4}

	// Three of four distinct letters shared: close, so re-prompt.
	_, next, done, emo := m.HandleTurn(1, "ارني", state)
	if done {
		t.Error("near miss must not complete the lesson")
	}
	if emo != reply.Frustration {
		t.Errorf("emotion = %v, want Frustration", emo)
	}
	if next.String("stage") != stageWhole {
		t.Errorf("stage regressed to %q", next.String("stage"))
	}
}

func TestSpelling_CloseKeepsCursor(t *testing.T) {
	m := SpellingModule{}
	_, state, _ := m.Start(1)

	// First letter of أرنب is alef; an answer sharing only the starting
	// sound is close, and the cursor must not move.
	_, next, done, emo := m.HandleTurn(1, "ارانب", state)
	if done {
		t.Error("close answer must not complete")
	}
	if emo != reply.Frustration {
		t.Errorf("emotion = %v, want Frustration", emo)
	}
	if next.Int("index") != 0 {
		t.Errorf("cursor moved to %d on close answer", next.Int("index"))
	}
}

func TestSpelling_WrongKeepsCursor(t *testing.T) {
	m := SpellingModule{}
	_, state, _ := m.Start(1)

	text, next, done, emo := m.HandleTurn(1, "قطة", state)
	if done || emo != reply.Frustration {
		t.Errorf("wrong answer: done=%v emo=%v", done, emo)
	}
	if next.Int("index") != 0 {
		t.Errorf("cursor moved to %d on wrong answer", next.Int("index"))
	}
	if !strings.Contains(text, "خطأ") {
		t.Errorf("wrong answer should get the stronger retry text, got %q", text)
	}
}

func TestSpelling_EmptyUtteranceRepeatsPrompt(t *testing.T) {
	m := SpellingModule{}
	_, state, _ := m.Start(1)

	text, _, done, emo := m.HandleTurn(1, "   ", state)
	if done {
		t.Error("empty utterance must not complete")
	}
	if emo != reply.Teacher {
		t.Errorf("emotion = %v, want Teacher", emo)
	}
	if !strings.Contains(text, "قل بعدي") {
		t.Errorf("expected repeat prompt, got %q", text)
	}
}

func TestSpelling_MalformedCursorResets(t *testing.T) {
	m := SpellingModule{}
	state := State{"stage": stageItem, "index": 99}

	_, next, done, _ := m.HandleTurn(1, "ألف", state)
	if done {
		t.Error("recovered turn must not complete")
	}
	if next.Int("index") != 1 {
		t.Errorf("cursor = %d after recovery + correct answer, want 1", next.Int("index"))
	}
}
