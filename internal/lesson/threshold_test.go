package lesson

import (
	"testing"

	"github.com/paixi-lab/paixi/internal/reply"
)

func TestPronunciation_SuccessOnSecondCorrect(t *testing.T) {
	m := PronunciationModule{}
	_, state, _ := m.Start(1)

	_, state, done, emo := m.HandleTurn(1, "ااا", state)
	if done {
		t.Fatal("first correct answer must not complete the lesson")
	}
	if emo != reply.Celebrate {
		t.Errorf("first correct: emotion = %v, want Celebrate", emo)
	}

	_, state, done, emo = m.HandleTurn(1, "ا ا ا", state)
	if !done {
		t.Fatal("second correct answer must complete the lesson")
	}
	if emo != reply.Celebrate {
		t.Errorf("second correct: emotion = %v, want Celebrate", emo)
	}
	if state.Int("correct") != 2 {
		t.Errorf("correct counter = %d, want 2", state.Int("correct"))
	}
}

func TestPronunciation_TenWrongForcesSkip(t *testing.T) {
	m := PronunciationModule{}
	_, state, _ := m.Start(1)

	var done bool
	var emo reply.Emotion
	for i := 0; i < 10; i++ {
		_, state, done, emo = m.HandleTurn(1, "شي ثاني", state)
		if i < 9 && done {
			t.Fatalf("lesson ended after %d wrong answers", i+1)
		}
	}
	if !done {
		t.Fatal("tenth wrong answer must force-complete the lesson")
	}
	if emo != reply.Frustration {
		t.Errorf("forced skip emotion = %v, want Frustration", emo)
	}
}

func TestWorld_KeywordMatch(t *testing.T) {
	m := WorldModule{}
	_, state, _ := m.Start(1)

	_, state, done, emo := m.HandleTurn(1, "الجذر يمتص الماء", state)
	if done || emo != reply.Celebrate {
		t.Errorf("keyword answer: done=%v emo=%v", done, emo)
	}

	_, _, done, _ = m.HandleTurn(1, "الجذر تحت الارض", state)
	if !done {
		t.Error("second keyword answer must complete the lesson")
	}
}

func TestWorld_WrongAnswerCounts(t *testing.T) {
	m := WorldModule{}
	_, state, _ := m.Start(1)

	_, next, done, emo := m.HandleTurn(1, "ما اعرف", state)
	if done || emo != reply.Frustration {
		t.Errorf("wrong answer: done=%v emo=%v", done, emo)
	}
	if next.Int("wrong") != 1 {
		t.Errorf("wrong counter = %d, want 1", next.Int("wrong"))
	}
}

func TestStories_CompletesImmediately(t *testing.T) {
	m := StoriesModule{}
	_, _, done, emo := m.HandleTurn(1, "اي شي", State{})
	if !done {
		t.Error("stub subject must complete immediately")
	}
	if emo != reply.Teacher {
		t.Errorf("emotion = %v, want Teacher", emo)
	}
}

func TestThreshold_StateCoercion(t *testing.T) {
	// Counters of the wrong JSON type coerce to zero instead of failing.
	m := PronunciationModule{}
	state := State{"correct": "not-a-number", "wrong": 3.0}

	_, next, done, _ := m.HandleTurn(1, "ااا", state)
	if done {
		t.Error("coerced correct counter should restart at 0, not complete")
	}
	if next.Int("correct") != 1 {
		t.Errorf("correct counter = %d, want 1", next.Int("correct"))
	}
}
