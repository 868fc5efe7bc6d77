package topicqa

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/paixi-lab/paixi/internal/trigger"
)

func TestAnimalsFullWalkthrough(t *testing.T) {
	e := NewEngine(Animals())

	text, st := e.Start("علي")
	if !strings.Contains(text, "حصة الحيوانات") || !strings.Contains(text, "السمك") {
		t.Fatalf("intro = %q, want animal intro with first question", text)
	}

	// Correct on first try.
	text, st, active := e.Handle(st, "لانه يتنفس بالخياشيم", "علي")
	if !active || st.Stage != StageWantMore {
		t.Fatalf("correct answer: active=%v stage=%s", active, st.Stage)
	}
	if !strings.Contains(text, "احسنت علي") || !strings.Contains(text, "تحب سؤال ثاني") {
		t.Errorf("praise reply = %q", text)
	}

	// Yes advances to the camel topic.
	text, st, active = e.Handle(st, "نعم", "علي")
	if !active || st.TopicIndex != 1 || st.Stage != StageAsk {
		t.Fatalf("affirmative: active=%v topic=%d stage=%s", active, st.TopicIndex, st.Stage)
	}
	if !strings.Contains(text, "الجمل") {
		t.Errorf("next question reply = %q", text)
	}

	// Partial answer earns the partial acknowledgement plus hint.
	text, st, active = e.Handle(st, "يخزن ماء حتى يشرب", "علي")
	if !active || st.Stage != StageHint {
		t.Fatalf("partial answer: active=%v stage=%s", active, st.Stage)
	}
	if !strings.Contains(text, "اكو سبب اهم") {
		t.Errorf("partial ack = %q", text)
	}

	// Broadened keyword accepted after the hint.
	text, st, active = e.Handle(st, "طاقه", "علي")
	if !active || st.Stage != StageWantMore {
		t.Fatalf("post-hint: active=%v stage=%s", active, st.Stage)
	}
	if !strings.Contains(text, "تمام علي") {
		t.Errorf("post-hint reply = %q", text)
	}

	// Declining ends the drill with the sibling suggestion.
	text, _, active = e.Handle(st, "لا شكرا", "علي")
	if active {
		t.Fatal("declining another question should end the drill")
	}
	if !strings.Contains(text, "ندرس نباتات") {
		t.Errorf("farewell = %q, want plants suggestion", text)
	}
}

func TestStarterPhrasesOpenTheirDrill(t *testing.T) {
	animals := NewEngine(Animals())
	for _, phrase := range trigger.Animals {
		if !animals.Matches(phrase) {
			t.Errorf("animals drill ignores starter %q", phrase)
		}
	}
	plants := NewEngine(Plants())
	for _, phrase := range trigger.Plants {
		if !plants.Matches(phrase) {
			t.Errorf("plants drill ignores starter %q", phrase)
		}
	}
}

func TestStopPhraseWinsInEveryStage(t *testing.T) {
	e := NewEngine(Plants())
	for _, stage := range []Stage{StageAsk, StageHint, StageWantMore} {
		text, _, active := e.Handle(State{Stage: stage}, "خلاص وقف", "")
		if active {
			t.Errorf("stage %s: stop phrase did not end the drill", stage)
		}
		if !strings.Contains(text, "رجعنا للدردشة") {
			t.Errorf("stage %s: stop reply = %q", stage, text)
		}
		if !strings.Contains(text, "(normal)") {
			t.Errorf("stage %s: stop reply emotion = %q, want normal", stage, text)
		}
	}
}

func TestUnknownAnswerGetsHintThenSoftExplain(t *testing.T) {
	e := NewEngine(Plants())
	_, st := e.Start("")

	text, st, active := e.Handle(st, "ما ادري", "")
	if !active || st.Stage != StageHint {
		t.Fatalf("unknown answer: active=%v stage=%s", active, st.Stage)
	}
	if !strings.Contains(text, "تلميح صغير") {
		t.Errorf("unknown ack = %q", text)
	}

	text, st, active = e.Handle(st, "ما اعرف بعد", "")
	if !active || st.Stage != StageWantMore {
		t.Fatalf("failed hint: active=%v stage=%s", active, st.Stage)
	}
	if !strings.Contains(text, "ولا يهمك "+DefaultKidName) {
		t.Errorf("soft explain = %q", text)
	}
}

func TestTopicIndexWrapsAround(t *testing.T) {
	e := NewEngine(Animals())
	st := State{TopicIndex: len(Animals().Topics) - 1, Stage: StageWantMore}
	_, st, active := e.Handle(st, "اي", "")
	if !active || st.TopicIndex != 0 {
		t.Errorf("after last topic: active=%v index=%d, want wrap to 0", active, st.TopicIndex)
	}
}

func TestManagerStartsAndRoutesDrills(t *testing.T) {
	m := NewManager()

	if _, handled := m.Handle("s1", "شلونك اليوم", ""); handled {
		t.Fatal("ordinary chat must not start a drill")
	}

	text, handled := m.Handle("s1", "خلينا نتعلم نباتات", "نور")
	if !handled || !strings.Contains(text, "حصة النباتات") {
		t.Fatalf("plant trigger: handled=%v text=%q", handled, text)
	}
	if !m.InSession("s1") {
		t.Fatal("session should be inside the drill")
	}

	// The stop phrase ends the drill and clears the session.
	if _, handled := m.Handle("s1", "خلاص", "نور"); !handled {
		t.Fatal("stop phrase should be consumed by the active drill")
	}
	if m.InSession("s1") {
		t.Error("stop phrase should clear the active drill")
	}
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	m := NewManager()
	m.Handle("a", "learn animals", "")
	m.Handle("b", "learn plants", "")

	// Session a answers its fish question; session b must stay on plants.
	textA, _ := m.Handle("a", "خياشيم", "")
	if !strings.Contains(textA, "السمك يتنفس بالخياشيم") {
		t.Errorf("session a reply = %q", textA)
	}
	textB, _ := m.Handle("b", "يصنع غذاءه", "")
	if !strings.Contains(textB, "التمثيل الضوئي") {
		t.Errorf("session b reply = %q", textB)
	}
}

func TestManagerConcurrentSessions(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sid := fmt.Sprintf("s%d", id)
			m.Handle(sid, "حيوانات", "")
			m.Handle(sid, "خياشيم", "")
			m.Handle(sid, "نعم", "")
			m.Reset(sid)
		}(i)
	}
	wg.Wait()
	for i := 0; i < 16; i++ {
		if m.InSession(fmt.Sprintf("s%d", i)) {
			t.Errorf("session s%d not reset", i)
		}
	}
}
