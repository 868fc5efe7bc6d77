package curriculum

import (
	"strings"
	"testing"

	"github.com/paixi-lab/paixi/internal/lesson"
	"github.com/paixi-lab/paixi/internal/reply"
)

func TestAdvanceCyclesSubjectsBeforeLesson(t *testing.T) {
	subject, lessonNo := SubjectPronunciation, 1
	want := []struct {
		subject Subject
		lesson  int
	}{
		{SubjectSpelling, 1},
		{SubjectStories, 1},
		{SubjectWorld, 1},
		{SubjectPronunciation, 2},
		{SubjectSpelling, 2},
	}
	for i, w := range want {
		subject, lessonNo = Advance(subject, lessonNo)
		if subject != w.subject || lessonNo != w.lesson {
			t.Fatalf("step %d: got %s/%d, want %s/%d", i, subject, lessonNo, w.subject, w.lesson)
		}
	}
}

func TestAdvanceClampsLesson(t *testing.T) {
	if _, n := Advance(SubjectWorld, 0); n != 2 {
		t.Errorf("lesson after wrap from clamped 0 = %d, want 2", n)
	}
}

func TestParseSubjectUnknownDefaultsToFirst(t *testing.T) {
	if got := ParseSubject("astronomy"); got != SubjectOrder[0] {
		t.Errorf("ParseSubject(astronomy) = %s, want %s", got, SubjectOrder[0])
	}
}

func profileWith(p Progress) map[string]any {
	return map[string]any{"progress": p.ToProfileField()}
}

func TestHandleEmptyUtteranceUnhandled(t *testing.T) {
	out := NewRouter().Handle(nil, "   ", "")
	if out.Handled {
		t.Fatal("blank utterance should fall through to chat")
	}
}

func TestHandleAwaitNewSessionGate(t *testing.T) {
	p := DefaultProgress()
	p.AwaitNewSession = true
	out := NewRouter().Handle(profileWith(p), "حان وقت التعلم", "")
	if out.Handled {
		t.Fatal("awaiting a new session must block even explicit lesson triggers")
	}
}

func TestHandleTriggerStartsLesson(t *testing.T) {
	out := NewRouter().Handle(nil, "يلا نتعلم", "")
	if !out.Handled {
		t.Fatal("learning trigger should start a lesson")
	}
	if !strings.Contains(out.Reply, "لفظ حرف الالف") {
		t.Errorf("reply %q missing pronunciation opening prompt", out.Reply)
	}
	if !strings.Contains(out.Reply, string(reply.Teacher)) {
		t.Errorf("reply %q not tagged as teacher emotion", out.Reply)
	}
	if out.Update == nil {
		t.Fatal("starting a lesson must persist progress")
	}
	if out.Update.Phase != PhaseLesson {
		t.Errorf("phase = %s, want %s", out.Update.Phase, PhaseLesson)
	}
	if !out.Update.State.Bool(startedKey) {
		t.Error("started flag not set in persisted state")
	}
}

func TestHandleLessonPhaseContinuesWithoutTrigger(t *testing.T) {
	r := NewRouter()
	started := NewRouter().Handle(nil, "وقت التعلم", "")
	if started.Update == nil {
		t.Fatal("start turn returned no update")
	}

	out := r.Handle(profileWith(*started.Update), "ااا", "")
	if !out.Handled {
		t.Fatal("lesson-phase turn should stay inside the lesson")
	}
	if !strings.Contains(out.Reply, "كررها مرة ثانية") {
		t.Errorf("first correct answer reply = %q, want repeat request", out.Reply)
	}
	if out.Update.State.Int("correct") != 1 {
		t.Errorf("correct counter = %d, want 1", out.Update.State.Int("correct"))
	}
}

func TestHandleCompletionAdvancesAndAwaits(t *testing.T) {
	r := NewRouter()
	prog := *NewRouter().Handle(nil, "وقت التعلم", "").Update

	first := r.Handle(profileWith(prog), "ااا", "")
	second := r.Handle(profileWith(*first.Update), "ااا", "سارة")
	if !second.Handled {
		t.Fatal("second correct answer should be handled")
	}
	up := second.Update
	if up == nil {
		t.Fatal("completion returned no update")
	}
	if up.Subject != SubjectSpelling || up.Lesson != 1 {
		t.Errorf("advanced to %s/%d, want %s/1", up.Subject, up.Lesson, SubjectSpelling)
	}
	if !up.AwaitNewSession {
		t.Error("completion must set await_new_session")
	}
	if up.Phase != PhaseChat {
		t.Errorf("phase after completion = %s, want %s", up.Phase, PhaseChat)
	}
	if len(up.State) != 0 {
		t.Errorf("lesson state after completion = %v, want empty", up.State)
	}
	if !strings.Contains(second.Reply, "سارة") {
		t.Errorf("closing remark %q missing child name", second.Reply)
	}
	if n := strings.Count(second.Reply, "خلصنا الدرس"); n != 1 {
		t.Errorf("send-off appears %d times in %q, want exactly once", n, second.Reply)
	}
	if !strings.Contains(second.Reply, "("+string(reply.Teacher)+")") {
		t.Errorf("closing remark %q not tagged %s", second.Reply, reply.Teacher)
	}
}

func TestHandlePausedGate(t *testing.T) {
	p := DefaultProgress()
	p.Paused = true

	if out := NewRouter().Handle(profileWith(p), "شلونك اليوم", ""); out.Handled {
		t.Fatal("paused curriculum must ignore ordinary chat")
	}

	out := NewRouter().Handle(profileWith(p), "حان وقت التعلم", "")
	if !out.Handled {
		t.Fatal("explicit trigger should resume a paused curriculum")
	}
	if out.Update.Paused {
		t.Error("resume must clear the paused flag")
	}
}

func TestHandleSpellingTriggerSwitchesSubject(t *testing.T) {
	out := NewRouter().Handle(nil, "نبدأ عربي", "")
	if !out.Handled {
		t.Fatal("spelling trigger should start the drill")
	}
	if out.Update.Subject != SubjectSpelling {
		t.Errorf("subject = %s, want %s", out.Update.Subject, SubjectSpelling)
	}
}

func TestHandleMalformedProfileCoerced(t *testing.T) {
	profile := map[string]any{"progress": map[string]any{
		"current_subject": "astronomy",
		"current_lesson":  "three",
		"phase":           42,
		"lesson_state":    "garbage",
	}}
	out := NewRouter().Handle(profile, "علمني", "")
	if !out.Handled {
		t.Fatal("corrupted progress must not wedge the curriculum")
	}
	if out.Update.Subject != SubjectOrder[0] || out.Update.Lesson != 1 {
		t.Errorf("coerced to %s/%d, want %s/1", out.Update.Subject, out.Update.Lesson, SubjectOrder[0])
	}
}

type panicModule struct{}

func (panicModule) Start(int) (string, lesson.State, reply.Emotion) {
	panic("boom")
}

func (panicModule) HandleTurn(int, string, lesson.State) (string, lesson.State, bool, reply.Emotion) {
	panic("boom")
}

func TestHandlePanicBecomesUnhandled(t *testing.T) {
	r := NewRouter()
	r.Register(SubjectPronunciation, panicModule{})
	out := r.Handle(nil, "وقت التعلم", "")
	if out.Handled {
		t.Fatal("module panic must degrade to free chat, not crash")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	p := Progress{
		Subject:         SubjectWorld,
		Lesson:          3,
		Phase:           PhaseLesson,
		State:           lesson.State{"correct": 1, startedKey: true},
		AwaitNewSession: false,
		Paused:          true,
	}
	got := FromProfile(profileWith(p))
	if got.Subject != p.Subject || got.Lesson != p.Lesson || got.Phase != p.Phase {
		t.Errorf("round trip position = %s/%d/%s, want %s/%d/%s",
			got.Subject, got.Lesson, got.Phase, p.Subject, p.Lesson, p.Phase)
	}
	if !got.Paused {
		t.Error("paused flag lost in round trip")
	}
	if got.State.Int("correct") != 1 || !got.State.Bool(startedKey) {
		t.Errorf("state lost in round trip: %v", got.State)
	}
}
