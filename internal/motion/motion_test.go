package motion

import (
	"testing"

	"github.com/paixi-lab/paixi/internal/reply"
)

func TestDecideKeywords(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"لف يمين", reply.MotionRight},
		{"روح يسار", reply.MotionLeft},
		{"امشي قدام", reply.MotionForward},
		{"ارجع للخلف", reply.MotionBack},
		{"وقف مكانك", reply.MotionStop},
		{"go LEFT now", reply.MotionLeft},
	}
	for _, c := range cases {
		got := Decide(c.text, 1)
		if got.Primary != c.want {
			t.Errorf("Decide(%q).Primary = %d, want %d", c.text, got.Primary, c.want)
		}
		if len(got.Sequence) != 1 || got.Sequence[0] != c.want {
			t.Errorf("Decide(%q).Sequence = %v", c.text, got.Sequence)
		}
	}
}

func TestDecideWholeWordOnly(t *testing.T) {
	// A keyword embedded in a longer word must not move the robot.
	got := Decide("يمينك حلو", 0)
	if got.Primary != 0 {
		t.Errorf("embedded keyword moved the robot: %d", got.Primary)
	}
}

func TestDecideHoldsDefault(t *testing.T) {
	got := Decide("شلونك اليوم", reply.MotionForward)
	if got.Primary != reply.MotionForward {
		t.Errorf("no keyword: Primary = %d, want default %d", got.Primary, reply.MotionForward)
	}
}

func TestSpontaneousSequencesEndInStop(t *testing.T) {
	for _, ev := range []string{EventVeryHappy, EventSad, EventWrongAnswer, "unknown"} {
		seq := SpontaneousFor(ev)
		if len(seq) == 0 || seq[len(seq)-1] != reply.MotionStop {
			t.Errorf("SpontaneousFor(%q) = %v, must end in stop", ev, seq)
		}
	}
	if got := SpontaneousFor(EventVeryHappy); len(got) != 7 {
		t.Errorf("very_happy sequence length = %d, want 7", len(got))
	}
}

func TestEventForEmotion(t *testing.T) {
	cases := []struct {
		emo  reply.Emotion
		want string
	}{
		{reply.Happy, EventVeryHappy},
		{reply.Sad, EventSad},
		{reply.Frustration, EventWrongAnswer},
		{reply.Normal, ""},
		{reply.Teacher, ""},
	}
	for _, c := range cases {
		if got := EventForEmotion(c.emo); got != c.want {
			t.Errorf("EventForEmotion(%s) = %q, want %q", c.emo, got, c.want)
		}
	}
}
