package trigger

import "testing"

func TestMatchesAny_Normalized(t *testing.T) {
	// Diacritics and hamza variants must not block a match.
	if !MatchesAny("أريدُ أتعلّم", LearningTime) {
		t.Error("expected diacritized learning phrase to match")
	}
	if !MatchesAny("يلا خلينا نتعلم سوا", LearningTime) {
		t.Error("expected embedded learning phrase to match")
	}
	if MatchesAny("شلونك اليوم", LearningTime) {
		t.Error("plain chat must not trigger learning")
	}
}

func TestMatchesAny_SubstringSemantics(t *testing.T) {
	// "درس العلوم" contains "علوم" context; the longer phrase matches on
	// the shorter entry too. Accepted behavior, not a bug.
	if !MatchesAny("ابدي درس العلوم حالا", LearningTime) {
		t.Error("expected longer phrase containing a trigger to match")
	}
}

func TestMatchesAny_LatinScript(t *testing.T) {
	if !MatchesAny("Learn Animals please", Animals) {
		t.Error("expected case-insensitive latin trigger to match")
	}
}

func TestMatchesAny_Empty(t *testing.T) {
	if MatchesAny("", Stop) {
		t.Error("empty utterance must not match")
	}
}

func TestIsPause(t *testing.T) {
	if !IsPause("اجله يا بيكسي") {
		t.Error("expected pause phrase to match")
	}
	if !IsPause("اجلهيابيكسي") {
		t.Error("expected space-stripped pause phrase to match")
	}
	if IsPause("خلينا نلعب") {
		t.Error("unrelated text must not pause")
	}
}
