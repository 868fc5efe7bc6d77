package classify

import (
	"testing"

	"github.com/paixi-lab/paixi/internal/arabic"
)

func TestLetter_TargetItselfIsAlwaysCorrect(t *testing.T) {
	for letter := range letterRules {
		norm := arabic.Normalize(string(letter))
		if got := Letter(norm, letter); got != Correct {
			t.Errorf("Letter(%q, %q) = %v, want Correct", norm, letter, got)
		}
	}
}

func TestLetter_AcceptedVariant(t *testing.T) {
	if got := Letter(arabic.Normalize("باء"), 'ب'); got != Correct {
		t.Errorf("spoken name: got %v, want Correct", got)
	}
	if got := Letter(arabic.Normalize("ميم"), 'م'); got != Correct {
		t.Errorf("spoken name: got %v, want Correct", got)
	}
}

func TestLetter_HamzaAlefFoldsToAlefRule(t *testing.T) {
	if got := Letter(arabic.Normalize("ألف"), 'أ'); got != Correct {
		t.Errorf("alef with hamza: got %v, want Correct", got)
	}
}

func TestLetter_CloseVariant(t *testing.T) {
	if got := Letter(arabic.Normalize("بي"), 'ب'); got != Close {
		t.Errorf("close variant: got %v, want Close", got)
	}
}

func TestLetter_SameStartingSound(t *testing.T) {
	// Answer starting with the target letter's sound earns a retry.
	if got := Letter("بطه", 'ب'); got != Close {
		t.Errorf("same first letter: got %v, want Close", got)
	}
}

func TestLetter_PrefixHeuristic(t *testing.T) {
	// Accepted variant "اا" for teh marbuta is a prefix of the answer, and
	// only rule 5 can reach it (first letters differ after folding).
	if got := Letter("اااا", 'ة'); got != Close {
		t.Errorf("prefix overlap: got %v, want Close", got)
	}
}

func TestLetter_Wrong(t *testing.T) {
	if got := Letter("قطه", 'ب'); got != Wrong {
		t.Errorf("unrelated answer: got %v, want Wrong", got)
	}
}

func TestLetter_EmptyAnswer(t *testing.T) {
	if got := Letter("", 'ب'); got != Wrong {
		t.Errorf("empty answer: got %v, want Wrong", got)
	}
}

func TestWord(t *testing.T) {
	target := arabic.Normalize("أرنب")

	if got := Word(arabic.Normalize("أرنب"), target); got != Correct {
		t.Errorf("exact word: got %v, want Correct", got)
	}
	if got := Word(arabic.Normalize("ا ر ن ب"), target); got != Correct {
		t.Errorf("spaced-out word: got %v, want Correct", got)
	}
	// Three of four distinct letters shared: close, not complete.
	if got := Word(arabic.Normalize("ارني"), target); got != Close {
		t.Errorf("near miss: got %v, want Close", got)
	}
	if got := Word(arabic.Normalize("قط"), target); got != Wrong {
		t.Errorf("unrelated word: got %v, want Wrong", got)
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("الجذر يمتص الماء", []string{"يمتص", "ماء"}) {
		t.Error("expected keyword containment")
	}
	if ContainsAny("لا اعرف", []string{"يمتص", "ماء"}) {
		t.Error("expected no containment")
	}
	if ContainsAny("", []string{"يمتص"}) {
		t.Error("empty utterance must not match")
	}
}

func TestKeywordSets_Priority(t *testing.T) {
	correct := []string{"خياشيم", "يتنفس بالماء"}
	partial := []string{"اقدام", "يمشي"}

	if got := KeywordSets("السمك عنده خياشيم", correct, partial); got != Correct {
		t.Errorf("correct keyword: got %v, want Correct", got)
	}
	if got := KeywordSets("لانه ما عنده اقدام", correct, partial); got != Close {
		t.Errorf("partial keyword: got %v, want Close", got)
	}
	if got := KeywordSets("ما ادري", correct, partial); got != Wrong {
		t.Errorf("no keyword: got %v, want Wrong", got)
	}
}
