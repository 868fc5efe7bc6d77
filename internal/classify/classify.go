package classify

import (
	"strings"

	"github.com/paixi-lab/paixi/internal/arabic"
)

// Letter judges a normalized answer against a single target letter.
//
// The rules run in a fixed priority order and short-circuit on the first
// match; inputs can satisfy several rules at once, so the order is part of
// the contract:
//
//  1. the letter itself               -> Correct
//  2. an accepted variant             -> Correct
//  3. a close variant                 -> Close
//  4. same starting sound             -> Close
//  5. prefix of / prefixed by variant -> Close
//  6. everything else                 -> Wrong
//
// Rules 4 and 5 are deliberately fuzzy. Short accepted variants make rule 5
// fire for unrelated words that merely share a prefix; that looseness
// absorbs speech-to-text noise and stays as-is.
func Letter(normAnswer string, letter rune) Verdict {
	rule, _ := ruleFor(letter)
	normLetter := arabic.Normalize(string(letter))

	if normAnswer == normLetter {
		return Correct
	}

	accepted := rule.normalizedAccepted()
	for _, v := range accepted {
		if normAnswer == v {
			return Correct
		}
	}

	for _, v := range rule.normalizedClose() {
		if normAnswer == v {
			return Close
		}
	}

	if normAnswer != "" && normLetter != "" {
		if []rune(normAnswer)[0] == []rune(normLetter)[0] {
			return Close
		}
	}

	for _, v := range accepted {
		if v == "" || normAnswer == "" {
			continue
		}
		if strings.HasPrefix(v, normAnswer) || strings.HasPrefix(normAnswer, v) {
			return Close
		}
	}

	return Wrong
}

// Word judges a full recited word against the target. Both arguments must
// already be normalized. Exact match (with or without interior spaces) is
// correct; an answer whose distinct-letter count reaches the target's
// distinct-letter count minus one is close enough for a retry prompt.
func Word(normAnswer, normTarget string) Verdict {
	if normAnswer == normTarget {
		return Correct
	}
	if strings.ReplaceAll(normAnswer, " ", "") == strings.ReplaceAll(normTarget, " ", "") {
		return Correct
	}

	if distinctRunes(normAnswer) >= max(1, distinctRunes(normTarget)-1) {
		return Close
	}
	return Wrong
}

// ContainsAny reports whether any keyword occurs inside the utterance.
// Both sides are compact-normalized so word spacing never blocks a match.
func ContainsAny(utterance string, keywords []string) bool {
	u := arabic.Compact(utterance)
	if u == "" {
		return false
	}
	for _, k := range keywords {
		nk := arabic.Compact(k)
		if nk != "" && strings.Contains(u, nk) {
			return true
		}
	}
	return false
}

// KeywordSets judges a free-form answer for keyword-set topics: any
// correct-set keyword wins outright, any partial-set keyword earns a hint,
// anything else is wrong (which routes to the hint stage, not a rebuke).
func KeywordSets(utterance string, correct, partial []string) Verdict {
	if ContainsAny(utterance, correct) {
		return Correct
	}
	if ContainsAny(utterance, partial) {
		return Close
	}
	return Wrong
}

func distinctRunes(s string) int {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		if r == ' ' {
			continue
		}
		seen[r] = struct{}{}
	}
	return len(seen)
}
