package classify

import "github.com/paixi-lab/paixi/internal/arabic"

// LetterRule holds the spoken name of a letter plus the answer variants a
// speech-to-text transcript may produce for it. Accepted variants count as
// correct, close variants earn a retry hint.
type LetterRule struct {
	Name     string
	Accepted []string
	Close    []string
}

// letterRules maps each base letter to its rule. Keys are the folded forms
// produced by arabic.FoldLetter, except teh marbuta and hamza which keep
// dedicated entries.
var letterRules = map[rune]LetterRule{
	'ا': {Name: "ألف", Accepted: []string{"الف", "ا", "الِف", "ألف"}, Close: []string{"الفه", "الـف"}},
	'ب': {Name: "باء", Accepted: []string{"باء", "با", "ب"}, Close: []string{"با", "بي"}},
	'ت': {Name: "تاء", Accepted: []string{"تاء", "تا", "ت"}, Close: []string{"تا", "تي"}},
	'ث': {Name: "ثاء", Accepted: []string{"ثاء", "ثا", "ث"}, Close: []string{"ثا"}},
	'ج': {Name: "جيم", Accepted: []string{"جيم", "جي", "ج"}, Close: []string{"جي"}},
	'ح': {Name: "حاء", Accepted: []string{"حاء", "حا", "ح"}, Close: []string{"حا"}},
	'خ': {Name: "خاء", Accepted: []string{"خاء", "خا", "خ"}, Close: []string{"خا"}},
	'د': {Name: "دال", Accepted: []string{"دال", "دا", "د"}, Close: []string{"دا"}},
	'ذ': {Name: "ذال", Accepted: []string{"ذال", "ذا", "ذ"}, Close: []string{"ذا"}},
	'ر': {Name: "راء", Accepted: []string{"راء", "را", "ر"}, Close: []string{"را"}},
	'ز': {Name: "زاي", Accepted: []string{"زاي", "زا", "ز"}, Close: []string{"زا"}},
	'س': {Name: "سين", Accepted: []string{"سين", "سي", "س"}, Close: []string{"سي"}},
	'ش': {Name: "شين", Accepted: []string{"شين", "شي", "ش"}, Close: []string{"شي"}},
	'ص': {Name: "صاد", Accepted: []string{"صاد", "صا", "ص"}, Close: []string{"صا"}},
	'ض': {Name: "ضاد", Accepted: []string{"ضاد", "ضا", "ض"}, Close: []string{"ضا"}},
	'ط': {Name: "طاء", Accepted: []string{"طاء", "طا", "ط"}, Close: []string{"طا"}},
	'ظ': {Name: "ظاء", Accepted: []string{"ظاء", "ظا", "ظ"}, Close: []string{"ظا"}},
	'ع': {Name: "عين", Accepted: []string{"عين", "عي", "ع"}, Close: []string{"عي"}},
	'غ': {Name: "غين", Accepted: []string{"غين", "غي", "غ"}, Close: []string{"غي"}},
	'ف': {Name: "فاء", Accepted: []string{"فاء", "فا", "ف"}, Close: []string{"فا"}},
	'ق': {Name: "قاف", Accepted: []string{"قاف", "قا", "ق"}, Close: []string{"قا"}},
	'ك': {Name: "كاف", Accepted: []string{"كاف", "كا", "ك"}, Close: []string{"كا"}},
	'ل': {Name: "لام", Accepted: []string{"لام", "لا", "ل"}, Close: []string{"لا"}},
	'م': {Name: "ميم", Accepted: []string{"ميم", "مي", "م"}, Close: []string{"مي"}},
	'ن': {Name: "نون", Accepted: []string{"نون", "نو", "ن"}, Close: []string{"نو"}},
	'ه': {Name: "هاء", Accepted: []string{"هاء", "ها", "ه"}, Close: []string{"ها"}},
	'و': {Name: "واو", Accepted: []string{"واو", "وا", "و"}, Close: []string{"وا"}},
	'ي': {Name: "ياء", Accepted: []string{"ياء", "يا", "ي"}, Close: []string{"يا"}},
	'ة': {Name: "تاء مربوطة", Accepted: []string{"تاء مربوطة", "ه", "ة", "اا", "آآ", "ااا"}, Close: []string{"ا", "aa"}},
	'ء': {Name: "همزة", Accepted: []string{"همزة", "ء"}, Close: []string{"ا"}},
}

// ruleFor resolves the rule for a letter, folding hamza-carrying alef
// variants onto the bare alef entry. Teh marbuta keeps its own entry.
func ruleFor(letter rune) (LetterRule, bool) {
	key := letter
	if key == 'أ' || key == 'إ' || key == 'آ' {
		key = 'ا'
	}
	r, ok := letterRules[key]
	return r, ok
}

// LetterName returns the spoken name of a letter, or a generic fallback
// for anything outside the catalog.
func LetterName(letter rune) string {
	if r, ok := ruleFor(letter); ok {
		return r.Name
	}
	return "هذا الحرف"
}

// normalizedAccepted returns the rule's accepted variants in normalized form.
func (r LetterRule) normalizedAccepted() []string {
	out := make([]string, 0, len(r.Accepted))
	for _, v := range r.Accepted {
		out = append(out, arabic.Normalize(v))
	}
	return out
}

// normalizedClose returns the rule's close variants in normalized form.
func (r LetterRule) normalizedClose() []string {
	out := make([]string, 0, len(r.Close))
	for _, v := range r.Close {
		out = append(out, arabic.Normalize(v))
	}
	return out
}
