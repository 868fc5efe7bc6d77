package arabic

import "testing"

func TestNormalize_Folding(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"quotes trimmed", `"أرنب"`, "ارنب"},
		{"tatweel removed", "بـــاء", "باء"},
		{"diacritics removed", "بَاء", "باء"},
		{"hamza alef folded", "أإآ", "ااا"},
		{"teh marbuta folded", "بطة", "بطه"},
		{"alef maksura folded", "مستشفى", "مستشفي"},
		{"waw hamza folded", "مؤمن", "مومن"},
		{"yeh hamza folded", "بئر", "بير"},
		{"punctuation to space", "مرحبا، كيف", "مرحبا كيف"},
		{"whitespace collapsed", "  مرحبا   بك  ", "مرحبا بك"},
		{"latin and digits kept", "hello 123 مرحبا", "hello 123 مرحبا"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		`"حصة اللغة العربية"`,
		"أُريدُ أنْ أتعلّم",
		"بـــاءٌ، وتاء!",
		"hello مرحبا 42",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCompact_RemovesInteriorSpace(t *testing.T) {
	if got := Compact("ا ا ا"); got != "ااا" {
		t.Errorf("Compact = %q, want %q", got, "ااا")
	}
}

func TestCleanPlain(t *testing.T) {
	if got := CleanPlain(`احسنت! "رائع" 100%`, 0); got != "احسنت رائع" {
		t.Errorf("CleanPlain = %q, want %q", got, "احسنت رائع")
	}

	// Diacritics survive cleaning: prompts may demonstrate vowel marks.
	if got := CleanPlain("ىِ", 0); got != "ىِ" {
		t.Errorf("CleanPlain dropped diacritic: got %q", got)
	}
}

func TestCleanPlain_CapsAtWordBoundary(t *testing.T) {
	got := CleanPlain("كلمة اولى كلمة ثانية", 12)
	if got != "كلمة اولى" {
		t.Errorf("CleanPlain capped = %q, want %q", got, "كلمة اولى")
	}
}
