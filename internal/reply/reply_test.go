package reply

import "testing"

func TestFormat_WireShape(t *testing.T) {
	got := Format("احسنت", Celebrate, []int{1, 1, 2, 2, 0})
	want := `"احسنت" (celebrate) <1><1><2><2><0>`
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormat_DefaultMotion(t *testing.T) {
	got := Format("اهلا", Normal, nil)
	want := `"اهلا" (normal) <0>`
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestSanitize_StripsDelimiters(t *testing.T) {
	got := Sanitize(`قال "مرحبا" (بصوت عال) <بسرعة>`)
	want := "قال مرحبا بصوت عال بسرعة"
	if got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitize_KeepsLettersDigitsWhitespace(t *testing.T) {
	got := Sanitize("abc 123 مرحبا!؟")
	want := "abc 123 مرحبا"
	if got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}

func TestParse_UnknownLabelFallsBack(t *testing.T) {
	if got := Parse("furious"); got != Normal {
		t.Errorf("Parse(furious) = %v, want normal", got)
	}
	if got := Parse("Teacher"); got != Teacher {
		t.Errorf("Parse(Teacher) = %v, want Teacher", got)
	}
}
