package persona

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paixi-lab/paixi/internal/llm"
	"github.com/paixi-lab/paixi/internal/reply"
)

func canned(raw string) llm.MockResponse {
	b, _ := json.Marshal(raw)
	return llm.MockResponse{Content: json.RawMessage(b)}
}

func TestReplyReturnsCleanedText(t *testing.T) {
	p := llm.NewMockProvider(canned(`"اهلا!! شلونك" <بيكسي>`))
	a := NewAgent(p, nil)
	got := a.Reply(context.Background(), Input{UserText: "هلا", Emotion: reply.Normal})
	if strings.ContainsAny(got, `"<>!`) {
		t.Errorf("reply %q still contains wire delimiters", got)
	}
	if !strings.Contains(got, "شلونك") {
		t.Errorf("reply %q lost its content", got)
	}
}

func TestReplyProviderFailureFallsBack(t *testing.T) {
	a := NewAgent(llm.NewMockProvider(), nil)
	got := a.Reply(context.Background(), Input{UserText: "هلا"})
	if got != fallbackReply {
		t.Errorf("reply = %q, want fallback greeting", got)
	}
}

func TestReplyEmptyOutputGetsDefault(t *testing.T) {
	p := llm.NewMockProvider(canned("12345 ok!"))
	a := NewAgent(p, nil)
	got := a.Reply(context.Background(), Input{UserText: "هلا"})
	if got != emptyReply {
		t.Errorf("reply = %q, want default prompt when nothing survives cleaning", got)
	}
}

func TestSystemPromptCarriesEmotionRules(t *testing.T) {
	p := llm.NewMockProvider(canned("اهلا"))
	a := NewAgent(p, nil)
	a.Reply(context.Background(), Input{
		UserText: "هلا",
		Emotion:  reply.Sad,
		Profile:  map[string]any{"name": "نور"},
	})
	if p.CallCount() != 1 {
		t.Fatalf("provider calls = %d", p.CallCount())
	}
	sys := p.Calls[0].System
	if !strings.Contains(sys, "Emotion label: sad") {
		t.Errorf("system prompt missing emotion label:\n%s", sys)
	}
	if !strings.Contains(sys, "نور") {
		t.Error("system prompt missing child profile")
	}
}

func TestKidNameAliases(t *testing.T) {
	cases := []struct {
		profile map[string]any
		want    string
	}{
		{map[string]any{"name": "علي"}, "علي"},
		{map[string]any{"kidName": "نور"}, "نور"},
		{map[string]any{"fullname": "  سارة  "}, "سارة"},
		{map[string]any{"age": 7}, DefaultKidName},
		{map[string]any{"name": ""}, DefaultKidName},
		{nil, DefaultKidName},
	}
	for _, c := range cases {
		if got := KidName(c.profile); got != c.want {
			t.Errorf("KidName(%v) = %q, want %q", c.profile, got, c.want)
		}
	}
}

func TestKnowledgeBaseBuildContext(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "learn_animal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fish.txt"), []byte("السمك يتنفس بالخياشيم"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skip.bin"), []byte("binary"), 0o644); err != nil {
		t.Fatal(err)
	}

	kb := NewKnowledgeBase(root)
	ctx := kb.BuildContext()
	if !strings.Contains(ctx, "[learn_animal/fish.txt]") {
		t.Errorf("context missing snippet header:\n%s", ctx)
	}
	if !strings.Contains(ctx, "السمك") {
		t.Error("context missing note body")
	}
	if strings.Contains(ctx, "binary") {
		t.Error("context picked up a non-note file")
	}
}

func TestKnowledgeBaseMissingRootIsEmpty(t *testing.T) {
	kb := NewKnowledgeBase(filepath.Join(t.TempDir(), "nope"))
	if got := kb.BuildContext(); got != "" {
		t.Errorf("context for missing root = %q, want empty", got)
	}
}

func TestKnowledgeBaseCapsContext(t *testing.T) {
	root := t.TempDir()
	for _, folder := range []string{"arabic_agent", "learn_animal", "learn_plants"} {
		dir := filepath.Join(root, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		big := strings.Repeat("ن", 2000)
		if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte(big), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := NewKnowledgeBase(root).BuildContext(); len(got) > contextCharsMax {
		t.Errorf("context length = %d, want <= %d", len(got), contextCharsMax)
	}
}
