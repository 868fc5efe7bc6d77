package emotion

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/paixi-lab/paixi/internal/llm"
	"github.com/paixi-lab/paixi/internal/reply"
)

func canned(raw string) llm.MockResponse {
	b, _ := json.Marshal(raw)
	return llm.MockResponse{Content: json.RawMessage(b)}
}

func TestAnalyzeStrictJSON(t *testing.T) {
	p := llm.NewMockProvider(canned(`{"emotion":"sad","brief_reason":"lost toy"}`))
	got := NewClassifier(p).Analyze(context.Background(), "ضاعت لعبتي")
	if got.Emotion != reply.Sad {
		t.Errorf("emotion = %s, want sad", got.Emotion)
	}
	if got.Reason != "lost toy" {
		t.Errorf("reason = %q", got.Reason)
	}
}

func TestAnalyzeJSONBuriedInProse(t *testing.T) {
	p := llm.NewMockProvider(canned(`Sure! {"emotion":"celebrate","brief_reason":"solved it"} hope that helps`))
	got := NewClassifier(p).Analyze(context.Background(), "حليت المسألة")
	if got.Emotion != reply.Celebrate {
		t.Errorf("emotion = %s, want celebrate", got.Emotion)
	}
}

func TestAnalyzeBareLabelFallback(t *testing.T) {
	p := llm.NewMockProvider(canned(`the child sounds frustration to me`))
	got := NewClassifier(p).Analyze(context.Background(), "ما اعرف الجواب")
	if got.Emotion != reply.Frustration {
		t.Errorf("emotion = %s, want frustration", got.Emotion)
	}
	if got.Reason != "fallback parse" {
		t.Errorf("reason = %q", got.Reason)
	}
}

func TestAnalyzeUnknownLabelCoercedToNormal(t *testing.T) {
	p := llm.NewMockProvider(canned(`{"emotion":"ecstatic","brief_reason":"x"}`))
	got := NewClassifier(p).Analyze(context.Background(), "هلا")
	if got.Emotion != reply.Normal {
		t.Errorf("emotion = %s, want normal", got.Emotion)
	}
}

func TestAnalyzeProviderFailure(t *testing.T) {
	p := llm.NewMockProvider() // empty queue returns provider unavailable
	got := NewClassifier(p).Analyze(context.Background(), "هلا")
	if got.Emotion != reply.Normal {
		t.Errorf("emotion = %s, want normal on provider failure", got.Emotion)
	}
}

func TestAnalyzeEmptyInputSkipsProvider(t *testing.T) {
	p := llm.NewMockProvider()
	got := NewClassifier(p).Analyze(context.Background(), "   ")
	if got.Emotion != reply.Normal {
		t.Errorf("emotion = %s, want normal", got.Emotion)
	}
	if p.CallCount() != 0 {
		t.Errorf("provider called %d times for empty input", p.CallCount())
	}
}

func TestAnalyzeSendsVerdictSchema(t *testing.T) {
	p := llm.NewMockProvider(canned(`{"emotion":"happy","brief_reason":"x"}`))
	NewClassifier(p).Analyze(context.Background(), "فرحان")

	if len(p.Calls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(p.Calls))
	}
	schema := p.Calls[0].Schema
	if schema == nil {
		t.Fatal("request carried no schema")
	}
	if schema.Name != "emotion-verdict" {
		t.Errorf("schema name = %q", schema.Name)
	}
	props, _ := schema.Definition["properties"].(map[string]any)
	emo, _ := props["emotion"].(map[string]any)
	labels, _ := emo["enum"].([]any)
	if len(labels) != len(reply.All()) {
		t.Errorf("schema enum has %d labels, want %d", len(labels), len(reply.All()))
	}
}

func TestAnalyzeReasonTruncated(t *testing.T) {
	long := make([]byte, 0, 200)
	for i := 0; i < 200; i++ {
		long = append(long, 'a')
	}
	p := llm.NewMockProvider(canned(`{"emotion":"happy","brief_reason":"` + string(long) + `"}`))
	got := NewClassifier(p).Analyze(context.Background(), "فرحان")
	if len(got.Reason) != maxReasonLen {
		t.Errorf("reason length = %d, want %d", len(got.Reason), maxReasonLen)
	}
}
