// Package emotion classifies a child's utterance into one of the fixed
// emotion labels the robot face understands.
package emotion

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/paixi-lab/paixi/internal/llm"
	"github.com/paixi-lab/paixi/internal/reply"
)

const systemPrompt = `You are an emotion classifier for a friendly robot talking to children (5-12).
Return STRICT JSON ONLY (no extra text) with keys: emotion, brief_reason.
emotion must be exactly one of:
normal, happy, sad, encourage, fraid, Gratitude, Teacher, celebrate, frustration
brief_reason must be short (max 120 chars).

Rules:
- normal: everyday chat / neutral.
- happy: excitement, good news.
- sad: sadness, loss, needs comfort.
- encourage: child asks for motivation / wants to try again.
- fraid: fear or worry.
- Gratitude: thanks.
- Teacher: child asks to learn / asks a question.
- celebrate: solved something / success.
- frustration: upset because wrong/failed.`

const maxReasonLen = 120

// verdictSchema constrains providers with structured output to the wire
// labels. The lenient parse below still covers providers that ignore it.
func verdictSchema() *llm.Schema {
	labels := make([]any, 0, len(reply.All()))
	for _, e := range reply.All() {
		labels = append(labels, string(e))
	}
	return &llm.Schema{
		Name:        "emotion-verdict",
		Description: "Emotion label for a child's utterance with a short reason",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"emotion":      map[string]any{"type": "string", "enum": labels},
				"brief_reason": map[string]any{"type": "string", "maxLength": maxReasonLen},
			},
			"required": []any{"emotion", "brief_reason"},
		},
	}
}

// Result is one classification outcome.
type Result struct {
	Emotion reply.Emotion
	Reason  string
}

// Classifier labels utterances via an LLM provider. Any provider failure
// degrades to the normal label so the conversation never stalls.
type Classifier struct {
	provider llm.Provider
}

func NewClassifier(p llm.Provider) *Classifier {
	return &Classifier{provider: p}
}

// Analyze classifies one utterance.
func (c *Classifier) Analyze(ctx context.Context, userText string) Result {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return Result{Emotion: reply.Normal, Reason: "empty input"}
	}

	ctx = llm.WithPurpose(ctx, "emotion-classify")
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:    systemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: userText}},
		Schema:    verdictSchema(),
		MaxTokens: 200,
	})
	if err != nil || resp == nil {
		return Result{Emotion: reply.Normal, Reason: "classifier unavailable"}
	}

	return parseResult(rawText(resp.Content))
}

// rawText unwraps a JSON-string-wrapped response; providers without a
// schema return the text wrapped that way.
func rawText(content json.RawMessage) string {
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}
	return string(content)
}

type wireResult struct {
	Emotion     string `json:"emotion"`
	BriefReason string `json:"brief_reason"`
}

// parseResult is deliberately lenient: models occasionally wrap the JSON
// in prose, so it tries direct decode, then the first {...} span, then a
// bare label scan. Anything else is normal.
func parseResult(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{Emotion: reply.Normal, Reason: "empty output"}
	}

	var wr wireResult
	if err := json.Unmarshal([]byte(raw), &wr); err == nil && wr.Emotion != "" {
		return fromWire(wr)
	}

	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &wr); err == nil && wr.Emotion != "" {
			return fromWire(wr)
		}
	}

	for _, e := range reply.All() {
		if strings.Contains(raw, string(e)) {
			return Result{Emotion: e, Reason: "fallback parse"}
		}
	}
	return Result{Emotion: reply.Normal, Reason: "fallback parse"}
}

func fromWire(wr wireResult) Result {
	reason := strings.TrimSpace(wr.BriefReason)
	if len(reason) > maxReasonLen {
		reason = reason[:maxReasonLen]
	}
	return Result{Emotion: reply.Parse(wr.Emotion), Reason: reason}
}
