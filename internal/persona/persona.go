// Package persona produces the free-chat voice of the companion: a short
// Arabic reply in character, tuned by the classified emotion and the
// child's profile.
package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paixi-lab/paixi/internal/arabic"
	"github.com/paixi-lab/paixi/internal/llm"
	"github.com/paixi-lab/paixi/internal/reply"
)

// DefaultKidName addresses a child whose profile has no name.
const DefaultKidName = "صديقي"

const (
	fallbackReply = "اهلا يا صديقي"
	emptyReply    = "شنو تحب نسوي هسه"
	maxReplyLen   = 120
)

// Input carries one turn's context into the persona.
type Input struct {
	UserText   string
	Emotion    reply.Emotion
	MotionInt  int
	Profile    map[string]any
	ExtraEvent string
	// LanguageMode: "auto", "fusha", or "iraqi".
	LanguageMode string
}

// Agent generates persona replies via an LLM provider.
type Agent struct {
	provider llm.Provider
	kb       *KnowledgeBase
}

func NewAgent(p llm.Provider, kb *KnowledgeBase) *Agent {
	return &Agent{provider: p, kb: kb}
}

// Reply returns the persona's plain-text answer, already cleaned for the
// quoted segment of the wire format. Provider failures degrade to a
// friendly greeting rather than an error.
func (a *Agent) Reply(ctx context.Context, in Input) string {
	ctx = llm.WithPurpose(ctx, "persona-chat")
	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      a.systemPrompt(in),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: strings.TrimSpace(in.UserText)}},
		MaxTokens:   300,
		Temperature: 0.6,
	})

	out := ""
	if err == nil && resp != nil {
		var s string
		if jsonErr := json.Unmarshal(resp.Content, &s); jsonErr == nil {
			out = s
		} else {
			out = string(resp.Content)
		}
	} else {
		out = fallbackReply
	}

	clean := arabic.CleanPlain(out, maxReplyLen)
	if clean == "" {
		return emptyReply
	}
	return clean
}

func (a *Agent) systemPrompt(in Input) string {
	style := "Write in Arabic. Keep sentences short (for age 5-12). " +
		"Avoid long paragraphs. Avoid emojis unless the child used them first."
	switch in.LanguageMode {
	case "fusha":
		style = "Write in Modern Standard Arabic only. Keep it short and simple."
	case "iraqi":
		style = "Write in Iraqi Arabic (لهجة عراقية) but still clear. Keep it short."
	}

	profileJSON := "{}"
	if in.Profile != nil {
		if b, err := json.Marshal(in.Profile); err == nil {
			profileJSON = string(b)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are \"Paixi\" — a friendly robot for kids (5-12).\n")
	b.WriteString("Personality: kind, optimistic, responsible, smart when teaching. Simple & short sentences.\n\n")
	fmt.Fprintf(&b, "Child profile: %s\n\n", profileJSON)
	b.WriteString("Current Context:\n")
	fmt.Fprintf(&b, "- Emotion label: %s\n", in.Emotion)
	fmt.Fprintf(&b, "- Motion command (int): %d\n", in.MotionInt)
	fmt.Fprintf(&b, "- Optional event: %s\n\n", in.ExtraEvent)
	b.WriteString("Behavior rules:\n")
	b.WriteString("- If emotion is \"sad\": comfort + encourage gently.\n")
	b.WriteString("- If emotion is \"fraid\": reassure safety.\n")
	b.WriteString("- If emotion is \"Teacher\": answer as a tiny lesson + ask a small question.\n")
	b.WriteString("- If emotion is \"celebrate\": praise.\n")
	b.WriteString("- If emotion is \"frustration\": calm them and give a small hint.\n")
	b.WriteString("- Otherwise: friendly chat + one question.\n\n")
	b.WriteString(style)

	if a.kb != nil {
		if kbContext := a.kb.BuildContext(); kbContext != "" {
			b.WriteString("\n\nLocal learning notes (may be used when helpful):\n")
			b.WriteString(kbContext)
		}
	}
	return b.String()
}

// KidName pulls the child's name out of a profile map, checking the key
// aliases different clients send.
func KidName(profile map[string]any) string {
	for _, key := range []string{"name", "kidName", "fullname", "child", "kid"} {
		if v, ok := profile[key].(string); ok {
			if name := strings.TrimSpace(v); name != "" {
				return name
			}
		}
	}
	return DefaultKidName
}
