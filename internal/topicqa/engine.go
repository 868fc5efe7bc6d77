package topicqa

import (
	"fmt"

	"github.com/paixi-lab/paixi/internal/classify"
	"github.com/paixi-lab/paixi/internal/reply"
	"github.com/paixi-lab/paixi/internal/trigger"
)

// Stage is the drill's position inside the current topic.
type Stage string

const (
	StageAsk      Stage = "ask"
	StageHint     Stage = "hint"
	StageWantMore Stage = "want_more"
)

// State is one session's position in a drill. The zero value means the
// first topic at the ask stage.
type State struct {
	TopicIndex int
	Stage      Stage
}

// DefaultKidName addresses a child whose name is unknown.
const DefaultKidName = "صديقي"

// Engine runs one catalog's Q&A. It holds no per-session state; callers
// thread State through Handle.
type Engine struct {
	catalog Catalog
}

func NewEngine(c Catalog) *Engine {
	return &Engine{catalog: c}
}

// Matches reports whether the utterance asks to start this drill.
func (e *Engine) Matches(utterance string) bool {
	return trigger.MatchesAny(utterance, e.catalog.Starters)
}

// Start opens the drill at the first topic.
func (e *Engine) Start(kidName string) (string, State) {
	name := kidOrDefault(kidName)
	text := fmt.Sprintf(e.catalog.IntroFormat, name, e.catalog.Topics[0].Question)
	return reply.Format(text, reply.Teacher, nil), State{Stage: StageAsk}
}

// Handle advances the drill by one turn. It returns the formatted reply,
// the next state, and whether the drill is still active. Stop phrases win
// over stage logic in every stage.
func (e *Engine) Handle(st State, utterance, kidName string) (string, State, bool) {
	name := kidOrDefault(kidName)

	if trigger.MatchesAny(utterance, trigger.Stop) {
		text := fmt.Sprintf("تمام %s رجعنا للدردشة", name)
		return reply.Format(text, reply.Normal, nil), State{}, false
	}

	if st.TopicIndex < 0 || st.TopicIndex >= len(e.catalog.Topics) {
		st = State{Stage: StageAsk}
	}
	topic := e.catalog.Topics[st.TopicIndex]

	switch st.Stage {
	case StageHint:
		ok := classify.ContainsAny(utterance, topic.Correct) ||
			classify.ContainsAny(utterance, e.catalog.Broadened)
		st.Stage = StageWantMore
		var text string
		if ok {
			text = fmt.Sprintf("تمام %s %s تحب سؤال ثاني", name, topic.Explain)
		} else {
			text = fmt.Sprintf("ولا يهمك %s %s تحب سؤال ثاني", name, topic.Explain)
		}
		return reply.Format(text, reply.Teacher, nil), st, true

	case StageWantMore:
		if trigger.MatchesAny(utterance, trigger.Affirmative) {
			st.TopicIndex = (st.TopicIndex + 1) % len(e.catalog.Topics)
			st.Stage = StageAsk
			text := fmt.Sprintf("حلو %s السؤال الجديد %s", name, e.catalog.Topics[st.TopicIndex].Question)
			return reply.Format(text, reply.Teacher, nil), st, true
		}
		text := fmt.Sprintf(e.catalog.Farewell, name)
		return reply.Format(text, reply.Teacher, nil), State{}, false

	default: // StageAsk
		switch classify.KeywordSets(utterance, topic.Correct, topic.Partial) {
		case classify.Correct:
			st.Stage = StageWantMore
			text := fmt.Sprintf("احسنت %s %s تحب سؤال ثاني", name, topic.Explain)
			return reply.Format(text, reply.Teacher, nil), st, true
		case classify.Close:
			st.Stage = StageHint
			text := fmt.Sprintf(e.catalog.PartialAck, topic.Hint)
			return reply.Format(text, reply.Teacher, nil), st, true
		default:
			st.Stage = StageHint
			text := fmt.Sprintf(e.catalog.UnknownAck, topic.Hint)
			return reply.Format(text, reply.Teacher, nil), st, true
		}
	}
}

func kidOrDefault(name string) string {
	if name == "" {
		return DefaultKidName
	}
	return name
}
