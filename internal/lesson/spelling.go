package lesson

import (
	"fmt"
	"strings"

	"github.com/paixi-lab/paixi/internal/arabic"
	"github.com/paixi-lab/paixi/internal/classify"
	"github.com/paixi-lab/paixi/internal/reply"
)

// spellingWords are the drill words, one per lesson, cycling once the
// catalog is exhausted.
var spellingWords = []string{"أرنب", "بطة", "تفاحة", "قلم"}

// Spelling stages.
const (
	stageItem  = "item"  // drilling one letter at a time
	stageWhole = "whole" // reciting the assembled word
)

// SpellingModule teaches spelling letter by letter, then asks for the
// whole word before ending the lesson.
type SpellingModule struct{}

func (SpellingModule) word(lessonNo int) string {
	if lessonNo < 1 {
		lessonNo = 1
	}
	return spellingWords[(lessonNo-1)%len(spellingWords)]
}

// letters returns the drillable letters of a word, skipping spaces and
// anything outside the Arabic block.
func letters(word string) []rune {
	var out []rune
	for _, r := range word {
		if arabic.IsArabicLetter(r) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		out = []rune{'ا'}
	}
	return out
}

func (m SpellingModule) Start(lessonNo int) (string, State, reply.Emotion) {
	word := m.word(lessonNo)
	first := letters(word)[0]
	text := fmt.Sprintf(
		"سنبدأ اليوم بحصة اللغة العربية سنتعلم تهجئة الاحرف اخترنا كلمة %s الحرف الاول هو %c قل بعدي %s",
		word, first, classify.LetterName(first),
	)
	return text, State{"stage": stageItem, "index": 0}, reply.Teacher
}

func (m SpellingModule) HandleTurn(lessonNo int, utterance string, state State) (string, State, bool, reply.Emotion) {
	word := m.word(lessonNo)
	ls := letters(word)
	next := state.Clone()

	stage := next.String("stage")
	if stage == "" {
		stage = stageItem
	}
	idx := next.Int("index")
	if idx < 0 || idx >= len(ls) {
		// Cursor out of range only happens on malformed caller state;
		// restart the letter walk rather than failing the turn.
		idx = 0
		stage = stageItem
	}
	next["stage"] = stage
	next["index"] = idx

	norm := arabic.Normalize(utterance)
	if norm == "" {
		return m.repeatPrompt(word, ls, stage, idx), next, false, reply.Teacher
	}

	if stage == stageWhole {
		return m.handleWhole(word, norm, next)
	}
	return m.handleLetter(word, ls, norm, idx, next)
}

func (m SpellingModule) handleLetter(word string, ls []rune, norm string, idx int, next State) (string, State, bool, reply.Emotion) {
	letter := ls[idx]
	name := classify.LetterName(letter)

	switch classify.Letter(norm, letter) {
	case classify.Correct:
		idx++
		if idx < len(ls) {
			next["index"] = idx
			nl := ls[idx]
			text := fmt.Sprintf("احسنت الحرف التالي هو %c قل بعدي %s", nl, classify.LetterName(nl))
			return text, next, false, reply.Celebrate
		}
		// All letters done: recite the assembled word.
		next["index"] = idx
		next["stage"] = stageWhole
		parts := make([]string, len(ls))
		for i, r := range ls {
			parts[i] = string(r)
		}
		spelled := strings.Join(parts, " ")
		text := fmt.Sprintf("احسنت الان لنجمع الاحرف %s تصبح %s قل بعدي %s", spelled, word, word)
		return text, next, false, reply.Celebrate

	case classify.Close:
		text := fmt.Sprintf("انت قريب من الاجابة حاول مرة اخرى قل %s", name)
		return text, next, false, reply.Frustration

	default:
		text := fmt.Sprintf("خطأ كرر محاولة مرة اخرى قل بعدي %s", name)
		return text, next, false, reply.Frustration
	}
}

func (m SpellingModule) handleWhole(word, norm string, next State) (string, State, bool, reply.Emotion) {
	switch classify.Word(norm, arabic.Normalize(word)) {
	case classify.Correct:
		return "انت رائع احسنت حقا وهنا تنتهي حصتنا لليوم", next, true, reply.Happy
	case classify.Close:
		return fmt.Sprintf("انت قريب من الاجابة قل بعدي %s", word), next, false, reply.Frustration
	default:
		return fmt.Sprintf("خطأ كرر محاولة مرة اخرى قل بعدي %s", word), next, false, reply.Frustration
	}
}

func (m SpellingModule) repeatPrompt(word string, ls []rune, stage string, idx int) string {
	if stage == stageWhole {
		return fmt.Sprintf("قل بعدي %s", word)
	}
	return fmt.Sprintf("قل بعدي %s", classify.LetterName(ls[idx]))
}
