package lesson

import (
	"github.com/paixi-lab/paixi/internal/arabic"
	"github.com/paixi-lab/paixi/internal/reply"
)

// pronunciationLesson drills one target sound.
type pronunciationLesson struct {
	Target string
	Prompt string
}

var pronunciationLessons = []pronunciationLesson{
	{Target: "ااا", Prompt: "لفظ حرف الالف هكذا ااا وقلها بعدي"},
	{Target: "ءء", Prompt: "لفظ الهمزة هكذا ءء وقلها بعدي"},
	{Target: "اااأ", Prompt: "لفظ الالف هكذا اااأ وقلها بعدي"},
	{Target: "ى", Prompt: "لفظ الالف المقصورة هكذا ى وقلها بعدي"},
	{Target: "ىِ", Prompt: "لفظ الالف المقصورة مع الكسرة هكذا ىِ وقلها بعدي"},
}

// PronunciationModule asks the child to repeat a target sound until the
// success threshold is met.
type PronunciationModule struct{}

func (PronunciationModule) lesson(lessonNo int) pronunciationLesson {
	if lessonNo < 1 || lessonNo > len(pronunciationLessons) {
		return pronunciationLessons[0]
	}
	return pronunciationLessons[lessonNo-1]
}

func (m PronunciationModule) Start(lessonNo int) (string, State, reply.Emotion) {
	info := m.lesson(lessonNo)
	return info.Prompt, State{"correct": 0, "wrong": 0}, reply.Teacher
}

func (m PronunciationModule) HandleTurn(lessonNo int, utterance string, state State) (string, State, bool, reply.Emotion) {
	info := m.lesson(lessonNo)
	ok := arabic.Compact(utterance) == arabic.Compact(info.Target)

	return stepThreshold(state, ok, thresholdTexts{
		praiseDone:  "احسنت خلصنا الدرس",
		praiseAgain: "احسنت كررها مرة ثانية",
		skip:        "حسنا ننتقل للدرس التالي",
		retry:       "مو مثلها حاول مرة ثانية",
	})
}
