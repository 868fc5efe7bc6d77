package lesson

import (
	"fmt"

	"github.com/paixi-lab/paixi/internal/classify"
	"github.com/paixi-lab/paixi/internal/reply"
)

// worldLesson carries one simple fact and the keywords that show the
// child retold a piece of it.
type worldLesson struct {
	Topic    string
	Fact     string
	Keywords []string
}

var worldLessons = []worldLesson{
	{Topic: "الجذر", Fact: "الجذر جزء تحت الارض يمسك النبات ويمتص الماء", Keywords: []string{"جذر", "يمتص", "ماء", "تحت", "ارض"}},
	{Topic: "الساق", Fact: "الساق يحمل الاوراق والزهور وينقل الماء داخل النبات", Keywords: []string{"ساق", "يحمل", "ينقل", "ماء", "نبات"}},
	{Topic: "الورق", Fact: "الورق يصنع غذاء النبات بمساعدة ضوء الشمس", Keywords: []string{"ورق", "غذاء", "شمس", "ضوء", "يصنع"}},
	{Topic: "الزهرة", Fact: "الزهرة تساعد النبات على تكوين الثمرة والبذور", Keywords: []string{"زهرة", "ثمرة", "بذور", "تكوين", "نبات"}},
	{Topic: "الثمرة", Fact: "الثمرة تحمي البذور ونأكل بعض الثمار مثل التفاح", Keywords: []string{"ثمرة", "بذور", "نأكل", "تفاح", "تحمي"}},
}

// WorldModule tells a fact and asks the child to say one thing back
// about the topic, matched by keyword containment.
type WorldModule struct{}

func (WorldModule) lesson(lessonNo int) worldLesson {
	if lessonNo < 1 || lessonNo > len(worldLessons) {
		return worldLessons[0]
	}
	return worldLessons[lessonNo-1]
}

func (m WorldModule) Start(lessonNo int) (string, State, reply.Emotion) {
	info := m.lesson(lessonNo)
	text := fmt.Sprintf("%s قل لي شي عن %s", info.Fact, info.Topic)
	return text, State{"correct": 0, "wrong": 0}, reply.Teacher
}

func (m WorldModule) HandleTurn(lessonNo int, utterance string, state State) (string, State, bool, reply.Emotion) {
	info := m.lesson(lessonNo)
	ok := classify.ContainsAny(utterance, info.Keywords)

	return stepThreshold(state, ok, thresholdTexts{
		praiseDone:  "احسنت خلصنا الدرس",
		praiseAgain: "احسنت قلها مرة ثانية",
		skip:        "حسنا ننتقل للدرس التالي",
		retry:       "مو هذا قصدي حاول مرة ثانية",
	})
}
