// Package topicqa runs the short science warm-up drills: a fixed topic
// catalog asked as teacher-style Q&A with keyword checking, one hint per
// question, and an explicit "want another one" gate between topics.
package topicqa

import "github.com/paixi-lab/paixi/internal/trigger"

// Topic is one question in a drill catalog.
type Topic struct {
	Question string
	// Correct keywords accept the answer outright.
	Correct []string
	// Partial keywords are on the right track but miss the main cause.
	Partial []string
	Hint    string
	Explain string
}

// Catalog bundles a drill's topics with its start triggers and the
// phrasing that differs between drills.
type Catalog struct {
	Name     string
	Starters []string
	Topics   []Topic
	// Broadened keywords accepted after the hint in addition to Correct.
	Broadened []string
	// IntroFormat takes the kid name and first question.
	IntroFormat string
	// PartialAck and UnknownAck take the hint question.
	PartialAck string
	UnknownAck string
	// Farewell takes the kid name; it points the child at the sibling drill.
	Farewell string
}

// Animals is the animal science drill.
func Animals() Catalog {
	return Catalog{
		Name:     "animals",
		Starters: trigger.Animals,
		Topics: []Topic{
			{
				Question: "هل تعلم لماذا السمك لا يعيش على اليابسه",
				Correct:  []string{"خياشيم", "لا يمتلك رئ", "يتنفس بالماء", "تنفس بالماء"},
				Partial:  []string{"اقدام", "يمشي", "قدم"},
				Hint:     "شنو الشي يساعدك تتنفس",
				Explain:  "السمك يتنفس بالخياشيم مو بالرئتين لذلك خارج الماء يصير تنفسه صعب",
			},
			{
				Question: "هل تعلم شنو يخزن الجمل داخل السنام مالته",
				Correct:  []string{"دهون", "طاقه", "يخزن دهون"},
				Partial:  []string{"ماء", "يشرب"},
				Hint:     "لما نريد طاقه من الاكل شنو نسميها داخل الجسم",
				Explain:  "السنام يخزن دهون مو ماء والدهون تتحول لطاقة وتساعده يتحمل الصحرا",
			},
			{
				Question: "ليش البطريق ما يطير مثل باقي الطيور",
				Correct:  []string{"يسبح", "جسمه ثقيل", "جناح للسباحه"},
				Partial:  []string{"جناح صغير", "كسلان"},
				Hint:     "وين يعيش البطريق اكثر شي بالمي لو بالهواء",
				Explain:  "البطريق اجنحته صارت مثل زعانف تساعده يسبح وجسمه ثقيل فمو مهيأ للطيران",
			},
		},
		Broadened:   []string{"رئ", "تنفس", "طاق", "مي", "ماء", "سبح"},
		IntroFormat: "تمام %s خلينا نبدي حصة الحيوانات %s",
		PartialAck:  "اي ممكن هذا سبب بس اكو سبب اهم %s",
		UnknownAck:  "قريب من الاجابه خليني اعطيك تلميح %s",
		Farewell:    "تمام %s اذا تحب نرجع للدردشة او ندرس نباتات كلي",
	}
}

// Plants is the plant science drill.
func Plants() Catalog {
	return Catalog{
		Name:     "plants",
		Starters: trigger.Plants,
		Topics: []Topic{
			{
				Question: "ليش النبات يحتاج ضوء الشمس",
				Correct:  []string{"يصنع غذ", "يبني غذ", "يمتص ضوء", "طاقة", "تمثيل", "ضوئي"},
				Partial:  []string{"ينمو", "يكبر"},
				Hint:     "منين النبات يجيب اكله اذا ما ياكل مثلنا",
				Explain:  "النبات يسوي غذائه بنفسه باستخدام ضوء الشمس والماء والهواء هذا اسمه التمثيل الضوئي",
			},
			{
				Question: "شنو فايدة الجذور بالنبات",
				Correct:  []string{"يمتص", "ماء", "املاح", "يثبت", "تثبيت"},
				Partial:  []string{"يطول"},
				Hint:     "اذا سحبنا النبات من التربه شنو الي يظل داخل الارض",
				Explain:  "الجذور تمتص الماء والاملاح من التربه وتثبت النبات حتى ما يطيح",
			},
			{
				Question: "ليش اغلب اوراق النبات لونها اخضر",
				Correct:  []string{"كلوروف", "كلوروفيل", "يمتص", "ضوء"},
				Partial:  []string{"صبغه"},
				Hint:     "النبات بي ماده تمسك ضوء الشمس داخل الورقه شنو اسمها",
				Explain:  "اللون الاخضر بسبب ماده اسمها كلوروفيل تساعد الورقه تمسك ضوء الشمس حتى يصير التمثيل الضوئي",
			},
		},
		Broadened:   []string{"غذا", "اكل", "ماء", "املاح", "ضوء", "كلورو"},
		IntroFormat: "تمام %s خلينا نبدي حصة النباتات %s",
		PartialAck:  "اي هذا جزء من الجواب بس خليني اعطيك تلميح %s",
		UnknownAck:  "قريب من الاجابه تلميح صغير %s",
		Farewell:    "تمام %s اذا تحب نرجع للدردشة او ندرس حيوانات كلي",
	}
}
