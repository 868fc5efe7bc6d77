// Package trigger detects lesson start/stop intent in a raw utterance.
//
// Detection is normalized substring containment over fixed colloquial
// phrase lists (standard Arabic, Iraqi dialect, and a few Latin-script
// synonyms). Substring semantics are intentional: a longer trigger phrase
// containing a shorter one matches on the shorter one too.
package trigger

import (
	"strings"

	"github.com/paixi-lab/paixi/internal/arabic"
)

// LearningTime phrases put the companion into curriculum mode.
var LearningTime = []string{
	"حان وقت تعلم", "حان وقت التعلم", "وقت تعلم", "وقت التعلم",
	"حصة علوم", "حصة العلوم", "درس علوم", "درس العلوم",
	"خلينا نتعلم", "نبدأ نتعلم", "نبلش نتعلم",
	"اريد اتعلم", "أريد أتعلم", "اريد تعلم", "أريد تعلم",
	"نريد نتعلم", "علمني", "علمني علوم",
	"ابدي درس", "ابدأ درس", "يلا نتعلم", "خل نتعلم",
}

// Spelling phrases request the Arabic spelling drill directly.
var Spelling = []string{
	"حصة العربية", "حصة اللغه العربية", "حصة اللغة العربية",
	"درس عربي", "درس العربية",
	"نبدأ عربي", "نبدي عربي", "ابدأ عربي", "ابدي عربي",
	"حصة عربي",
}

// Animals phrases start the animal science drill.
var Animals = []string{
	"تعلم الحيوانات", "درس الحيوانات", "حصة الحيوانات",
	"حصة العلوم", "درس العلوم",
	"نبدأ حيوانات", "نبلش حيوانات", "حيوانات",
	"learn animal", "learn animals",
}

// Plants phrases start the plant science drill.
var Plants = []string{
	"تعلم النباتات", "درس النباتات", "حصة النباتات",
	"نبدأ نباتات", "نبلش نباتات", "نباتات",
	"learn plant", "learn plants",
}

// Stop phrases end a topic drill from any stage.
var Stop = []string{
	"وقف", "خلاص", "انهاء", "انهي", "توقف",
	"رجع للدرده", "رجع للدردشة",
	"stop lesson",
}

// Affirmative phrases mean "yes, another question".
var Affirmative = []string{
	"اي", "نعم", "اجل", "اكيد", "اريد", "yes",
}

// Goodbye phrases shut the companion down.
var Goodbye = []string{
	"وداعا", "وداعًا", "مع السلامة", "سلام",
	"خروج", "اخرج", "اطلع",
	"وداعا بيكسي", "وداعًا بيكسي", "وداعا بايكسي",
	"bye", "goodbye", "exit", "quit",
}

// Pause is the phrase that defers the curriculum and returns to free chat.
const Pause = "اجله يا بيكسي"

// MatchesAny reports whether the utterance contains any phrase from the
// set, comparing normalized forms.
func MatchesAny(utterance string, phrases []string) bool {
	u := arabic.Normalize(strings.ToLower(utterance))
	if u == "" {
		return false
	}
	for _, p := range phrases {
		np := arabic.Normalize(p)
		if np != "" && strings.Contains(u, np) {
			return true
		}
	}
	return false
}

// IsPause reports whether the utterance asks to defer the curriculum.
func IsPause(utterance string) bool {
	compact := strings.ReplaceAll(strings.TrimSpace(utterance), " ", "")
	return compact == strings.ReplaceAll(Pause, " ", "") ||
		strings.Contains(utterance, Pause)
}
