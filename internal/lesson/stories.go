package lesson

import "github.com/paixi-lab/paixi/internal/reply"

// StoriesModule is a placeholder subject. It answers that the content is
// unavailable and completes immediately so the curriculum keeps moving.
type StoriesModule struct{}

func (StoriesModule) Start(int) (string, State, reply.Emotion) {
	return "هذا غير متوفر الان", State{}, reply.Teacher
}

func (StoriesModule) HandleTurn(_ int, _ string, state State) (string, State, bool, reply.Emotion) {
	return "هذا غير متوفر الان", state.Clone(), true, reply.Teacher
}
