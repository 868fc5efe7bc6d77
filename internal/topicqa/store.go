package topicqa

import "sync"

// Manager owns the drill engines and tracks which drill, if any, each
// session is inside. Safe for concurrent use.
type Manager struct {
	engines []*Engine

	mu     sync.RWMutex
	active map[string]*activeDrill
}

type activeDrill struct {
	engine *Engine
	state  State
}

// NewManager registers the full drill catalog.
func NewManager() *Manager {
	return &Manager{
		engines: []*Engine{NewEngine(Animals()), NewEngine(Plants())},
		active:  make(map[string]*activeDrill),
	}
}

// InSession reports whether the session is inside a drill.
func (m *Manager) InSession(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.active[sessionID]
	return ok
}

// Reset drops any active drill for the session.
func (m *Manager) Reset(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, sessionID)
}

// Handle routes one turn. An active drill consumes the turn; otherwise a
// start trigger opens the matching drill. Returns the formatted reply and
// whether a drill handled the utterance.
func (m *Manager) Handle(sessionID, utterance, kidName string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if drill, ok := m.active[sessionID]; ok {
		text, next, stillActive := drill.engine.Handle(drill.state, utterance, kidName)
		if stillActive {
			drill.state = next
		} else {
			delete(m.active, sessionID)
		}
		return text, true
	}

	for _, eng := range m.engines {
		if eng.Matches(utterance) {
			text, st := eng.Start(kidName)
			m.active[sessionID] = &activeDrill{engine: eng, state: st}
			return text, true
		}
	}
	return "", false
}
