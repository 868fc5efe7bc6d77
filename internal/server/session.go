package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// session is the in-memory state for one connected child. The profile map
// is the authoritative copy between snapshots; the store keeps durable
// history. Turns hold mu for their whole duration, so concurrent requests
// on the same session serialize instead of racing on the profile.
type session struct {
	mu            sync.Mutex
	ID            string
	Profile       map[string]any
	StartedAt     time.Time
	CurrentMotion int
}

// sessionRegistry tracks live sessions. Safe for concurrent use.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	lastID   string
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

// Start registers a new session for the profile. When the client supplies
// its own session_id in the profile, that ID is reused; the server
// rehydrates the stored profile for known IDs before calling Start.
func (r *sessionRegistry) Start(profile map[string]any) *session {
	id := clientSessionID(profile)
	if id == "" {
		id = uuid.NewString()
	}

	s := &session{
		ID:        id,
		Profile:   profile,
		StartedAt: time.Now(),
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.lastID = id
	r.mu.Unlock()
	return s
}

// Get returns the session by ID. An empty ID resolves to the most
// recently started session, matching clients that never echo the ID back.
func (r *sessionRegistry) Get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == "" {
		id = r.lastID
	}
	s, ok := r.sessions[id]
	return s, ok
}

func clientSessionID(profile map[string]any) string {
	for _, key := range []string{"session_id", "sessionId"} {
		if v, ok := profile[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
