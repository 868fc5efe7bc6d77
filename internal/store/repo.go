package store

import (
	"context"
	"time"
)

// ProfileSnapshot is a point-in-time capture of a child's profile,
// including the curriculum progress record, for one session.
type ProfileSnapshot struct {
	ID        int
	SessionID string
	Sequence  int64
	Timestamp time.Time
	Data      map[string]any
}

// ProfileRepo manages per-session profile snapshots.
type ProfileRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *ProfileSnapshot) error

	// Latest returns the most recent snapshot for the session, or nil if
	// none exist.
	Latest(ctx context.Context, sessionID string) (*ProfileSnapshot, error)

	// Prune deletes all but the N most recent snapshots of the session.
	Prune(ctx context.Context, sessionID string, keep int) error
}

// Turn roles.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// TurnEventData captures one conversation turn.
type TurnEventData struct {
	SessionID string
	Role      string
	Text      string
	// Handler is the layer that produced an agent turn:
	// curriculum, topicqa, persona, system.
	Handler string
	Emotion string
	Motions []int
}

// Turn is a persisted conversation turn.
type Turn struct {
	Sequence  int64
	Timestamp time.Time
	TurnEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a persisted LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	// Limit caps the number of results (0 = unlimited).
	Limit int

	// Purpose restricts results to one purpose label when non-empty.
	// Applied before Limit, so a filtered listing still fills up.
	Purpose string
}

// LLMPurposeUsage aggregates request events by purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates request events by model ID.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendTurn records a conversation turn.
	AppendTurn(ctx context.Context, data TurnEventData) error

	// RecentTurns returns the session's newest turns, oldest first.
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil when it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
