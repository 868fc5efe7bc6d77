package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/paixi-lab/paixi/internal/config"
	"github.com/paixi-lab/paixi/internal/emotion"
	"github.com/paixi-lab/paixi/internal/llm"
	"github.com/paixi-lab/paixi/internal/persona"
	"github.com/paixi-lab/paixi/internal/store"
)

type memEvents struct {
	mu    sync.Mutex
	turns []store.TurnEventData
}

func (m *memEvents) AppendLLMRequest(context.Context, store.LLMRequestEventData) error { return nil }

func (m *memEvents) AppendTurn(_ context.Context, data store.TurnEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, data)
	return nil
}

func (m *memEvents) RecentTurns(_ context.Context, sessionID string, limit int) ([]store.Turn, error) {
	return nil, nil
}

func (m *memEvents) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (m *memEvents) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) { return nil, nil }

func (m *memEvents) LLMUsageByPurpose(context.Context) ([]store.LLMPurposeUsage, error) {
	return nil, nil
}

func (m *memEvents) LLMUsageByModel(context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

type memProfiles struct {
	mu     sync.Mutex
	snaps  []*store.ProfileSnapshot
	prunes int
}

func (m *memProfiles) Save(_ context.Context, snap *store.ProfileSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps = append(m.snaps, snap)
	return nil
}

func (m *memProfiles) Latest(_ context.Context, sessionID string) (*store.ProfileSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.snaps) - 1; i >= 0; i-- {
		if m.snaps[i].SessionID == sessionID {
			return m.snaps[i], nil
		}
	}
	return nil, nil
}

func (m *memProfiles) Prune(context.Context, string, int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prunes++
	return nil
}

func canned(raw string) llm.MockResponse {
	b, _ := json.Marshal(raw)
	return llm.MockResponse{Content: json.RawMessage(b)}
}

type fixture struct {
	srv      *Server
	handler  http.Handler
	events   *memEvents
	profiles *memProfiles
}

func newFixture(t *testing.T, chatWindow time.Duration, responses ...llm.MockResponse) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.ChatWindow = chatWindow

	provider := llm.NewMockProvider(responses...)
	events := &memEvents{}
	profiles := &memProfiles{}

	srv := New(cfg, Deps{
		Emotions: emotion.NewClassifier(provider),
		Persona:  persona.NewAgent(provider, nil),
		Profiles: profiles,
		Events:   events,
	})
	return &fixture{srv: srv, handler: srv.Handler(), events: events, profiles: profiles}
}

func (f *fixture) post(t *testing.T, path string, body any) map[string]any {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST %s: status %d, body %s", path, w.Code, w.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func startSession(t *testing.T, f *fixture, profile map[string]any) string {
	t.Helper()
	out := f.post(t, "/start", map[string]any{"profile": profile})
	id, _ := out["session_id"].(string)
	if id == "" {
		t.Fatal("no session_id in /start response")
	}
	return id
}

func TestHealth(t *testing.T) {
	f := newFixture(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestStartGreetsByName(t *testing.T) {
	f := newFixture(t, 0)
	out := f.post(t, "/start", map[string]any{"profile": map[string]any{"name": "نور"}})
	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "اهلا نور") {
		t.Errorf("reply = %q", replyText)
	}
	if !strings.Contains(replyText, "(normal) <0>") {
		t.Errorf("reply %q not in wire format", replyText)
	}
	if len(f.profiles.snaps) != 1 {
		t.Errorf("snapshots = %d, want 1", len(f.profiles.snaps))
	}
}

func TestGoodbyeReturnsOffAndArmsShutdown(t *testing.T) {
	f := newFixture(t, 0)
	sid := startSession(t, f, map[string]any{})
	out := f.post(t, "/chat", map[string]any{"session_id": sid, "text": "وداعا بيكسي"})
	if out["reply"] != "Off" {
		t.Errorf("reply = %v, want Off", out["reply"])
	}
	select {
	case <-f.srv.closing:
	default:
		t.Error("goodbye did not arm shutdown")
	}
}

func TestPausePhraseParksCurriculum(t *testing.T) {
	f := newFixture(t, 0)
	sid := startSession(t, f, map[string]any{})
	out := f.post(t, "/chat", map[string]any{"session_id": sid, "text": "اجله يا بيكسي"})

	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "حسنا خلي نسولف") {
		t.Errorf("reply = %q", replyText)
	}
	pu, ok := out["progress_update"].(map[string]any)
	if !ok {
		t.Fatal("no progress_update in pause response")
	}
	if pu["curriculum_paused"] != true {
		t.Errorf("curriculum_paused = %v", pu["curriculum_paused"])
	}
	if pu["phase"] != "chat" {
		t.Errorf("phase = %v", pu["phase"])
	}
}

func TestLearningTriggerStartsLesson(t *testing.T) {
	f := newFixture(t, 0)
	sid := startSession(t, f, map[string]any{"name": "علي"})
	out := f.post(t, "/chat", map[string]any{"session_id": sid, "text": "حان وقت التعلم"})

	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "لفظ حرف الالف") {
		t.Errorf("reply = %q, want pronunciation prompt", replyText)
	}
	pu, ok := out["progress_update"].(map[string]any)
	if !ok {
		t.Fatal("no progress_update when lesson starts")
	}
	if pu["phase"] != "lesson" {
		t.Errorf("phase = %v", pu["phase"])
	}
}

func TestChatWindowKeepsLessonParked(t *testing.T) {
	f := newFixture(t, time.Hour, canned(`{"emotion":"normal","brief_reason":"x"}`), canned("هلا حبيبي"))
	sid := startSession(t, f, map[string]any{
		"progress": map[string]any{
			"phase":        "lesson",
			"lesson_state": map[string]any{"started": true},
		},
	})
	out := f.post(t, "/chat", map[string]any{"session_id": sid, "text": "شلونك"})

	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "هلا حبيبي") {
		t.Errorf("reply = %q, want persona free chat during the window", replyText)
	}
}

func TestLessonResumesAfterWindow(t *testing.T) {
	f := newFixture(t, time.Minute)
	sid := startSession(t, f, map[string]any{})
	f.post(t, "/chat", map[string]any{"session_id": sid, "text": "وقت التعلم"})

	// Move the clock past the window; the lesson-phase progress persists.
	f.srv.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	out := f.post(t, "/chat", map[string]any{"session_id": sid, "text": "ااا"})

	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "كررها مرة ثانية") {
		t.Errorf("reply = %q, want lesson continuation", replyText)
	}
}

func TestTopicDrillRoundTrip(t *testing.T) {
	f := newFixture(t, 0)
	sid := startSession(t, f, map[string]any{})

	out := f.post(t, "/chat", map[string]any{"session_id": sid, "text": "learn animals"})
	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "حصة الحيوانات") {
		t.Fatalf("reply = %q, want drill intro", replyText)
	}

	out = f.post(t, "/chat", map[string]any{"session_id": sid, "text": "خياشيم"})
	replyText, _ = out["reply"].(string)
	if !strings.Contains(replyText, "احسنت") {
		t.Errorf("reply = %q, want praise", replyText)
	}

	out = f.post(t, "/chat", map[string]any{"session_id": sid, "text": "خلاص"})
	replyText, _ = out["reply"].(string)
	if !strings.Contains(replyText, "رجعنا للدردشة") {
		t.Errorf("reply = %q, want drill exit", replyText)
	}
}

func TestFreeChatWiresEmotionAndMotion(t *testing.T) {
	f := newFixture(t, time.Hour,
		canned(`{"emotion":"happy","brief_reason":"excited"}`),
		canned("يا سلام خبر حلو"),
	)
	sid := startSession(t, f, map[string]any{})
	out := f.post(t, "/chat", map[string]any{"session_id": sid, "text": "نجحت بالامتحان"})

	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "(happy)") {
		t.Errorf("reply = %q, want happy emotion tag", replyText)
	}
	// happy triggers the celebration wiggle, which always ends parked.
	if !strings.Contains(replyText, "<1><2><1><2><1><2><0>") {
		t.Errorf("reply = %q, want celebration motion sequence", replyText)
	}
}

func TestChatResumesFromStoredSnapshot(t *testing.T) {
	f := newFixture(t, 0)
	// A previous run left a mid-lesson snapshot; the in-memory registry
	// has never seen this session.
	f.profiles.snaps = append(f.profiles.snaps, &store.ProfileSnapshot{
		SessionID: "robot-7",
		Data: map[string]any{
			"name": "علي",
			"progress": map[string]any{
				"phase":        "lesson",
				"lesson_state": map[string]any{"started": true},
			},
		},
	})

	out := f.post(t, "/chat", map[string]any{"session_id": "robot-7", "text": "ااا"})
	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "كررها مرة ثانية") {
		t.Errorf("reply = %q, want lesson continuation from stored progress", replyText)
	}

	f.profiles.mu.Lock()
	defer f.profiles.mu.Unlock()
	last := f.profiles.snaps[len(f.profiles.snaps)-1]
	if last.SessionID != "robot-7" {
		t.Errorf("snapshot saved under %q, want robot-7", last.SessionID)
	}
	if f.profiles.prunes == 0 {
		t.Error("snapshot history was never pruned")
	}
}

func TestStartClearsFinishedLessonGate(t *testing.T) {
	f := newFixture(t, 0)
	sid := startSession(t, f, map[string]any{
		"name": "علي",
		"progress": map[string]any{
			"phase":             "chat",
			"await_new_session": true,
		},
	})

	out := f.post(t, "/chat", map[string]any{"session_id": sid, "text": "حان وقت التعلم"})
	replyText, _ := out["reply"].(string)
	if !strings.Contains(replyText, "لفظ حرف الالف") {
		t.Errorf("reply = %q, want a lesson to start in the fresh session", replyText)
	}
}

func TestConcurrentTurnsShareOneSession(t *testing.T) {
	f := newFixture(t, time.Hour)
	sid := startSession(t, f, map[string]any{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			out := f.srv.Converse(context.Background(), TurnInput{
				SessionID:     sid,
				Text:          "هلا",
				ProfileUpdate: map[string]any{"mood": n},
			})
			if out.Reply == "" {
				t.Error("empty reply under concurrent turns")
			}
		}(i)
	}
	wg.Wait()
}

func TestChatWithoutStartStillAnswers(t *testing.T) {
	f := newFixture(t, time.Hour,
		canned(`{"emotion":"normal","brief_reason":"x"}`),
		canned("اهلا"),
	)
	out := f.post(t, "/chat", map[string]any{"text": "هلا"})
	replyText, _ := out["reply"].(string)
	if replyText == "" {
		t.Fatal("no reply for chat without start")
	}
}

func TestTurnsAreLogged(t *testing.T) {
	f := newFixture(t, time.Hour,
		canned(`{"emotion":"normal","brief_reason":"x"}`),
		canned("اهلا"),
	)
	sid := startSession(t, f, map[string]any{})
	f.post(t, "/chat", map[string]any{"session_id": sid, "text": "هلا"})

	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	var userTurns, agentTurns int
	for _, turn := range f.events.turns {
		if turn.SessionID != sid {
			continue
		}
		switch turn.Role {
		case store.RoleUser:
			userTurns++
		case store.RoleAgent:
			agentTurns++
		}
	}
	if userTurns != 1 {
		t.Errorf("user turns = %d, want 1", userTurns)
	}
	// The /start greeting plus the chat reply.
	if agentTurns != 2 {
		t.Errorf("agent turns = %d, want 2", agentTurns)
	}
}
