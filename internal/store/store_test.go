package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProfileSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx, "s1")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	err = repo.Save(ctx, &ProfileSnapshot{
		SessionID: "s1",
		Data: map[string]any{
			"name": "نور",
			"progress": map[string]any{
				"current_subject": "pronunciation",
				"current_lesson":  float64(2),
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx, "s1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Data["name"] != "نور" {
		t.Errorf("name = %v", snap.Data["name"])
	}
	if snap.Sequence == 0 {
		t.Error("sequence not assigned on save")
	}
}

func TestProfileLatestIsPerSession(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	for i, sid := range []string{"a", "b", "a"} {
		err := repo.Save(ctx, &ProfileSnapshot{
			SessionID: sid,
			Data:      map[string]any{"v": float64(i)},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snapA, err := repo.Latest(ctx, "a")
	if err != nil {
		t.Fatalf("latest a: %v", err)
	}
	if snapA.Data["v"] != float64(2) {
		t.Errorf("session a latest v = %v, want 2", snapA.Data["v"])
	}

	snapB, err := repo.Latest(ctx, "b")
	if err != nil {
		t.Fatalf("latest b: %v", err)
	}
	if snapB.Data["v"] != float64(1) {
		t.Errorf("session b latest v = %v, want 1", snapB.Data["v"])
	}
}

func TestProfilePrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &ProfileSnapshot{
			SessionID: "s1",
			Data:      map[string]any{"v": float64(i)},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, "s1", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().ProfileSnapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err := repo.Latest(ctx, "s1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Data["v"] != float64(6) {
		t.Errorf("latest v = %v, want 6", snap.Data["v"])
	}
}

func TestProfilePruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &ProfileSnapshot{
			SessionID: "s1",
			Data:      map[string]any{"v": float64(i)},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, "s1", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().ProfileSnapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}

func TestTurnAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	turns := []TurnEventData{
		{SessionID: "s1", Role: RoleUser, Text: "هلا"},
		{SessionID: "s1", Role: RoleAgent, Text: `"اهلا" (normal) <0>`, Handler: "persona", Emotion: "normal", Motions: []int{0}},
		{SessionID: "s2", Role: RoleUser, Text: "وقت التعلم"},
		{SessionID: "s1", Role: RoleUser, Text: "شلونك"},
	}
	for i, data := range turns {
		if err := repo.AppendTurn(ctx, data); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.RecentTurns(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("recent turns: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("turns for s1 = %d, want 3", len(got))
	}
	if got[0].Text != "هلا" || got[2].Text != "شلونك" {
		t.Errorf("turns out of order: %q ... %q", got[0].Text, got[2].Text)
	}
	if got[1].Handler != "persona" {
		t.Errorf("handler = %q, want persona", got[1].Handler)
	}
	if len(got[1].Motions) != 1 || got[1].Motions[0] != 0 {
		t.Errorf("motions = %v", got[1].Motions)
	}

	limited, err := repo.RecentTurns(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("recent turns limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited turns = %d, want 2", len(limited))
	}
	// The newest two, still oldest first.
	if limited[1].Text != "شلونك" {
		t.Errorf("limited[1] = %q, want newest turn", limited[1].Text)
	}
}

func TestLLMRequestAppend(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:    "mock",
		Model:       "mock",
		Purpose:     "emotion-classify",
		InputTokens: 12,
		Success:     true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	count, err := s.Client().LLMRequestEvent.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("events = %d, want 1", count)
	}
}

func TestLLMEventQueriesAndUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "emotion-classify", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m1", Purpose: "emotion-classify", InputTokens: 20, OutputTokens: 10, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "m2", Purpose: "persona-chat", InputTokens: 50, OutputTokens: 40, LatencyMs: 200, Success: false, ErrorMessage: "boom"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	listed, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed = %d, want 2", len(listed))
	}
	if listed[0].Purpose != "persona-chat" {
		t.Errorf("newest first: got %q", listed[0].Purpose)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2, Purpose: "emotion-classify"})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered = %d, want 2", len(filtered))
	}
	for _, e := range filtered {
		if e.Purpose != "emotion-classify" {
			t.Errorf("purpose filter leaked %q", e.Purpose)
		}
	}

	got, err := repo.GetLLMEvent(ctx, listed[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ErrorMessage != "boom" {
		t.Errorf("get event = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	// Sorted by purpose: emotion-classify then persona-chat.
	ec := byPurpose[0]
	if ec.Purpose != "emotion-classify" || ec.Calls != 2 || ec.InputTokens != 30 || ec.AvgLatencyMs != 200 {
		t.Errorf("emotion-classify usage = %+v", ec)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].OutputTokens != 15 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}
