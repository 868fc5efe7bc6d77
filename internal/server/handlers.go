package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/paixi-lab/paixi/internal/curriculum"
	"github.com/paixi-lab/paixi/internal/emotion"
	"github.com/paixi-lab/paixi/internal/motion"
	"github.com/paixi-lab/paixi/internal/persona"
	"github.com/paixi-lab/paixi/internal/reply"
	"github.com/paixi-lab/paixi/internal/store"
	"github.com/paixi-lab/paixi/internal/trigger"
)

type startPayload struct {
	Profile map[string]any `json:"profile"`
}

// TurnInput carries one user turn into the conversation pipeline. It is
// both the /chat request body and the input for the local REPL.
type TurnInput struct {
	SessionID         string         `json:"session_id"`
	Text              string         `json:"text"`
	LearningMaterials any            `json:"learning_materials"`
	LearningTopics    any            `json:"learning_topics"`
	LearningHours     *float64       `json:"learning_hours"`
	ProfileUpdate     map[string]any `json:"profile_update"`
}

// TurnOutcome is the pipeline's answer for a single turn.
type TurnOutcome struct {
	Reply          string
	SessionID      string
	ProgressUpdate map[string]any
	Shutdown       bool
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStart(c *gin.Context) {
	var payload startPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	greeting, sessionID := s.StartSession(c.Request.Context(), payload.Profile)
	c.JSON(http.StatusOK, gin.H{"reply": greeting, "session_id": sessionID})
}

func (s *Server) handleChat(c *gin.Context) {
	var in TurnInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	out := s.Converse(c.Request.Context(), in)
	resp := gin.H{"reply": out.Reply}
	if out.ProgressUpdate != nil {
		resp["progress_update"] = out.ProgressUpdate
	}
	c.JSON(http.StatusOK, resp)
}

// StartSession opens a new session with the given profile and returns the
// greeting reply and the session ID.
func (s *Server) StartSession(ctx context.Context, profile map[string]any) (string, string) {
	if profile == nil {
		profile = map[string]any{}
	}

	sess := s.sessions.Start(profile)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.topics.Reset(sess.ID)

	// A finished lesson waits for the next session; this is it.
	if prog := curriculum.FromProfile(sess.Profile); prog.AwaitNewSession {
		prog.AwaitNewSession = false
		sess.Profile["progress"] = prog.ToProfileField()
	}

	s.saveSnapshot(ctx, sess)

	name := persona.KidName(sess.Profile)
	greeting := reply.Format("اهلا "+name, reply.Normal, nil)
	s.logTurn(ctx, store.TurnEventData{
		SessionID: sess.ID,
		Role:      store.RoleAgent,
		Text:      greeting,
		Handler:   "system",
		Emotion:   string(reply.Normal),
	})

	s.log.Info("session started", "session_id", sess.ID, "kid", name)
	return greeting, sess.ID
}

// Converse runs one user turn through the pipeline: goodbye, pause, the
// free-chat window, topic drills, the curriculum, and finally the persona.
func (s *Server) Converse(ctx context.Context, in TurnInput) TurnOutcome {
	sess, ok := s.sessions.Get(in.SessionID)
	if !ok {
		// Clients that skip /start still get a conversation; a known
		// session ID resumes from its last stored profile snapshot.
		sess = s.sessions.Start(s.resumeProfile(ctx, in.SessionID))
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	userText := strings.TrimSpace(in.Text)

	s.logTurn(ctx, store.TurnEventData{
		SessionID: sess.ID,
		Role:      store.RoleUser,
		Text:      userText,
	})

	if trigger.MatchesAny(userText, trigger.Goodbye) {
		s.logTurn(ctx, store.TurnEventData{
			SessionID: sess.ID, Role: store.RoleAgent, Text: "Off", Handler: "system",
		})
		s.requestShutdown()
		return TurnOutcome{Reply: "Off", SessionID: sess.ID, Shutdown: true}
	}

	if trigger.IsPause(userText) {
		prog := curriculum.FromProfile(sess.Profile)
		prog.Phase = curriculum.PhaseChat
		prog.AwaitNewSession = false
		prog.Paused = true
		field := prog.ToProfileField()
		sess.Profile["progress"] = field
		s.saveSnapshot(ctx, sess)

		out := reply.Format("حسنا خلي نسولف", reply.Teacher, nil)
		s.logTurn(ctx, store.TurnEventData{
			SessionID: sess.ID, Role: store.RoleAgent, Text: out,
			Handler: "system", Emotion: string(reply.Teacher),
		})
		return TurnOutcome{Reply: out, SessionID: sess.ID, ProgressUpdate: field}
	}

	s.mergeProfile(sess, in)

	// Inside the free-chat window the curriculum stays parked.
	if s.cfg.ChatWindow > 0 && s.now().Sub(sess.StartedAt) < s.cfg.ChatWindow {
		prog := curriculum.FromProfile(sess.Profile)
		prog.Phase = curriculum.PhaseChat
		prog.AwaitNewSession = false
		sess.Profile["progress"] = prog.ToProfileField()
	}

	kidName := kidNameOrEmpty(sess.Profile)

	// An active topic drill owns the turn outright.
	if s.topics.InSession(sess.ID) {
		if text, handled := s.topics.Handle(sess.ID, userText, kidName); handled {
			return s.handledOutcome(ctx, sess, text, "topicqa", nil)
		}
	}

	if out := s.router.Handle(sess.Profile, userText, kidName); out.Handled {
		var field map[string]any
		if out.Update != nil {
			field = out.Update.ToProfileField()
			sess.Profile["progress"] = field
			s.saveSnapshot(ctx, sess)
		}
		return s.handledOutcome(ctx, sess, out.Reply, "curriculum", field)
	}

	if text, handled := s.topics.Handle(sess.ID, userText, kidName); handled {
		return s.handledOutcome(ctx, sess, text, "topicqa", nil)
	}

	return s.freeChat(ctx, sess, userText)
}

// freeChat is the fallthrough: classify emotion, decide motion, and let
// the persona answer.
func (s *Server) freeChat(ctx context.Context, sess *session, userText string) TurnOutcome {
	emo := emotion.Result{Emotion: reply.Normal}
	if s.emotions != nil {
		emo = s.emotions.Analyze(ctx, userText)
	}

	dec := motion.Decide(userText, sess.CurrentMotion)
	sess.CurrentMotion = dec.Primary

	motions := dec.Sequence
	event := motion.EventForEmotion(emo.Emotion)
	if event != "" {
		motions = motion.SpontaneousFor(event)
	}

	text := "اهلا يا صديقي"
	if s.agent != nil {
		text = s.agent.Reply(ctx, persona.Input{
			UserText:     userText,
			Emotion:      emo.Emotion,
			MotionInt:    sess.CurrentMotion,
			Profile:      sess.Profile,
			ExtraEvent:   event,
			LanguageMode: "auto",
		})
	}

	wrapped := reply.Format(text, emo.Emotion, motions)
	s.logTurn(ctx, store.TurnEventData{
		SessionID: sess.ID, Role: store.RoleAgent, Text: wrapped,
		Handler: "persona", Emotion: string(emo.Emotion), Motions: motions,
	})
	return TurnOutcome{Reply: wrapped, SessionID: sess.ID}
}

func (s *Server) handledOutcome(ctx context.Context, sess *session, text, handler string, progressField map[string]any) TurnOutcome {
	s.logTurn(ctx, store.TurnEventData{
		SessionID: sess.ID, Role: store.RoleAgent, Text: text, Handler: handler,
	})
	return TurnOutcome{Reply: text, SessionID: sess.ID, ProgressUpdate: progressField}
}

func (s *Server) mergeProfile(sess *session, in TurnInput) {
	for k, v := range in.ProfileUpdate {
		sess.Profile[k] = v
	}
	if in.LearningMaterials != nil {
		sess.Profile["learning_materials"] = in.LearningMaterials
	}
	if in.LearningTopics != nil {
		sess.Profile["learning_topics"] = in.LearningTopics
	}
	if in.LearningHours != nil {
		sess.Profile["learning_hours"] = *in.LearningHours
	}
}

// snapshotKeep bounds the per-session snapshot history.
const snapshotKeep = 20

// resumeProfile loads the latest stored snapshot for a session ID the
// registry no longer knows, so a reconnecting robot keeps its progress.
func (s *Server) resumeProfile(ctx context.Context, sessionID string) map[string]any {
	if sessionID == "" || s.profiles == nil {
		return map[string]any{}
	}
	snap, err := s.profiles.Latest(ctx, sessionID)
	if err != nil {
		s.log.Warn("load profile snapshot", "session_id", sessionID, "err", err)
		return map[string]any{}
	}
	if snap == nil {
		return map[string]any{}
	}
	profile := snap.Data
	if profile == nil {
		profile = map[string]any{}
	}
	profile["session_id"] = sessionID
	return profile
}

func (s *Server) saveSnapshot(ctx context.Context, sess *session) {
	if s.profiles == nil {
		return
	}
	err := s.profiles.Save(ctx, &store.ProfileSnapshot{
		SessionID: sess.ID,
		Data:      sess.Profile,
	})
	if err != nil {
		s.log.Warn("save profile snapshot", "session_id", sess.ID, "err", err)
		return
	}
	if err := s.profiles.Prune(ctx, sess.ID, snapshotKeep); err != nil {
		s.log.Warn("prune profile snapshots", "session_id", sess.ID, "err", err)
	}
}

func (s *Server) logTurn(ctx context.Context, data store.TurnEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendTurn(ctx, data); err != nil {
		s.log.Warn("append turn event", "session_id", data.SessionID, "err", err)
	}
}

// kidNameOrEmpty returns "" when the profile has no name so downstream
// layers fall back to their own default address.
func kidNameOrEmpty(profile map[string]any) string {
	if name := persona.KidName(profile); name != persona.DefaultKidName {
		return name
	}
	return ""
}
