package store

import (
	"context"
	"fmt"

	"github.com/paixi-lab/paixi/ent"
	"github.com/paixi-lab/paixi/ent/turnevent"
)

func (r *eventRepo) AppendTurn(ctx context.Context, data TurnEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.TurnEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetRole(data.Role).
		SetText(data.Text).
		SetHandler(data.Handler).
		SetEmotion(data.Emotion)

	if len(data.Motions) > 0 {
		builder = builder.SetMotions(data.Motions)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save turn event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	q := r.client.TurnEvent.Query().
		Where(turnevent.SessionID(sessionID)).
		Order(ent.Desc(turnevent.FieldSequence))
	if limit > 0 {
		q = q.Limit(limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent turns: %w", err)
	}

	// Query returns newest first; callers want chronological order.
	turns := make([]Turn, len(events))
	for i, e := range events {
		turns[len(events)-1-i] = Turn{
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			TurnEventData: TurnEventData{
				SessionID: e.SessionID,
				Role:      e.Role,
				Text:      e.Text,
				Handler:   e.Handler,
				Emotion:   e.Emotion,
				Motions:   e.Motions,
			},
		}
	}
	return turns, nil
}
