package store

import (
	"context"
	"fmt"

	"github.com/paixi-lab/paixi/ent"
	"github.com/paixi-lab/paixi/ent/profilesnapshot"
)

// profileRepo implements ProfileRepo using the ent client.
type profileRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *profileRepo) Save(ctx context.Context, snap *ProfileSnapshot) error {
	seqNum := snap.Sequence
	if seqNum == 0 {
		var err error
		seqNum, err = r.seq.Next(ctx)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
	}

	builder := r.client.ProfileSnapshot.Create().
		SetSessionID(snap.SessionID).
		SetSequence(seqNum).
		SetData(snap.Data)
	if !snap.Timestamp.IsZero() {
		builder = builder.SetTimestamp(snap.Timestamp)
	}

	_, err := builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save profile snapshot: %w", err)
	}
	return nil
}

func (r *profileRepo) Latest(ctx context.Context, sessionID string) (*ProfileSnapshot, error) {
	s, err := r.client.ProfileSnapshot.Query().
		Where(profilesnapshot.SessionID(sessionID)).
		Order(ent.Desc(profilesnapshot.FieldSequence)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest profile snapshot: %w", err)
	}
	return &ProfileSnapshot{
		ID:        s.ID,
		SessionID: s.SessionID,
		Sequence:  s.Sequence,
		Timestamp: s.Timestamp,
		Data:      s.Data,
	}, nil
}

func (r *profileRepo) Prune(ctx context.Context, sessionID string, keep int) error {
	// Find the threshold: the Nth most recent snapshot of this session.
	snapshots, err := r.client.ProfileSnapshot.Query().
		Where(profilesnapshot.SessionID(sessionID)).
		Order(ent.Desc(profilesnapshot.FieldSequence)).
		Offset(keep).
		Limit(1).
		All(ctx)
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if len(snapshots) == 0 {
		return nil // fewer than keep snapshots exist
	}

	threshold := snapshots[0].Sequence
	_, err = r.client.ProfileSnapshot.Delete().
		Where(
			profilesnapshot.SessionID(sessionID),
			profilesnapshot.SequenceLTE(threshold),
		).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("prune profile snapshots: %w", err)
	}
	return nil
}
