package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TurnEvent records one side of a conversation turn: what the child said
// or what the companion answered, and which layer produced the answer.
type TurnEvent struct {
	ent.Schema
}

func (TurnEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (TurnEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Comment("Conversation session the turn belongs to"),
		field.String("role").
			Comment("Who spoke: user or agent"),
		field.Text("text").
			Comment("Raw utterance or formatted reply"),
		field.String("handler").
			Default("").
			Comment("Layer that produced an agent turn: curriculum, topicqa, persona, system"),
		field.String("emotion").
			Default("").
			Comment("Emotion label attached to the turn"),
		field.JSON("motions", []int{}).
			Optional().
			Comment("Motion sequence sent with an agent turn"),
	}
}

func (TurnEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("handler"),
	}
}
