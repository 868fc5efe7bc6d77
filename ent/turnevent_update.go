// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/paixi-lab/paixi/ent/predicate"
	"github.com/paixi-lab/paixi/ent/turnevent"
)

// TurnEventUpdate is the builder for updating TurnEvent entities.
type TurnEventUpdate struct {
	config
	hooks    []Hook
	mutation *TurnEventMutation
}

// Where appends a list predicates to the TurnEventUpdate builder.
func (_u *TurnEventUpdate) Where(ps ...predicate.TurnEvent) *TurnEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSessionID sets the "session_id" field.
func (_u *TurnEventUpdate) SetSessionID(v string) *TurnEventUpdate {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *TurnEventUpdate) SetNillableSessionID(v *string) *TurnEventUpdate {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetRole sets the "role" field.
func (_u *TurnEventUpdate) SetRole(v string) *TurnEventUpdate {
	_u.mutation.SetRole(v)
	return _u
}

// SetNillableRole sets the "role" field if the given value is not nil.
func (_u *TurnEventUpdate) SetNillableRole(v *string) *TurnEventUpdate {
	if v != nil {
		_u.SetRole(*v)
	}
	return _u
}

// SetText sets the "text" field.
func (_u *TurnEventUpdate) SetText(v string) *TurnEventUpdate {
	_u.mutation.SetText(v)
	return _u
}

// SetNillableText sets the "text" field if the given value is not nil.
func (_u *TurnEventUpdate) SetNillableText(v *string) *TurnEventUpdate {
	if v != nil {
		_u.SetText(*v)
	}
	return _u
}

// SetHandler sets the "handler" field.
func (_u *TurnEventUpdate) SetHandler(v string) *TurnEventUpdate {
	_u.mutation.SetHandler(v)
	return _u
}

// SetNillableHandler sets the "handler" field if the given value is not nil.
func (_u *TurnEventUpdate) SetNillableHandler(v *string) *TurnEventUpdate {
	if v != nil {
		_u.SetHandler(*v)
	}
	return _u
}

// SetEmotion sets the "emotion" field.
func (_u *TurnEventUpdate) SetEmotion(v string) *TurnEventUpdate {
	_u.mutation.SetEmotion(v)
	return _u
}

// SetNillableEmotion sets the "emotion" field if the given value is not nil.
func (_u *TurnEventUpdate) SetNillableEmotion(v *string) *TurnEventUpdate {
	if v != nil {
		_u.SetEmotion(*v)
	}
	return _u
}

// SetMotions sets the "motions" field.
func (_u *TurnEventUpdate) SetMotions(v []int) *TurnEventUpdate {
	_u.mutation.SetMotions(v)
	return _u
}

// AppendMotions appends value to the "motions" field.
func (_u *TurnEventUpdate) AppendMotions(v []int) *TurnEventUpdate {
	_u.mutation.AppendMotions(v)
	return _u
}

// ClearMotions clears the value of the "motions" field.
func (_u *TurnEventUpdate) ClearMotions() *TurnEventUpdate {
	_u.mutation.ClearMotions()
	return _u
}

// Mutation returns the TurnEventMutation object of the builder.
func (_u *TurnEventUpdate) Mutation() *TurnEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *TurnEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *TurnEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *TurnEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *TurnEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *TurnEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(turnevent.Table, turnevent.Columns, sqlgraph.NewFieldSpec(turnevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(turnevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Role(); ok {
		_spec.SetField(turnevent.FieldRole, field.TypeString, value)
	}
	if value, ok := _u.mutation.Text(); ok {
		_spec.SetField(turnevent.FieldText, field.TypeString, value)
	}
	if value, ok := _u.mutation.Handler(); ok {
		_spec.SetField(turnevent.FieldHandler, field.TypeString, value)
	}
	if value, ok := _u.mutation.Emotion(); ok {
		_spec.SetField(turnevent.FieldEmotion, field.TypeString, value)
	}
	if value, ok := _u.mutation.Motions(); ok {
		_spec.SetField(turnevent.FieldMotions, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedMotions(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, turnevent.FieldMotions, value)
		})
	}
	if _u.mutation.MotionsCleared() {
		_spec.ClearField(turnevent.FieldMotions, field.TypeJSON)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{turnevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// TurnEventUpdateOne is the builder for updating a single TurnEvent entity.
type TurnEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *TurnEventMutation
}

// SetSessionID sets the "session_id" field.
func (_u *TurnEventUpdateOne) SetSessionID(v string) *TurnEventUpdateOne {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *TurnEventUpdateOne) SetNillableSessionID(v *string) *TurnEventUpdateOne {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetRole sets the "role" field.
func (_u *TurnEventUpdateOne) SetRole(v string) *TurnEventUpdateOne {
	_u.mutation.SetRole(v)
	return _u
}

// SetNillableRole sets the "role" field if the given value is not nil.
func (_u *TurnEventUpdateOne) SetNillableRole(v *string) *TurnEventUpdateOne {
	if v != nil {
		_u.SetRole(*v)
	}
	return _u
}

// SetText sets the "text" field.
func (_u *TurnEventUpdateOne) SetText(v string) *TurnEventUpdateOne {
	_u.mutation.SetText(v)
	return _u
}

// SetNillableText sets the "text" field if the given value is not nil.
func (_u *TurnEventUpdateOne) SetNillableText(v *string) *TurnEventUpdateOne {
	if v != nil {
		_u.SetText(*v)
	}
	return _u
}

// SetHandler sets the "handler" field.
func (_u *TurnEventUpdateOne) SetHandler(v string) *TurnEventUpdateOne {
	_u.mutation.SetHandler(v)
	return _u
}

// SetNillableHandler sets the "handler" field if the given value is not nil.
func (_u *TurnEventUpdateOne) SetNillableHandler(v *string) *TurnEventUpdateOne {
	if v != nil {
		_u.SetHandler(*v)
	}
	return _u
}

// SetEmotion sets the "emotion" field.
func (_u *TurnEventUpdateOne) SetEmotion(v string) *TurnEventUpdateOne {
	_u.mutation.SetEmotion(v)
	return _u
}

// SetNillableEmotion sets the "emotion" field if the given value is not nil.
func (_u *TurnEventUpdateOne) SetNillableEmotion(v *string) *TurnEventUpdateOne {
	if v != nil {
		_u.SetEmotion(*v)
	}
	return _u
}

// SetMotions sets the "motions" field.
func (_u *TurnEventUpdateOne) SetMotions(v []int) *TurnEventUpdateOne {
	_u.mutation.SetMotions(v)
	return _u
}

// AppendMotions appends value to the "motions" field.
func (_u *TurnEventUpdateOne) AppendMotions(v []int) *TurnEventUpdateOne {
	_u.mutation.AppendMotions(v)
	return _u
}

// ClearMotions clears the value of the "motions" field.
func (_u *TurnEventUpdateOne) ClearMotions() *TurnEventUpdateOne {
	_u.mutation.ClearMotions()
	return _u
}

// Mutation returns the TurnEventMutation object of the builder.
func (_u *TurnEventUpdateOne) Mutation() *TurnEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the TurnEventUpdate builder.
func (_u *TurnEventUpdateOne) Where(ps ...predicate.TurnEvent) *TurnEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *TurnEventUpdateOne) Select(field string, fields ...string) *TurnEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated TurnEvent entity.
func (_u *TurnEventUpdateOne) Save(ctx context.Context) (*TurnEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *TurnEventUpdateOne) SaveX(ctx context.Context) *TurnEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *TurnEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *TurnEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *TurnEventUpdateOne) sqlSave(ctx context.Context) (_node *TurnEvent, err error) {
	_spec := sqlgraph.NewUpdateSpec(turnevent.Table, turnevent.Columns, sqlgraph.NewFieldSpec(turnevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "TurnEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, turnevent.FieldID)
		for _, f := range fields {
			if !turnevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != turnevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(turnevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Role(); ok {
		_spec.SetField(turnevent.FieldRole, field.TypeString, value)
	}
	if value, ok := _u.mutation.Text(); ok {
		_spec.SetField(turnevent.FieldText, field.TypeString, value)
	}
	if value, ok := _u.mutation.Handler(); ok {
		_spec.SetField(turnevent.FieldHandler, field.TypeString, value)
	}
	if value, ok := _u.mutation.Emotion(); ok {
		_spec.SetField(turnevent.FieldEmotion, field.TypeString, value)
	}
	if value, ok := _u.mutation.Motions(); ok {
		_spec.SetField(turnevent.FieldMotions, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedMotions(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, turnevent.FieldMotions, value)
		})
	}
	if _u.mutation.MotionsCleared() {
		_spec.ClearField(turnevent.FieldMotions, field.TypeJSON)
	}
	_node = &TurnEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{turnevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
