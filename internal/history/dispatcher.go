package history

import (
	"fmt"

	"sketchboard/internal/scene"
)

// Direction selects which way an entry is replayed.
type Direction int

const (
	Undo Direction = iota
	Redo
)

func (d Direction) String() string {
	if d == Undo {
		return "undo"
	}
	return "redo"
}

type dispatchKey struct {
	dir    Direction
	action Action
}

// operation replays an entry and returns the targets of its complementary
// entry.
type operation func(d *Dispatcher, e Entry) ([]Target, error)

var dispatchTable = map[dispatchKey]operation{
	{Undo, ActionAdd}:    (*Dispatcher).remove,
	{Undo, ActionModify}: (*Dispatcher).restore,
	{Undo, ActionRemove}: (*Dispatcher).recreate,
	{Redo, ActionAdd}:    (*Dispatcher).recreate,
	{Redo, ActionModify}: (*Dispatcher).restore,
	{Redo, ActionRemove}: (*Dispatcher).remove,
}

// Dispatcher executes history entries against a surface. All of its
// mutations are tagged scene.ProducerHistory so they are never recorded
// again.
type Dispatcher struct {
	surface *scene.Surface
}

// NewDispatcher returns a dispatcher bound to s.
func NewDispatcher(s *scene.Surface) *Dispatcher {
	return &Dispatcher{surface: s}
}

// Dispatch replays e in direction dir and returns the entry to push on the
// opposite stack. On error the surface is left as it was.
func (d *Dispatcher) Dispatch(dir Direction, e Entry) (Entry, error) {
	if len(e.Targets) == 0 {
		return Entry{}, ErrEmptyEntry
	}
	op, ok := dispatchTable[dispatchKey{dir, e.Action}]
	if !ok {
		return Entry{}, fmt.Errorf("%s %q: %w", dir, e.Action, ErrUnknownAction)
	}
	targets, err := op(d, e)
	if err != nil {
		return Entry{}, fmt.Errorf("%s %s: %w", dir, e.Action, err)
	}
	return NewEntry(e.Action, e.Viewport, targets...), nil
}

func (d *Dispatcher) remove(e Entry) ([]Target, error) {
	targets := e.Targets
	if e.Action == ActionRemove {
		targets = make([]Target, len(e.Targets))
		for i, t := range e.Targets {
			targets[i] = Target{ObjectID: t.ObjectID, Payload: t.Payload, Index: d.surface.IndexOf(t.ObjectID)}
		}
	}
	if err := d.surface.Remove(scene.ProducerHistory, e.ObjectIDs()...); err != nil {
		return nil, err
	}
	return targets, nil
}

func (d *Dispatcher) recreate(e Entry) ([]Target, error) {
	objs := make([]*scene.Object, len(e.Targets))
	at := make([]int, len(e.Targets))
	for i, t := range e.Targets {
		o, err := scene.FromRecord(t.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.ObjectID, err)
		}
		if o.ID() != t.ObjectID {
			return nil, fmt.Errorf("decode %s: %w: record id %q", t.ObjectID, scene.ErrInvalidRecord, o.ID())
		}
		objs[i] = o
		at[i] = t.Index
	}
	// Removed objects go back to their old stacking position, added ones on
	// top where they were created.
	var err error
	if e.Action == ActionRemove {
		err = d.surface.Insert(scene.ProducerHistory, at, objs...)
	} else {
		err = d.surface.Add(scene.ProducerHistory, objs...)
	}
	if err != nil {
		return nil, err
	}
	scene.RestoreViewport(d.surface, e.Viewport)
	return e.Targets, nil
}

func (d *Dispatcher) restore(e Entry) ([]Target, error) {
	changes := make([]scene.Change, len(e.Targets))
	reverse := make([]Target, len(e.Targets))
	for i, t := range e.Targets {
		o, ok := scene.FindByIdentity(d.surface, t.ObjectID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", scene.ErrObjectNotFound, t.ObjectID)
		}
		reverse[i] = Target{ObjectID: t.ObjectID, Payload: DiffForReversal(o.Props(), t.Payload)}
		changes[i] = scene.Change{ID: t.ObjectID, Patch: t.Payload}
	}
	if err := d.surface.Modify(scene.ProducerHistory, changes...); err != nil {
		return nil, err
	}
	scene.RestoreViewport(d.surface, e.Viewport)
	return reverse, nil
}
