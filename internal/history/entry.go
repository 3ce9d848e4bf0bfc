// Package history records reversible scene mutations and replays them for
// undo and redo.
package history

import (
	"errors"

	"sketchboard/internal/scene"
)

// Action is the mutation class of an entry.
type Action string

const (
	ActionAdd    Action = "add"
	ActionModify Action = "modify"
	ActionRemove Action = "remove"
)

var (
	// ErrUnknownAction reports an entry whose action has no dispatch cell.
	ErrUnknownAction = errors.New("unknown history action")
	// ErrEmptyEntry reports an entry without targets.
	ErrEmptyEntry = errors.New("history entry has no targets")
)

// Target is one affected object. For add and remove the payload is the full
// object record; for modify it holds the values of exactly the changed keys.
// Index is the stacking position a removed object had and is unused by the
// other actions.
type Target struct {
	ObjectID string
	Payload  scene.Props
	Index    int
}

// Entry is one undoable step. A multi-object mutation is a single entry with
// one target per object, applied atomically.
type Entry struct {
	Action   Action
	Targets  []Target
	Viewport scene.Pan
}

// NewEntry builds an entry, copying every payload so later changes to the
// inputs cannot reach it.
func NewEntry(action Action, viewport scene.Pan, targets ...Target) Entry {
	ts := make([]Target, len(targets))
	for i, t := range targets {
		ts[i] = Target{ObjectID: t.ObjectID, Payload: t.Payload.Clone(), Index: t.Index}
	}
	return Entry{Action: action, Targets: ts, Viewport: viewport}
}

// ObjectIDs returns the affected ids in entry order.
func (e Entry) ObjectIDs() []string {
	ids := make([]string, len(e.Targets))
	for i, t := range e.Targets {
		ids[i] = t.ObjectID
	}
	return ids
}
