package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchboard/internal/scene"
)

func entryFor(id string) Entry {
	return NewEntry(ActionAdd, scene.Pan{}, Target{ObjectID: id, Payload: scene.Props{"kind": "rect"}})
}

func TestStoreDefaults(t *testing.T) {
	assert.Equal(t, DefaultMaxLength, NewStore(0).MaxLength())
	assert.Equal(t, DefaultMaxLength, NewStore(-3).MaxLength())
	assert.Equal(t, 7, NewStore(7).MaxLength())
}

func TestStoreEmptyAccessors(t *testing.T) {
	s := NewStore(0)
	_, ok := s.PeekUndo()
	assert.False(t, ok)
	_, ok = s.PopUndo()
	assert.False(t, ok)
	_, ok = s.PeekRedo()
	assert.False(t, ok)
	_, ok = s.PopRedo()
	assert.False(t, ok)
}

func TestRecordUndoThenPeek(t *testing.T) {
	s := NewStore(0)
	s.RecordRedo(entryFor("stale"))

	e := entryFor("a")
	s.RecordUndo(e)

	got, ok := s.PeekUndo()
	require.True(t, ok)
	assert.Equal(t, e, got)
	assert.Equal(t, 0, s.RedoLen(), "recording a new action clears redo")
}

func TestRecordRedoKeepsUndo(t *testing.T) {
	s := NewStore(0)
	s.RecordUndo(entryFor("a"))
	s.RecordRedo(entryFor("b"))
	assert.Equal(t, 1, s.UndoLen())
	assert.Equal(t, 1, s.RedoLen())
}

func TestPushUndoKeepsRedo(t *testing.T) {
	s := NewStore(0)
	s.RecordRedo(entryFor("b"))
	s.pushUndo(entryFor("a"))
	assert.Equal(t, 1, s.RedoLen())
}

func TestRecordUndoReleasesRedoEntries(t *testing.T) {
	s := NewStore(0)
	s.RecordRedo(entryFor("a"))
	s.RecordRedo(entryFor("b"))
	backing := s.redo[:2]

	s.RecordUndo(entryFor("c"))
	assert.Equal(t, 0, s.RedoLen())
	assert.Equal(t, []Entry{{}, {}}, backing)
}

func TestPopOrder(t *testing.T) {
	s := NewStore(0)
	s.RecordUndo(entryFor("a"))
	s.RecordUndo(entryFor("b"))

	e, _ := s.PopUndo()
	assert.Equal(t, []string{"b"}, e.ObjectIDs())
	e, _ = s.PopUndo()
	assert.Equal(t, []string{"a"}, e.ObjectIDs())
	assert.Equal(t, 0, s.UndoLen())
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := NewStore(50)
	for i := 1; i <= 51; i++ {
		s.RecordUndo(entryFor(fmt.Sprint(i)))
	}
	entries := s.UndoEntries()
	require.Len(t, entries, 50)
	assert.Equal(t, []string{"2"}, entries[0].ObjectIDs())
	assert.Equal(t, []string{"51"}, entries[49].ObjectIDs())

	small := NewStore(3)
	for i := 0; i < 5; i++ {
		small.RecordRedo(entryFor(fmt.Sprint(i)))
	}
	redo := small.RedoEntries()
	require.Len(t, redo, 3)
	assert.Equal(t, []string{"2"}, redo[0].ObjectIDs())
}

func TestEntriesAreCopies(t *testing.T) {
	s := NewStore(0)
	s.RecordUndo(entryFor("a"))
	entries := s.UndoEntries()
	entries[0] = entryFor("z")

	e, _ := s.PeekUndo()
	assert.Equal(t, []string{"a"}, e.ObjectIDs())
}

func TestNewEntryCopiesPayload(t *testing.T) {
	payload := scene.Props{"left": 1.0}
	e := NewEntry(ActionModify, scene.Pan{}, Target{ObjectID: "a", Payload: payload})
	payload["left"] = 99.0
	assert.Equal(t, 1.0, e.Targets[0].Payload["left"])
}

func TestClear(t *testing.T) {
	s := NewStore(0)
	s.RecordUndo(entryFor("a"))
	s.RecordRedo(entryFor("b"))
	s.Clear()
	assert.Equal(t, 0, s.UndoLen())
	assert.Equal(t, 0, s.RedoLen())
}
