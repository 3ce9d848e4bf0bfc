package history

// DefaultMaxLength bounds each stack when no capacity is configured.
const DefaultMaxLength = 50

// Store holds the undo and redo stacks. Both are bounded; once full, the
// oldest entry is dropped.
type Store struct {
	max  int
	undo []Entry
	redo []Entry
}

// NewStore returns an empty store. A non-positive max selects
// DefaultMaxLength.
func NewStore(max int) *Store {
	if max <= 0 {
		max = DefaultMaxLength
	}
	return &Store{max: max}
}

// MaxLength returns the capacity of each stack.
func (s *Store) MaxLength() int { return s.max }

// RecordUndo appends a fresh user entry. The redo stack is cleared: a new
// action forks the timeline and the old future is gone.
func (s *Store) RecordUndo(e Entry) {
	s.pushUndo(e)
	clear(s.redo)
	s.redo = s.redo[:0]
}

// RecordRedo appends to the redo stack. The undo stack is left alone.
func (s *Store) RecordRedo(e Entry) {
	s.redo = s.push(s.redo, e)
}

// pushUndo appends without touching the redo stack; used when a redo hands
// its complementary entry back.
func (s *Store) pushUndo(e Entry) {
	s.undo = s.push(s.undo, e)
}

func (s *Store) push(stack []Entry, e Entry) []Entry {
	stack = append(stack, e)
	if over := len(stack) - s.max; over > 0 {
		n := copy(stack, stack[over:])
		clear(stack[n:])
		stack = stack[:n]
	}
	return stack
}

// PeekUndo returns the latest undo entry without removing it.
func (s *Store) PeekUndo() (Entry, bool) { return peek(s.undo) }

// PeekRedo returns the latest redo entry without removing it.
func (s *Store) PeekRedo() (Entry, bool) { return peek(s.redo) }

// PopUndo removes and returns the latest undo entry.
func (s *Store) PopUndo() (Entry, bool) {
	e, ok := peek(s.undo)
	if ok {
		s.undo = s.undo[:len(s.undo)-1]
	}
	return e, ok
}

// PopRedo removes and returns the latest redo entry.
func (s *Store) PopRedo() (Entry, bool) {
	e, ok := peek(s.redo)
	if ok {
		s.redo = s.redo[:len(s.redo)-1]
	}
	return e, ok
}

// UndoLen returns the number of undo entries.
func (s *Store) UndoLen() int { return len(s.undo) }

// RedoLen returns the number of redo entries.
func (s *Store) RedoLen() int { return len(s.redo) }

// UndoEntries returns a copy of the undo stack, oldest first.
func (s *Store) UndoEntries() []Entry { return append([]Entry(nil), s.undo...) }

// RedoEntries returns a copy of the redo stack, oldest first.
func (s *Store) RedoEntries() []Entry { return append([]Entry(nil), s.redo...) }

// Clear empties both stacks.
func (s *Store) Clear() {
	s.undo = nil
	s.redo = nil
}

func peek(stack []Entry) (Entry, bool) {
	if len(stack) == 0 {
		return Entry{}, false
	}
	return stack[len(stack)-1], true
}
