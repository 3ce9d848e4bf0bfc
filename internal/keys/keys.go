// Package keys maps key chords to history commands.
package keys

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// Command is what a chord asks the editor to do.
type Command int

const (
	CommandNone Command = iota
	CommandUndo
	CommandRedo
)

func (c Command) String() string {
	switch c {
	case CommandUndo:
		return "undo"
	case CommandRedo:
		return "redo"
	}
	return "none"
}

// Default chords. Terminals report ctrl+shift+z as ctrl+z, so the shifted
// form only fires where the terminal sends it distinctly.
var (
	DefaultUndo = []string{"ctrl+z", "u"}
	DefaultRedo = []string{"ctrl+y", "ctrl+shift+z", "U"}
)

// Performer is anything that can step history.
type Performer interface {
	PerformUndo() bool
	PerformRedo() bool
}

// Binding resolves chords in bubbletea's KeyMsg.String form.
type Binding struct {
	lookup map[string]Command
}

// NewBinding builds a binding. Empty lists fall back to the defaults. A chord
// listed for both commands resolves to redo.
func NewBinding(undo, redo []string) *Binding {
	if len(undo) == 0 {
		undo = DefaultUndo
	}
	if len(redo) == 0 {
		redo = DefaultRedo
	}
	b := &Binding{lookup: make(map[string]Command, len(undo)+len(redo))}
	for _, k := range undo {
		b.lookup[k] = CommandUndo
	}
	for _, k := range redo {
		b.lookup[k] = CommandRedo
	}
	return b
}

// Resolve returns the command bound to msg, or CommandNone.
func (b *Binding) Resolve(msg tea.KeyMsg) Command {
	return b.lookup[msg.String()]
}

// Chords returns the chords bound to c, sorted.
func (b *Binding) Chords(c Command) []string {
	var out []string
	for k, v := range b.lookup {
		if v == c {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Apply runs c against p and reports whether history moved.
func Apply(c Command, p Performer) bool {
	switch c {
	case CommandUndo:
		return p.PerformUndo()
	case CommandRedo:
		return p.PerformRedo()
	}
	return false
}
