package main

import (
	"sketchboard/internal/keys"
)

// performHistory steps the current buffer's history. A step the history had
// to drop is reported the same as an empty stack.
func (m *model) performHistory(c keys.Command) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	if keys.Apply(c, buf.history) {
		m.successMessage = c.String()
		return
	}
	m.successMessage = "nothing to " + c.String()
}
