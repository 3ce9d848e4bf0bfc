package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) handleLayerKey(key string) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	active := buf.layers.Active()
	var err error
	switch key {
	case "L":
		l := buf.layers.Add(fmt.Sprintf("Layer %d", len(buf.layers.All())+1))
		err = buf.layers.SetActive(l.ID)
	case "R":
		m.layerInput = LayerInputRename
		m.inputText = active.Name
		m.mode = ModeLayerInput
	case "g":
		m.layerInput = LayerInputGoto
		m.inputText = ""
		m.mode = ModeLayerInput
	case "V":
		err = buf.layers.SetVisible(active.ID, !active.Visible)
	case "K":
		err = buf.layers.SetLocked(active.ID, !active.Locked)
	case "X":
		err = m.removeActiveLayer()
	case "[":
		err = buf.layers.Move(active.ID, -1)
	case "]":
		err = buf.layers.Move(active.ID, 1)
	}
	m.report("layer", err)
}

// removeActiveLayer drops the active layer. Layers that still hold objects
// are kept so no drawing disappears outside the history.
func (m *model) removeActiveLayer() error {
	buf := m.getCurrentBuffer()
	active := buf.layers.Active()
	for _, o := range buf.surface.Objects() {
		if o.LayerID() == active.ID {
			return fmt.Errorf("%q is not empty", active.Name)
		}
	}
	return buf.layers.Remove(active.ID)
}

func (m *model) updateLayerInput(msg tea.KeyMsg) {
	buf := m.getCurrentBuffer()
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
	case "enter":
		m.mode = ModeNormal
		name := strings.TrimSpace(m.inputText)
		if name == "" {
			return
		}
		switch m.layerInput {
		case LayerInputRename:
			m.report("rename layer", buf.layers.Rename(buf.layers.Active().ID, name))
		case LayerInputGoto:
			l, ok := buf.layers.Find(name)
			if !ok {
				m.errorMessage = fmt.Sprintf("no layer matches %q", name)
				return
			}
			m.report("go to layer", buf.layers.SetActive(l.ID))
		}
	case "backspace":
		if r := []rune(m.inputText); len(r) > 0 {
			m.inputText = string(r[:len(r)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.inputText += string(msg.Runes)
		}
	}
}
