package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sketchboard/internal/export"
	"sketchboard/internal/keys"
)

var (
	modeStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	badgeStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3"))
	idleStyle    = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func (m *model) View() string {
	if m.help && m.mode != ModeStartup {
		return m.helpView()
	}
	if m.mode == ModeStartup {
		return m.startupView()
	}

	width, height := m.canvasWidth(), m.canvasHeight()
	var result strings.Builder
	if m.showBufferBar() {
		result.WriteString(m.renderBufferBar(width))
		result.WriteString("\n")
	}

	lines := m.renderCanvas(width, height).Lines()
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(m.statusLine()))
	return result.String()
}

// renderCanvas draws the current buffer plus gesture previews and the
// cursor.
func (m *model) renderCanvas(width, height int) *export.Grid {
	buf := m.getCurrentBuffer()
	opts := []export.Option{export.WithLayers(buf.layers)}
	if m.selected != "" {
		opts = append(opts, export.WithSelected(m.selected))
	}
	g := export.Render(buf.surface, width, height, opts...)

	screen := func(x, y float64) (int, int) {
		sx, sy := buf.surface.SceneToScreen(x, y)
		return int(math.Round(sx)), int(math.Round(sy))
	}
	switch m.mode {
	case ModeDrawing:
		for i := 0; i+1 < len(m.strokePoints); i += 2 {
			x, y := screen(m.strokePoints[i], m.strokePoints[i+1])
			g.Set(x, y, '.')
		}
		if m.anchor != nil {
			x, y := screen(m.anchor.X, m.anchor.Y)
			g.Set(x, y, '+')
		}
	case ModeTextInput:
		x, y := screen(m.textInputX, m.textInputY)
		for i, line := range strings.Split(m.textInputText, "\n") {
			g.Text(x, y+i, line)
		}
	}
	if m.mode != ModeFileInput {
		g.Set(m.cursorX, m.cursorY, '█')
	}
	return g
}

func (m *model) renderBufferBar(width int) string {
	var bar strings.Builder
	bar.WriteString("Open drawings: ")
	for i, buf := range m.buffers {
		if i > 0 {
			bar.WriteString(" | ")
		}
		name := buf.filename
		if name == "" {
			name = fmt.Sprintf("Buffer %d", i+1)
		}
		if i == m.currentBufferIndex {
			name = "[" + name + "]"
		}
		bar.WriteString(name)
	}
	return runewidth.FillRight(runewidth.Truncate(bar.String(), width, ""), width)
}

func (m *model) modeString() string {
	switch m.mode {
	case ModeStartup:
		return "STARTUP"
	case ModeNormal:
		if m.zPanMode {
			return "PAN"
		}
		return "NORMAL"
	case ModeDrawing:
		return "DRAW"
	case ModeTextInput:
		return "TEXT"
	case ModeMove:
		return "MOVE"
	case ModeResize:
		return "RESIZE"
	case ModeLayerInput:
		return "LAYER"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m *model) layerBadge() string {
	l := m.getCurrentBuffer().layers.Active()
	label := l.Name
	if !l.Visible {
		label += " (hidden)"
	}
	if l.Locked {
		label += " (locked)"
	}
	return label
}

// historyBadges shows the undo and redo depth of the current buffer.
func (m *model) historyBadges() string {
	buf := m.getCurrentBuffer()
	undo := idleStyle.Render(fmt.Sprintf("undo %d", buf.undoDepth))
	if buf.undoDepth > 0 {
		undo = badgeStyle.Render(fmt.Sprintf("undo %d", buf.undoDepth))
	}
	redo := idleStyle.Render(fmt.Sprintf("redo %d", buf.redoDepth))
	if buf.redoDepth > 0 {
		redo = badgeStyle.Render(fmt.Sprintf("redo %d", buf.redoDepth))
	}
	return undo + " " + redo
}

func (m *model) statusLine() string {
	mode := modeStyle.Render(m.modeString())
	var detail string
	switch m.mode {
	case ModeTextInput:
		detail = "Text: " + withCursor(strings.ReplaceAll(m.textInputText, "\n", "⏎"), m.textInputCursorPos) +
			" | Enter=newline, Ctrl+S=save, Esc=cancel"
	case ModeDrawing:
		detail = fmt.Sprintf("%s | move cursor, Space=finish, Esc=cancel", m.tool)
	case ModeMove:
		detail = "hjkl/arrows=move, Enter=finish, Esc=cancel"
	case ModeResize:
		detail = "hjkl/arrows=resize, Enter=finish, Esc=cancel"
	case ModeLayerInput:
		prompt := "Rename layer"
		if m.layerInput == LayerInputGoto {
			prompt = "Go to layer"
		}
		detail = fmt.Sprintf("%s: %s█ | Enter=confirm, Esc=cancel", prompt, m.inputText)
	case ModeFileInput:
		var op string
		switch m.fileOp {
		case FileOpSavePNG:
			op = "Export PNG filename"
		case FileOpSaveVisualTXT:
			op = "Export text filename"
		case FileOpInsertImage:
			op = "Insert image file"
		}
		detail = fmt.Sprintf("%s: %s█ | Enter=confirm, Esc=cancel", op, m.filename)
	case ModeConfirm:
		detail = m.confirmMessage()
	default:
		s := m.surface()
		pan := s.View()
		detail = fmt.Sprintf("Tool: %s | Layer: %s | Zoom: %.0f%% | Pan: (%.0f,%.0f) | %s",
			m.tool, m.layerBadge(), s.Zoom()*100, pan.X0, pan.Y0, m.historyBadges())
	}

	status := mode + " " + detail
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage != "" {
		status += " | " + successStyle.Render(m.successMessage)
	} else if m.mode == ModeNormal {
		status += " | ? for help"
	}
	return status
}

func (m *model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteObject:
		return "Delete the selected object? (y/n)"
	case ConfirmQuit:
		return "Quit? (y/n)"
	case ConfirmCloseBuffer:
		return "Close current drawing? Unsaved changes will be lost. (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.exportPath())
	}
	return ""
}

// withCursor replaces the rune at pos with a block cursor.
func withCursor(text string, pos int) string {
	runes := []rune(text)
	if pos >= len(runes) {
		return text + "█"
	}
	runes[pos] = '█'
	return string(runes)
}

func (m *model) startupView() string {
	lines := []string{
		"sketchboard",
		"",
		"  any key   start drawing",
		"  q         quit",
		"  ?         help once started",
	}
	return strings.Join(lines, "\n")
}

func (m *model) helpView() string {
	undo := strings.Join(m.binding.Chords(keys.CommandUndo), ", ")
	redo := strings.Join(m.binding.Chords(keys.CommandRedo), ", ")
	lines := []string{
		"sketchboard help",
		"================",
		"",
		"Navigation:",
		"  h/j/k/l, arrows   move cursor (shift+arrows moves 2x)",
		"  z                 toggle pan mode (h/j/k/l pans the view)",
		"  + / - / 0         zoom in / out / reset about the cursor",
		"",
		"Tools:",
		"  1 select  2 rect  3 circle  4 text  5 line",
		"  6 arrow   7 measure  8 pencil  9 pan",
		"  space             select, or start and finish a shape",
		"  esc               abort the current gesture",
		"",
		"Selection:",
		"  m / r             move / resize, Enter commits, Esc reverts",
		"  d                 delete",
		"  c / p             copy / paste",
		"  f                 cycle fill color",
		"  i                 insert an image file at the cursor",
		"",
		"Layers:",
		"  L new  R rename  g go to (fuzzy)  V show/hide  K lock/unlock",
		"  X remove empty layer  [ / ] move down / up",
		"",
		"History:",
		"  " + undo + "   undo",
		"  " + redo + "   redo",
		"",
		"Drawings:",
		"  n new  tab next  x close  s export PNG  S export text  q quit",
		"",
		"Press ? or esc to close",
	}
	return strings.Join(lines, "\n")
}
