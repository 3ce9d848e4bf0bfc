package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sketchboard/internal/keys"
	"sketchboard/internal/scene"
)

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.help && m.mode != ModeStartup {
			switch msg.String() {
			case "esc", "q", "?":
				m.help = false
			}
			return m, nil
		}

		var cmd tea.Cmd
		switch m.mode {
		case ModeStartup:
			cmd = m.updateStartup(msg)
		case ModeNormal:
			cmd = m.updateNormal(msg)
		case ModeDrawing:
			m.updateDrawing(msg)
		case ModeTextInput:
			m.updateTextInput(msg)
		case ModeMove, ModeResize:
			m.updateTransform(msg)
		case ModeLayerInput:
			m.updateLayerInput(msg)
		case ModeFileInput:
			m.updateFileInput(msg)
		case ModeConfirm:
			cmd = m.updateConfirm(msg)
		}
		m.applyLayers()
		return m, cmd
	}
	return m, nil
}

func (m *model) updateStartup(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	default:
		m.mode = ModeNormal
	}
	return nil
}

func isSpace(key string) bool {
	return key == " " || key == "space"
}

func (m *model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	m.errorMessage = ""
	m.successMessage = ""

	// History chords are only consulted here, never while text is typed.
	if c := m.binding.Resolve(msg); c != keys.CommandNone {
		m.performHistory(c)
		return nil
	}
	if tool, ok := toolKeys[key]; ok {
		m.setTool(tool)
		return nil
	}
	if isNavigationKey(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return nil
	}
	if isSpace(key) {
		m.primaryAction()
		return nil
	}

	switch key {
	case "q":
		if m.config.Confirmations {
			m.confirm(ConfirmQuit)
			return nil
		}
		return tea.Quit
	case "?":
		m.help = true
	case "esc":
		m.clearSelection()
	case "z":
		m.zPanMode = !m.zPanMode
	case "+", "=":
		m.zoomBy(zoomStep)
	case "-":
		m.zoomBy(1 / zoomStep)
	case "0":
		m.resetZoom()
	case "m":
		m.beginTransform(ModeMove)
	case "r":
		m.beginTransform(ModeResize)
	case "d":
		if _, ok := m.selectedObject(); !ok {
			m.errorMessage = "nothing selected"
		} else if m.config.Confirmations {
			m.confirm(ConfirmDeleteObject)
		} else {
			m.deleteSelected()
		}
	case "c":
		m.copySelection()
	case "p":
		m.paste()
	case "f":
		m.cycleFill()
	case "L", "R", "g", "V", "K", "X", "[", "]":
		m.handleLayerKey(key)
	case "s":
		m.beginFileInput(FileOpSavePNG)
	case "S":
		m.beginFileInput(FileOpSaveVisualTXT)
	case "i":
		m.beginFileInput(FileOpInsertImage)
	case "n":
		m.addNewBuffer("")
	case "tab":
		m.nextBuffer()
	case "x":
		if m.config.Confirmations {
			m.confirm(ConfirmCloseBuffer)
		} else {
			m.closeCurrentBuffer()
		}
	}
	return nil
}

func (m *model) setTool(t Tool) {
	m.tool = t
	m.zPanMode = t == ToolPan
	if t != ToolSelect {
		m.clearSelection()
	}
}

// primaryAction is the space key: select under the cursor or start a
// drawing gesture with the current tool.
func (m *model) primaryAction() {
	s := m.surface()
	if s == nil {
		return
	}
	x, y := m.sceneCursor()
	switch m.tool {
	case ToolSelect:
		m.clearSelection()
		if o, ok := s.ObjectAt(x, y); ok && o.Selectable() {
			m.selected = o.ID()
		}
	case ToolRect, ToolCircle, ToolLine, ToolArrow, ToolMeasure:
		m.anchor = &point{X: x, Y: y}
		m.mode = ModeDrawing
	case ToolPencil:
		m.anchor = &point{X: x, Y: y}
		m.strokePoints = []float64{x, y}
		m.mode = ModeDrawing
	case ToolText:
		m.textInputX, m.textInputY = x, y
		m.textInputText = ""
		m.textInputCursorPos = 0
		m.mode = ModeTextInput
	case ToolPan:
		m.zPanMode = !m.zPanMode
	}
}

func (m *model) updateDrawing(msg tea.KeyMsg) {
	key := msg.String()
	switch {
	case key == "esc":
		m.abortDrawing()
	case isSpace(key) || key == "enter":
		m.commitDrawing()
	case isNavigationKey(key):
		m.handleNavigation(key, m.getMoveSpeed(key))
		if m.tool == ToolPencil {
			m.extendStroke()
		}
	}
}

func (m *model) abortDrawing() {
	m.anchor = nil
	m.strokePoints = nil
	m.mode = ModeNormal
}

func (m *model) extendStroke() {
	x, y := m.sceneCursor()
	n := len(m.strokePoints)
	if n >= 2 && m.strokePoints[n-2] == x && m.strokePoints[n-1] == y {
		return
	}
	m.strokePoints = append(m.strokePoints, x, y)
}

// shapeProps builds the props of the shape spanned by the anchor and the
// cursor.
func (m *model) shapeProps() (scene.Kind, scene.Props) {
	ax, ay := m.anchor.X, m.anchor.Y
	cx, cy := m.sceneCursor()
	switch m.tool {
	case ToolRect:
		return scene.KindRect, scene.Props{
			"left":   math.Min(ax, cx),
			"top":    math.Min(ay, cy),
			"width":  math.Max(math.Abs(cx-ax), 1),
			"height": math.Max(math.Abs(cy-ay), 1),
		}
	case ToolCircle:
		return scene.KindCircle, scene.Props{
			"left":   math.Min(ax, cx),
			"top":    math.Min(ay, cy),
			"radius": math.Max(math.Max(math.Abs(cx-ax), math.Abs(cy-ay))/2, 1),
		}
	case ToolLine, ToolArrow:
		return scene.KindLine, scene.Props{
			"x1": ax, "y1": ay, "x2": cx, "y2": cy,
			"arrowHead": m.tool == ToolArrow,
		}
	case ToolMeasure:
		return scene.KindMeasure, scene.Props{"x1": ax, "y1": ay, "x2": cx, "y2": cy}
	case ToolPencil:
		m.extendStroke()
		return scene.KindPath, scene.Props{"points": append([]float64(nil), m.strokePoints...)}
	}
	return "", nil
}

func (m *model) commitDrawing() {
	defer m.abortDrawing()
	buf := m.getCurrentBuffer()
	if buf == nil || m.anchor == nil {
		return
	}
	kind, props := m.shapeProps()
	if props == nil {
		return
	}
	_, err := buf.surface.Create(scene.ProducerUser, kind, buf.layers.Active().ID, props)
	m.report("draw "+string(kind), err)
}

func (m *model) updateTextInput(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.textInputText = ""
		m.mode = ModeNormal
	case "ctrl+s":
		m.commitText()
	case "enter":
		m.insertText("\n")
	case "backspace":
		if m.textInputCursorPos > 0 {
			runes := []rune(m.textInputText)
			m.textInputText = string(runes[:m.textInputCursorPos-1]) + string(runes[m.textInputCursorPos:])
			m.textInputCursorPos--
		}
	case "left":
		if m.textInputCursorPos > 0 {
			m.textInputCursorPos--
		}
	case "right":
		if m.textInputCursorPos < len([]rune(m.textInputText)) {
			m.textInputCursorPos++
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.insertText(string(msg.Runes))
		}
	}
}

func (m *model) insertText(s string) {
	if s == "" {
		return
	}
	runes := []rune(m.textInputText)
	pos := min(m.textInputCursorPos, len(runes))
	m.textInputText = string(runes[:pos]) + s + string(runes[pos:])
	m.textInputCursorPos = pos + len([]rune(s))
}

func (m *model) commitText() {
	defer func() {
		m.textInputText = ""
		m.textInputCursorPos = 0
		m.mode = ModeNormal
	}()
	if strings.TrimSpace(m.textInputText) == "" {
		return
	}
	buf := m.getCurrentBuffer()
	_, err := buf.surface.Create(scene.ProducerUser, scene.KindText, buf.layers.Active().ID, scene.Props{
		"left": m.textInputX,
		"top":  m.textInputY,
		"text": m.textInputText,
	})
	m.report("add text", err)
}

// beginTransform starts a move or resize of the selection. The touched keys
// are remembered so the whole gesture becomes one history entry.
func (m *model) beginTransform(mode Mode) {
	o, ok := m.selectedObject()
	if !ok {
		m.errorMessage = "nothing selected"
		return
	}
	patch := scene.MovePatch(o, 0, 0)
	if mode == ModeResize {
		patch = scene.ResizePatch(o, 0, 0)
		if patch == nil {
			m.errorMessage = fmt.Sprintf("%s cannot be resized", o.Kind())
			return
		}
	}
	m.original = o.Values(patch.Keys())
	m.mode = mode
}

func (m *model) updateTransform(msg tea.KeyMsg) {
	o, ok := m.selectedObject()
	if !ok {
		m.mode = ModeNormal
		m.clearSelection()
		return
	}
	key := msg.String()
	switch key {
	case "enter":
		m.mode = ModeNormal
		if scene.ValuesEqual(o.Values(m.original.Keys()), m.original) {
			return
		}
		err := m.surface().CommitTransform(scene.ProducerUser, scene.Transform{ID: o.ID(), Original: m.original})
		m.report("transform", err)
	case "esc":
		m.mode = ModeNormal
		m.report("revert", m.surface().Set(o.ID(), m.original))
	default:
		dx, dy, ok := direction(key, m.getMoveSpeed(key))
		if !ok {
			return
		}
		patch := scene.MovePatch(o, dx, dy)
		if m.mode == ModeResize {
			patch = scene.ResizePatch(o, dx, dy)
		}
		m.report("transform", m.surface().Set(o.ID(), patch))
	}
}

func (m *model) deleteSelected() {
	o, ok := m.selectedObject()
	if !ok {
		return
	}
	m.report("delete", m.surface().Remove(scene.ProducerUser, o.ID()))
	m.clearSelection()
}

func (m *model) cycleFill() {
	o, ok := m.selectedObject()
	if !ok {
		m.errorMessage = "nothing selected"
		return
	}
	m.fillIndex = (m.fillIndex + 1) % len(fillColors)
	err := m.surface().Modify(scene.ProducerUser, scene.Change{ID: o.ID(), Patch: scene.Props{"fill": fillColors[m.fillIndex]}})
	m.report("fill", err)
}

func (m *model) confirm(action ConfirmAction) {
	m.confirmAction = action
	m.mode = ModeConfirm
}

func (m *model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmDeleteObject:
			m.deleteSelected()
		case ConfirmCloseBuffer:
			m.closeCurrentBuffer()
		case ConfirmOverwriteFile:
			m.export()
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return nil
}

func (m *model) beginFileInput(op FileOperation) {
	m.fileOp = op
	m.filename = ""
	if op == FileOpInsertImage {
		m.mode = ModeFileInput
		return
	}
	if buf := m.getCurrentBuffer(); buf != nil && buf.filename != "" {
		m.filename = buf.filename
	}
	m.mode = ModeFileInput
}

func (m *model) updateFileInput(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.errorMessage = ""
		m.mode = ModeNormal
	case "enter":
		if strings.TrimSpace(m.filename) == "" {
			m.errorMessage = "filename required"
			return
		}
		m.errorMessage = ""
		m.mode = ModeNormal
		if m.fileOp == FileOpInsertImage {
			m.insertImage()
			return
		}
		if _, err := os.Stat(m.exportPath()); err == nil && m.config.Confirmations {
			m.confirm(ConfirmOverwriteFile)
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			m.report("export", err)
			return
		}
		m.export()
	case "backspace":
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.filename += string(msg.Runes)
		}
	}
}
