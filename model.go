package main

import (
	"fmt"
	"log/slog"

	"sketchboard/internal/config"
	"sketchboard/internal/history"
	"sketchboard/internal/keys"
	"sketchboard/internal/scene"
)

// buffer is one open drawing: its surface, layers and history session.
type buffer struct {
	surface   *scene.Surface
	layers    *scene.Layers
	history   *history.Service
	filename  string
	undoDepth int
	redoDepth int
}

type point struct {
	X, Y float64
}

type model struct {
	width    int
	height   int
	cursorX  int
	cursorY  int
	zPanMode bool

	buffers            []*buffer
	currentBufferIndex int

	mode Mode
	tool Tool
	help bool

	// Draw gesture state, in scene coordinates.
	anchor       *point
	strokePoints []float64

	// Select tool state. original holds the pre-gesture values of the keys a
	// move or resize touches.
	selected string
	original scene.Props

	textInputX         float64
	textInputY         float64
	textInputText      string
	textInputCursorPos int

	layerInput LayerInput
	inputText  string

	filename      string
	fileOp        FileOperation
	confirmAction ConfirmAction

	fillIndex int

	errorMessage   string
	successMessage string

	config  *config.Config
	binding *keys.Binding
	logger  *slog.Logger
}

func newModel(cfg *config.Config, logger *slog.Logger) *model {
	m := &model{
		config:  cfg,
		binding: keys.NewBinding(cfg.Keybindings.Undo, cfg.Keybindings.Redo),
		logger:  logger,
		mode:    ModeNormal,
	}
	if cfg.StartMenu {
		m.mode = ModeStartup
	}
	m.addNewBuffer("")
	return m
}

func (m *model) getCurrentBuffer() *buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return m.buffers[m.currentBufferIndex]
}

func (m *model) surface() *scene.Surface {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.surface
	}
	return nil
}

// addNewBuffer opens an empty drawing with its own history and makes it
// current.
func (m *model) addNewBuffer(filename string) *buffer {
	s := scene.NewSurface()
	buf := &buffer{
		surface:  s,
		layers:   scene.NewLayers("Layer 1"),
		filename: filename,
	}
	buf.history = history.New(s,
		history.WithMaxLength(m.config.MaxHistory),
		history.WithLogger(m.logger.With("buffer", len(m.buffers)+1)),
	)
	buf.history.Subscribe(func(c history.Changed) {
		buf.undoDepth = c.UndoDepth
		buf.redoDepth = c.RedoDepth
	})
	m.buffers = append(m.buffers, buf)
	m.currentBufferIndex = len(m.buffers) - 1
	m.clearSelection()
	return buf
}

func (m *model) closeCurrentBuffer() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	buf.history.Close()
	m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
	if len(m.buffers) == 0 {
		m.addNewBuffer("")
		return
	}
	if m.currentBufferIndex >= len(m.buffers) {
		m.currentBufferIndex = len(m.buffers) - 1
	}
	m.clearSelection()
}

func (m *model) nextBuffer() {
	if len(m.buffers) < 2 {
		return
	}
	m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
	m.clearSelection()
}

// sceneCursor returns the cursor position in scene coordinates.
func (m *model) sceneCursor() (float64, float64) {
	s := m.surface()
	if s == nil {
		return float64(m.cursorX), float64(m.cursorY)
	}
	return s.ScreenToScene(float64(m.cursorX), float64(m.cursorY))
}

func (m *model) selectedObject() (*scene.Object, bool) {
	s := m.surface()
	if s == nil || m.selected == "" {
		return nil, false
	}
	return s.Get(m.selected)
}

func (m *model) clearSelection() {
	m.selected = ""
	m.original = nil
}

// applyLayers pushes layer visibility and locking onto the objects of the
// current buffer and drops a selection that is no longer selectable.
func (m *model) applyLayers() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	scene.ApplyLayerProps(buf.surface, buf.layers, m.tool == ToolSelect)
	if o, ok := m.selectedObject(); !ok || !o.Selectable() {
		m.clearSelection()
	}
}

// report shows err in the status line and logs it.
func (m *model) report(action string, err error) {
	if err == nil {
		return
	}
	m.logger.Warn(action+" failed", "err", err)
	m.errorMessage = fmt.Sprintf("%s: %v", action, err)
	m.successMessage = ""
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	maxY := m.canvasHeight() - 1
	if maxY < 0 {
		maxY = 0
	}
	if m.height > 0 && m.cursorY > maxY {
		m.cursorY = maxY
	}
}

// canvasHeight is the number of rows left for the drawing once the status
// line and buffer bar are placed.
func (m *model) canvasHeight() int {
	h := m.height - 1
	if m.showBufferBar() {
		h--
	}
	return max(h, 1)
}

func (m *model) canvasWidth() int {
	return max(m.width, 1)
}

func (m *model) showBufferBar() bool {
	return m.mode != ModeStartup && len(m.buffers) > 1
}
