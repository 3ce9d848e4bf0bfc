package main

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeDrawing
	ModeTextInput
	ModeMove
	ModeResize
	ModeLayerInput
	ModeFileInput
	ModeConfirm
)

type Tool int

const (
	ToolSelect Tool = iota
	ToolRect
	ToolCircle
	ToolText
	ToolLine
	ToolArrow
	ToolMeasure
	ToolPencil
	ToolPan
)

var toolNames = map[Tool]string{
	ToolSelect:  "select",
	ToolRect:    "rect",
	ToolCircle:  "circle",
	ToolText:    "text",
	ToolLine:    "line",
	ToolArrow:   "arrow",
	ToolMeasure: "measure",
	ToolPencil:  "pencil",
	ToolPan:     "pan",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return "unknown"
}

// toolKeys maps the number row to tools.
var toolKeys = map[string]Tool{
	"1": ToolSelect,
	"2": ToolRect,
	"3": ToolCircle,
	"4": ToolText,
	"5": ToolLine,
	"6": ToolArrow,
	"7": ToolMeasure,
	"8": ToolPencil,
	"9": ToolPan,
}

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpSaveVisualTXT
	FileOpInsertImage
)

type LayerInput int

const (
	LayerInputRename LayerInput = iota
	LayerInputGoto
)

type ConfirmAction int

const (
	ConfirmDeleteObject ConfirmAction = iota
	ConfirmQuit
	ConfirmCloseBuffer
	ConfirmOverwriteFile
)

// fillColors is the palette cycled by the f key. The empty entry clears the
// fill.
var fillColors = []string{"", "#e74c3c", "#f1c40f", "#2ecc71", "#3498db", "#9b59b6", "#34495e"}

const zoomStep = 1.25
