package main

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"sketchboard/internal/scene"
)

// Swapped out in tests; the system clipboard is not available there.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = readClipboardText
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// encodeRecord serializes an object record for the clipboard. The identity
// is left out: a paste always creates a new object.
func encodeRecord(o *scene.Object) (string, error) {
	rec := o.Record()
	delete(rec, scene.KeyID)
	delete(rec, scene.KeyProducer)
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeRecord reads a clipboard record. Plain text that is not a record
// becomes a text object.
func decodeRecord(text string) (*scene.Object, error) {
	var rec scene.Props
	if err := json.Unmarshal([]byte(text), &rec); err != nil || rec[scene.KeyKind] == nil {
		text = cleanClipboardText(text)
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("clipboard is empty")
		}
		return scene.NewObject(scene.KindText, "", scene.Props{"left": 0, "top": 0, "text": text})
	}
	delete(rec, scene.KeyID)
	return scene.FromRecord(rec)
}

func cleanClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) copySelection() {
	o, ok := m.selectedObject()
	if !ok {
		m.errorMessage = "nothing selected"
		return
	}
	text, err := encodeRecord(o)
	if err == nil {
		err = writeClipboard(text)
	}
	if err != nil {
		m.report("copy", err)
		return
	}
	m.successMessage = fmt.Sprintf("copied %s", o.Kind())
}

// paste inserts the clipboard object with its top-left corner at the
// cursor, on the active layer, under a fresh identity.
func (m *model) paste() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	text, err := readClipboard()
	if err != nil {
		m.report("paste", err)
		return
	}
	o, err := decodeRecord(text)
	if err != nil {
		m.report("paste", err)
		return
	}
	x, y := m.sceneCursor()
	props := o.Props()
	for k, v := range scene.MovePatch(o, x-o.Coords().MinX, y-o.Coords().MinY) {
		props[k] = v
	}
	pasted, err := buf.surface.Create(scene.ProducerUser, o.Kind(), buf.layers.Active().ID, props)
	if err != nil {
		m.report("paste", err)
		return
	}
	if m.tool == ToolSelect {
		m.selected = pasted.ID()
	}
}
