package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"sketchboard/internal/config"
	"sketchboard/internal/export"
	"sketchboard/internal/scene"
)

// imageRecord reads an image file and returns its data URL together with its
// size in canvas cells, so PNG export draws it at its native resolution.
func imageRecord(path string) (src string, width, height float64, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, 0, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	src = "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data)
	width = math.Max(math.Round(float64(cfg.Width)/export.DefaultCellWidth), 1)
	height = math.Max(math.Round(float64(cfg.Height)/export.DefaultCellHeight), 1)
	return src, width, height, nil
}

// insertImage places the image file named in the file prompt at the cursor
// on the active layer.
func (m *model) insertImage() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	path := config.ExpandHome(strings.TrimSpace(m.filename))
	src, width, height, err := imageRecord(path)
	if err != nil {
		m.report("insert image", err)
		return
	}
	x, y := m.sceneCursor()
	o, err := buf.surface.Create(scene.ProducerUser, scene.KindImage, buf.layers.Active().ID, scene.Props{
		"left":   x,
		"top":    y,
		"width":  width,
		"height": height,
		"src":    src,
	})
	if err != nil {
		m.report("insert image", err)
		return
	}
	if m.tool == ToolSelect {
		m.selected = o.ID()
	}
	m.successMessage = fmt.Sprintf("inserted %s", filepath.Base(path))
}
