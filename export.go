package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"sketchboard/internal/export"
)

func (m *model) exportExt() string {
	if m.fileOp == FileOpSavePNG {
		return ".png"
	}
	return ".txt"
}

func (m *model) exportPath() string {
	name := strings.TrimSpace(m.filename)
	if !strings.EqualFold(filepath.Ext(name), m.exportExt()) {
		name += m.exportExt()
	}
	return m.config.GetSavePath(name)
}

// export writes the current buffer in the format picked by fileOp.
func (m *model) export() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	path := m.exportPath()
	var err error
	switch m.fileOp {
	case FileOpSavePNG:
		err = export.PNG(buf.surface, path, export.WithLayers(buf.layers))
	case FileOpSaveVisualTXT:
		err = export.WriteText(buf.surface, path, m.canvasWidth(), m.canvasHeight(), export.WithLayers(buf.layers))
	}
	if err != nil {
		m.report("export", err)
		return
	}
	buf.filename = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m.logger.Info("exported", "path", path)
	m.successMessage = fmt.Sprintf("exported %s", path)
}
