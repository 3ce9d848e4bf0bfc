package main

func isNavigationKey(key string) bool {
	_, _, ok := direction(key, 1)
	return ok
}

// direction turns a movement key into a screen delta.
func direction(key string, speed int) (float64, float64, bool) {
	s := float64(speed)
	switch key {
	case "h", "left", "shift+left":
		return -s, 0, true
	case "l", "right", "shift+right":
		return s, 0, true
	case "k", "up", "shift+up":
		return 0, -s, true
	case "j", "down", "shift+down":
		return 0, s, true
	}
	return 0, 0, false
}

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

// handlePan moves the view so that h looks further left. The zoom is kept.
func (m *model) handlePan(key string, speed int) {
	s := m.surface()
	if s == nil {
		return
	}
	dx, dy, ok := direction(key, speed)
	if !ok {
		return
	}
	s.RelativePan(-dx, -dy)
}

func (m *model) handleCursorMove(key string, speed int) {
	dx, dy, ok := direction(key, speed)
	if !ok {
		return
	}
	m.cursorX += int(dx)
	m.cursorY += int(dy)
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// zoomBy scales the view about the cursor cell.
func (m *model) zoomBy(factor float64) {
	s := m.surface()
	if s == nil {
		return
	}
	s.ZoomToPoint(float64(m.cursorX), float64(m.cursorY), s.Zoom()*factor)
}

func (m *model) resetZoom() {
	if s := m.surface(); s != nil {
		s.ZoomToPoint(float64(m.cursorX), float64(m.cursorY), 1)
	}
}
