package scene

import (
	"github.com/fogleman/gg"
)

const (
	MinZoom = 0.1
	MaxZoom = 20.0
)

// Pan is the translation part of the view transform.
type Pan struct {
	X, Y float64
}

// CaptureViewport reads the current pan, ignoring scale.
func CaptureViewport(s *Surface) Pan {
	return Pan{X: s.view.X0, Y: s.view.Y0}
}

// RestoreViewport rewrites the pan and keeps the current zoom. Zoom is view
// state local to the session and is not part of the undo timeline.
func RestoreViewport(s *Surface, p Pan) {
	s.view.X0 = p.X
	s.view.Y0 = p.Y
}

// View returns the view transform.
func (s *Surface) View() gg.Matrix {
	return s.view
}

// SetView replaces the whole view transform.
func (s *Surface) SetView(m gg.Matrix) {
	s.view = m
}

// Zoom returns the current uniform scale.
func (s *Surface) Zoom() float64 {
	return s.view.XX
}

// ZoomToPoint sets the zoom so that screen point (x, y) keeps showing the
// same scene point.
func (s *Surface) ZoomToPoint(x, y, zoom float64) {
	zoom = min(max(zoom, MinZoom), MaxZoom)
	old := s.view.XX
	if old == 0 {
		old = 1
	}
	ratio := zoom / old
	s.view.X0 = x - (x-s.view.X0)*ratio
	s.view.Y0 = y - (y-s.view.Y0)*ratio
	s.view.XX = zoom
	s.view.YY = zoom
}

// RelativePan shifts the view by (dx, dy) screen units.
func (s *Surface) RelativePan(dx, dy float64) {
	s.view.X0 += dx
	s.view.Y0 += dy
}

// SceneToScreen maps a scene point through the view transform.
func (s *Surface) SceneToScreen(x, y float64) (float64, float64) {
	return s.view.TransformPoint(x, y)
}

// ScreenToScene maps a screen point back into scene coordinates.
func (s *Surface) ScreenToScene(x, y float64) (float64, float64) {
	z := s.Zoom()
	if z == 0 {
		z = 1
	}
	return (x - s.view.X0) / z, (y - s.view.Y0) / z
}
