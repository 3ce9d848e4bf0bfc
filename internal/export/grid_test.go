package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchboard/internal/scene"
)

func create(t *testing.T, s *scene.Surface, kind scene.Kind, layerID string, props scene.Props) *scene.Object {
	t.Helper()
	o, err := s.Create(scene.ProducerUser, kind, layerID, props)
	require.NoError(t, err)
	return o
}

func TestRenderRect(t *testing.T) {
	s := scene.NewSurface()
	create(t, s, scene.KindRect, "", scene.Props{"left": 1, "top": 1, "width": 4, "height": 3})

	assert.Equal(t, []string{
		"       ",
		" +--+  ",
		" |  |  ",
		" +--+  ",
		"       ",
	}, Render(s, 7, 5).Lines())
}

func TestRenderSelectedAndPanned(t *testing.T) {
	s := scene.NewSurface()
	o := create(t, s, scene.KindRect, "", scene.Props{"left": 3, "top": 2, "width": 2, "height": 2})
	s.RelativePan(-3, -2)

	assert.Equal(t, []string{"## ", "## "}, Render(s, 3, 2, WithSelected(o.ID())).Lines())
}

func TestRenderTextAndWideRunes(t *testing.T) {
	s := scene.NewSurface()
	create(t, s, scene.KindText, "", scene.Props{"left": 0, "top": 0, "text": "hi\n日本"})

	lines := Render(s, 6, 2).Lines()
	assert.Equal(t, "hi    ", lines[0])
	assert.Equal(t, "日本  ", lines[1])
}

func TestRenderLines(t *testing.T) {
	s := scene.NewSurface()
	create(t, s, scene.KindLine, "", scene.Props{"x1": 0, "y1": 0, "x2": 4, "y2": 0, "arrowHead": true})
	create(t, s, scene.KindLine, "", scene.Props{"x1": 0, "y1": 1, "x2": 0, "y2": 3})

	assert.Equal(t, []string{
		"---->",
		"|    ",
		"|    ",
		"|    ",
	}, Render(s, 5, 4).Lines())
}

func TestRenderMeasureLabel(t *testing.T) {
	s := scene.NewSurface()
	create(t, s, scene.KindMeasure, "", scene.Props{"x1": 0, "y1": 2, "x2": 8, "y2": 2})

	lines := Render(s, 9, 3).Lines()
	assert.Contains(t, lines[1], "8.0")
	assert.Equal(t, "|-------|", lines[2])
}

func TestRenderSkipsHiddenLayers(t *testing.T) {
	s := scene.NewSurface()
	ls := scene.NewLayers("base")
	hidden := ls.Add("hidden")
	create(t, s, scene.KindRect, hidden.ID, scene.Props{"left": 0, "top": 0, "width": 2, "height": 2})
	require.NoError(t, ls.SetVisible(hidden.ID, false))
	scene.ApplyLayerProps(s, ls, true)

	assert.Equal(t, []string{"  ", "  "}, Render(s, 2, 2, WithLayers(ls)).Lines())
}

func TestRenderPathAndCircle(t *testing.T) {
	s := scene.NewSurface()
	create(t, s, scene.KindPath, "", scene.Props{"points": []float64{0, 0, 2, 0, 2, 2}})
	create(t, s, scene.KindCircle, "", scene.Props{"left": 4, "top": 0, "radius": 2})

	g := Render(s, 10, 5)
	assert.Equal(t, '.', g.At(1, 0))
	assert.Equal(t, '.', g.At(2, 2))
	assert.Equal(t, 'o', g.At(8, 2), "rightmost point of the circle")
	assert.Equal(t, ' ', g.At(6, 2), "circle centre stays empty")
}

func TestWriteText(t *testing.T) {
	s := scene.NewSurface()
	create(t, s, scene.KindText, "", scene.Props{"left": 1, "top": 0, "text": "note"})
	path := filepath.Join(t.TempDir(), "view.txt")

	require.NoError(t, WriteText(s, path, 10, 2))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, " note\n\n", string(data))
	assert.False(t, strings.HasSuffix(strings.Split(string(data), "\n")[0], " "))
}
