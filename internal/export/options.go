// Package export renders a scene to a terminal cell grid, a text file or a
// PNG image.
package export

import (
	"errors"
	"slices"

	"sketchboard/internal/scene"
)

// ErrNothingToExport is returned when no visible object exists.
var ErrNothingToExport = errors.New("nothing to export")

// Pixels per scene unit. One unit is one terminal cell at zoom 1.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
	DefaultPadding    = 2.0
)

// Option configures a render.
type Option func(*options)

type options struct {
	layers     *scene.Layers
	selected   map[string]bool
	cellWidth  float64
	cellHeight float64
	padding    float64
}

func defaultOptions() options {
	return options{
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
		padding:    DefaultPadding,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLayers draws objects in layer order, bottom layer first.
func WithLayers(ls *scene.Layers) Option {
	return func(o *options) {
		o.layers = ls
	}
}

// WithSelected highlights the given objects in grid renders.
func WithSelected(ids ...string) Option {
	return func(o *options) {
		o.selected = make(map[string]bool, len(ids))
		for _, id := range ids {
			o.selected[id] = true
		}
	}
}

// WithCellSize sets the pixel size of one scene unit for PNG export.
func WithCellSize(w, h float64) Option {
	return func(o *options) {
		if w > 0 && h > 0 {
			o.cellWidth = w
			o.cellHeight = h
		}
	}
}

// WithPadding sets the blank margin around a PNG export, in scene units.
func WithPadding(units float64) Option {
	return func(o *options) {
		if units >= 0 {
			o.padding = units
		}
	}
}

// drawable returns the visible objects in paint order.
func (o options) drawable(s *scene.Surface) []*scene.Object {
	objs := slices.DeleteFunc(s.Objects(), func(obj *scene.Object) bool {
		return !obj.Visible()
	})
	if o.layers != nil {
		slices.SortStableFunc(objs, func(a, b *scene.Object) int {
			return o.layers.Order(a.LayerID()) - o.layers.Order(b.LayerID())
		})
	}
	return objs
}
