package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Kind names the shape family of an object.
type Kind string

const (
	KindRect    Kind = "rect"
	KindCircle  Kind = "circle"
	KindText    Kind = "text"
	KindLine    Kind = "line"
	KindPath    Kind = "path"
	KindImage   Kind = "image"
	KindMeasure Kind = "measure"
)

// KindSpec describes how records of one kind are validated and how their
// bounds are computed.
type KindSpec struct {
	// Required lists props a record must carry.
	Required []string
	// Defaults fill props a record omits.
	Defaults Props
	// Bounds computes the scene-space bounding box.
	Bounds func(Props) Rect
}

var kinds = map[Kind]KindSpec{}

// RegisterKind adds or replaces a kind.
func RegisterKind(k Kind, spec KindSpec) {
	kinds[k] = spec
}

// LookupKind returns the registered spec for k.
func LookupKind(k Kind) (KindSpec, bool) {
	spec, ok := kinds[k]
	return spec, ok
}

func styleDefaults(extra Props) Props {
	p := Props{
		"angle":       0.0,
		"scaleX":      1.0,
		"scaleY":      1.0,
		"opacity":     1.0,
		"fill":        "",
		"stroke":      "#000000",
		"strokeWidth": 1.0,
	}
	for k, v := range extra {
		p[k] = v
	}
	return p
}

func init() {
	RegisterKind(KindRect, KindSpec{
		Required: []string{"left", "top", "width", "height"},
		Defaults: styleDefaults(nil),
		Bounds:   boxBounds("width", "height"),
	})
	RegisterKind(KindImage, KindSpec{
		Required: []string{"left", "top", "width", "height", "src"},
		Defaults: styleDefaults(Props{"stroke": ""}),
		Bounds:   boxBounds("width", "height"),
	})
	RegisterKind(KindCircle, KindSpec{
		Required: []string{"left", "top", "radius"},
		Defaults: styleDefaults(nil),
		Bounds: func(p Props) Rect {
			left, _ := p.Float("left")
			top, _ := p.Float("top")
			r, _ := p.Float("radius")
			sx, sy := scale(p)
			return Rect{MinX: left, MinY: top, MaxX: left + 2*r*sx, MaxY: top + 2*r*sy}
		},
	})
	RegisterKind(KindText, KindSpec{
		Required: []string{"left", "top", "text"},
		Defaults: styleDefaults(Props{"fontSize": 12.0, "fill": "#000000", "stroke": ""}),
		Bounds: func(p Props) Rect {
			left, _ := p.Float("left")
			top, _ := p.Float("top")
			text, _ := p.String("text")
			lines := strings.Split(text, "\n")
			w := 0
			for _, l := range lines {
				w = max(w, runewidth.StringWidth(l))
			}
			sx, sy := scale(p)
			return Rect{MinX: left, MinY: top, MaxX: left + float64(w)*sx, MaxY: top + float64(len(lines))*sy}
		},
	})
	lineSpec := KindSpec{
		Required: []string{"x1", "y1", "x2", "y2"},
		Defaults: styleDefaults(Props{"arrowHead": false}),
		Bounds: func(p Props) Rect {
			x1, _ := p.Float("x1")
			y1, _ := p.Float("y1")
			x2, _ := p.Float("x2")
			y2, _ := p.Float("y2")
			return Rect{MinX: math.Min(x1, x2), MinY: math.Min(y1, y2), MaxX: math.Max(x1, x2), MaxY: math.Max(y1, y2)}
		},
	}
	RegisterKind(KindLine, lineSpec)
	RegisterKind(KindMeasure, lineSpec)
	RegisterKind(KindPath, KindSpec{
		Required: []string{"points"},
		Defaults: styleDefaults(nil),
		Bounds: func(p Props) Rect {
			pts, _ := p.Points("points")
			if len(pts) < 2 {
				return Rect{}
			}
			r := Rect{MinX: pts[0], MinY: pts[1], MaxX: pts[0], MaxY: pts[1]}
			for i := 2; i+1 < len(pts); i += 2 {
				r.MinX = math.Min(r.MinX, pts[i])
				r.MinY = math.Min(r.MinY, pts[i+1])
				r.MaxX = math.Max(r.MaxX, pts[i])
				r.MaxY = math.Max(r.MaxY, pts[i+1])
			}
			return r
		},
	})
}

func boxBounds(wKey, hKey string) func(Props) Rect {
	return func(p Props) Rect {
		left, _ := p.Float("left")
		top, _ := p.Float("top")
		w, _ := p.Float(wKey)
		h, _ := p.Float(hKey)
		sx, sy := scale(p)
		return Rect{MinX: left, MinY: top, MaxX: left + w*sx, MaxY: top + h*sy}
	}
}

func scale(p Props) (float64, float64) {
	sx, ok := p.Float("scaleX")
	if !ok {
		sx = 1
	}
	sy, ok := p.Float("scaleY")
	if !ok {
		sy = 1
	}
	return sx, sy
}

// validate checks that props satisfy the kind's requirements and fills
// defaults for missing keys.
func validate(k Kind, p Props) error {
	spec, ok := kinds[k]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	for _, key := range spec.Required {
		if _, ok := p[key]; !ok {
			return fmt.Errorf("%w: %s record missing %q", ErrInvalidRecord, k, key)
		}
	}
	for key, v := range spec.Defaults {
		if _, ok := p[key]; !ok {
			p[key] = cloneValue(v)
		}
	}
	return nil
}
