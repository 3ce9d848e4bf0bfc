package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"sketchboard/internal/scene"
)

// PNG writes every visible object of s to filename. The image covers the
// scene bounds plus padding, independent of the current view.
func PNG(s *scene.Surface, filename string, opts ...Option) error {
	img, err := Image(s, opts...)
	if err != nil {
		return err
	}
	return gg.SavePNG(filename, img)
}

// Image rasterizes every visible object of s.
func Image(s *scene.Surface, opts ...Option) (image.Image, error) {
	o := newOptions(opts)
	objs := o.drawable(s)
	if len(objs) == 0 {
		return nil, ErrNothingToExport
	}

	bounds := objs[0].Coords()
	for _, obj := range objs[1:] {
		bounds = bounds.Union(obj.Coords())
	}
	minX, minY := bounds.MinX-o.padding, bounds.MinY-o.padding
	maxX, maxY := bounds.MaxX+o.padding, bounds.MaxY+o.padding

	imageWidth := max(int(math.Ceil((maxX-minX)*o.cellWidth)), 1)
	imageHeight := max(int(math.Ceil((maxY-minY)*o.cellHeight)), 1)

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	r := &rasterizer{
		dc:    gg.NewContext(imageWidth, imageHeight),
		font:  ttf,
		faces: map[float64]font.Face{},
		minX:  minX,
		minY:  minY,
		cw:    o.cellWidth,
		ch:    o.cellHeight,
	}
	r.dc.SetColor(color.White)
	r.dc.Clear()
	for _, obj := range objs {
		r.draw(obj)
	}
	return r.dc.Image(), nil
}

type rasterizer struct {
	dc         *gg.Context
	font       *truetype.Font
	faces      map[float64]font.Face
	minX, minY float64
	cw, ch     float64
}

func (r *rasterizer) px(x, y float64) (float64, float64) {
	return (x - r.minX) * r.cw, (y - r.minY) * r.ch
}

func (r *rasterizer) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[size] = f
	return f
}

// paint fills and strokes the current path with the object's style.
func (r *rasterizer) paint(p scene.Props) {
	opacity, ok := p.Float("opacity")
	if !ok {
		opacity = 1
	}
	fill, _ := p.String("fill")
	stroke, _ := p.String("stroke")
	width, ok := p.Float("strokeWidth")
	if !ok {
		width = 1
	}
	if c, ok := parseHex(fill, opacity); ok {
		r.dc.SetColor(c)
		if stroke != "" {
			r.dc.FillPreserve()
		} else {
			r.dc.Fill()
		}
	}
	if c, ok := parseHex(stroke, opacity); ok {
		r.dc.SetColor(c)
		r.dc.SetLineWidth(width)
		r.dc.Stroke()
	}
	r.dc.ClearPath()
}

func (r *rasterizer) draw(obj *scene.Object) {
	p := obj.Props()
	left, _ := p.Float("left")
	top, _ := p.Float("top")
	x, y := r.px(left, top)
	angle, _ := p.Float("angle")

	r.dc.Push()
	defer r.dc.Pop()
	if angle != 0 {
		r.dc.RotateAbout(gg.Radians(angle), x, y)
	}

	switch obj.Kind() {
	case scene.KindRect:
		b := obj.Coords()
		r.dc.DrawRectangle(x, y, b.Width()*r.cw, b.Height()*r.ch)
		r.paint(p)
	case scene.KindImage:
		r.drawImage(obj, x, y)
	case scene.KindCircle:
		b := obj.Coords()
		r.dc.DrawEllipse(x+b.Width()*r.cw/2, y+b.Height()*r.ch/2, b.Width()*r.cw/2, b.Height()*r.ch/2)
		r.paint(p)
	case scene.KindText:
		r.drawText(p, x, y)
	case scene.KindLine, scene.KindMeasure:
		r.drawLine(obj.Kind(), p)
	case scene.KindPath:
		pts, _ := p.Points("points")
		for i := 0; i+1 < len(pts); i += 2 {
			px, py := r.px(pts[i], pts[i+1])
			if i == 0 {
				r.dc.MoveTo(px, py)
			} else {
				r.dc.LineTo(px, py)
			}
		}
		style := p.Clone()
		style["fill"] = ""
		r.paint(style)
	}
}

func (r *rasterizer) drawText(p scene.Props, x, y float64) {
	text, _ := p.String("text")
	size, ok := p.Float("fontSize")
	if !ok {
		size = 12
	}
	scaleY, ok := p.Float("scaleY")
	if !ok {
		scaleY = 1
	}
	fill, _ := p.String("fill")
	opacity, ok := p.Float("opacity")
	if !ok {
		opacity = 1
	}
	c, ok := parseHex(fill, opacity)
	if !ok {
		c = color.Black
	}
	r.dc.SetFontFace(r.face(size * scaleY))
	r.dc.SetColor(c)
	for i, line := range strings.Split(text, "\n") {
		r.dc.DrawStringAnchored(line, x, y+float64(i)*r.ch*scaleY, 0, 1)
	}
}

func (r *rasterizer) drawLine(kind scene.Kind, p scene.Props) {
	x1, _ := p.Float("x1")
	y1, _ := p.Float("y1")
	x2, _ := p.Float("x2")
	y2, _ := p.Float("y2")
	fx, fy := r.px(x1, y1)
	tx, ty := r.px(x2, y2)

	style := p.Clone()
	style["fill"] = ""
	r.dc.DrawLine(fx, fy, tx, ty)
	r.paint(style)

	if arrow, _ := p.Bool("arrowHead"); arrow {
		r.drawArrow(fx, fy, tx, ty, p)
	}
	if kind == scene.KindMeasure {
		r.drawTick(fx, fy, tx, ty, p)
		r.drawTick(tx, ty, fx, fy, p)
		r.dc.SetFontFace(r.face(12))
		r.dc.SetColor(color.Black)
		r.dc.DrawStringAnchored(measureLabel(x1, y1, x2, y2), (fx+tx)/2, (fy+ty)/2-4, 0.5, 0)
	}
}

func (r *rasterizer) drawArrow(fx, fy, tx, ty float64, p scene.Props) {
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	const (
		arrowSize  = 6.0
		arrowAngle = 0.5
	)
	r.dc.MoveTo(tx, ty)
	r.dc.LineTo(tx-arrowSize*dx+arrowSize*dy*arrowAngle, ty-arrowSize*dy-arrowSize*dx*arrowAngle)
	r.dc.LineTo(tx-arrowSize*dx-arrowSize*dy*arrowAngle, ty-arrowSize*dy+arrowSize*dx*arrowAngle)
	r.dc.ClosePath()
	style := p.Clone()
	style["fill"], _ = p.String("stroke")
	style["stroke"] = ""
	r.paint(style)
}

// drawTick draws a short bar across the line end at (x, y).
func (r *rasterizer) drawTick(x, y, ox, oy float64, p scene.Props) {
	dx, dy := x-ox, y-oy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	const half = 5.0
	nx, ny := -dy/length*half, dx/length*half
	r.dc.DrawLine(x-nx, y-ny, x+nx, y+ny)
	style := p.Clone()
	style["fill"] = ""
	r.paint(style)
}

func (r *rasterizer) drawImage(obj *scene.Object, x, y float64) {
	b := obj.Coords()
	w, h := b.Width()*r.cw, b.Height()*r.ch
	src, _ := obj.Props().String("src")
	img, err := decodeDataURL(src)
	if err != nil {
		// Unreadable sources get a crossed placeholder.
		r.dc.DrawRectangle(x, y, w, h)
		r.dc.MoveTo(x, y)
		r.dc.LineTo(x+w, y+h)
		r.dc.MoveTo(x+w, y)
		r.dc.LineTo(x, y+h)
		r.dc.SetColor(color.Gray{Y: 128})
		r.dc.SetLineWidth(1)
		r.dc.Stroke()
		return
	}
	ib := img.Bounds()
	r.dc.Push()
	r.dc.Translate(x, y)
	r.dc.Scale(w/float64(ib.Dx()), h/float64(ib.Dy()))
	r.dc.DrawImage(img, 0, 0)
	r.dc.Pop()
	r.dc.DrawRectangle(x, y, w, h)
	style := obj.Props()
	style["fill"] = ""
	r.paint(style)
}

func decodeDataURL(src string) (image.Image, error) {
	const marker = ";base64,"
	if !strings.HasPrefix(src, "data:image/") {
		return nil, fmt.Errorf("unsupported image source")
	}
	i := strings.Index(src, marker)
	if i < 0 {
		return nil, fmt.Errorf("image source is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(src[i+len(marker):])
	if err != nil {
		return nil, fmt.Errorf("decode image source: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// parseHex reads #rgb or #rrggbb. An empty string means no paint.
func parseHex(s string, opacity float64) (color.Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	a := uint8(math.Round(min(max(opacity, 0), 1) * 255))
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: a}, true
}
