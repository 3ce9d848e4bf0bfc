package scene

// MovePatch returns the props that translate o by (dx, dy) scene units.
func MovePatch(o *Object, dx, dy float64) Props {
	switch o.kind {
	case KindLine, KindMeasure:
		p := Props{}
		for _, k := range []string{"x1", "x2"} {
			v, _ := o.props.Float(k)
			p[k] = v + dx
		}
		for _, k := range []string{"y1", "y2"} {
			v, _ := o.props.Float(k)
			p[k] = v + dy
		}
		return p
	case KindPath:
		pts, _ := o.props.Points("points")
		moved := make([]float64, len(pts))
		for i, v := range pts {
			if i%2 == 0 {
				moved[i] = v + dx
			} else {
				moved[i] = v + dy
			}
		}
		return Props{"points": moved}
	default:
		left, _ := o.props.Float("left")
		top, _ := o.props.Float("top")
		return Props{"left": left + dx, "top": top + dy}
	}
}

// ResizePatch returns the props that grow o by (dw, dh) scene units. Sizes
// never drop below one unit. Kinds without a size return nil.
func ResizePatch(o *Object, dw, dh float64) Props {
	switch o.kind {
	case KindRect, KindImage:
		w, _ := o.props.Float("width")
		h, _ := o.props.Float("height")
		return Props{"width": max(w+dw, 1), "height": max(h+dh, 1)}
	case KindCircle:
		r, _ := o.props.Float("radius")
		return Props{"radius": max(r+(dw+dh)/2, 1)}
	case KindLine, KindMeasure:
		x2, _ := o.props.Float("x2")
		y2, _ := o.props.Float("y2")
		return Props{"x2": x2 + dw, "y2": y2 + dh}
	case KindText:
		sx, sy := scale(o.props)
		return Props{"scaleX": max(sx+dw/4, 0.25), "scaleY": max(sy+dh/4, 0.25)}
	}
	return nil
}
