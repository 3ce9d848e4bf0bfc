package scene

import (
	"fmt"
)

// Reserved record keys appended to the native props.
const (
	KeyID       = "id"
	KeyLayerID  = "layerId"
	KeyKind     = "kind"
	KeyProducer = "producer"
)

// Rect is an axis-aligned box in scene coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rect covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Object is an entity living on a Surface.
type Object struct {
	id       string
	layerID  string
	kind     Kind
	props    Props
	producer Producer
	coords   Rect

	visible    bool
	selectable bool
	evented    bool
}

// NewObject builds an object without identity. Missing style props are filled
// from the kind defaults.
func NewObject(kind Kind, layerID string, props Props) (*Object, error) {
	p := props.Clone()
	if p == nil {
		p = Props{}
	}
	normalizeProps(p)
	if err := validate(kind, p); err != nil {
		return nil, err
	}
	o := &Object{
		layerID:    layerID,
		kind:       kind,
		props:      p,
		producer:   ProducerUser,
		visible:    true,
		selectable: true,
		evented:    true,
	}
	o.SetCoords()
	return o, nil
}

// FromRecord decodes a serialized record. The id is taken verbatim from the
// record and may be empty.
func FromRecord(rec Props) (*Object, error) {
	p := rec.Clone()
	kindName, _ := p.String(KeyKind)
	if kindName == "" {
		return nil, fmt.Errorf("%w: missing %q", ErrInvalidRecord, KeyKind)
	}
	id, _ := p.String(KeyID)
	layerID, _ := p.String(KeyLayerID)
	producer, _ := p.String(KeyProducer)
	for _, k := range []string{KeyID, KeyLayerID, KeyKind, KeyProducer} {
		delete(p, k)
	}

	o, err := NewObject(Kind(kindName), layerID, p)
	if err != nil {
		return nil, err
	}
	o.id = id
	if producer != "" {
		o.producer = Producer(producer)
	}
	return o, nil
}

// Record serializes o into a flat record: native props plus id, layer, kind
// and producer.
func (o *Object) Record() Props {
	rec := o.props.Clone()
	rec[KeyID] = o.id
	rec[KeyLayerID] = o.layerID
	rec[KeyKind] = string(o.kind)
	rec[KeyProducer] = string(o.producer)
	return rec
}

func (o *Object) ID() string         { return o.id }
func (o *Object) LayerID() string    { return o.layerID }
func (o *Object) Kind() Kind         { return o.kind }
func (o *Object) Producer() Producer { return o.producer }
func (o *Object) Coords() Rect       { return o.coords }
func (o *Object) Visible() bool      { return o.visible }
func (o *Object) Selectable() bool   { return o.selectable }
func (o *Object) Evented() bool      { return o.evented }

// Get returns the current value of a native prop.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.props[key]
	return cloneValue(v), ok
}

// Props returns a copy of the native props.
func (o *Object) Props() Props {
	return o.props.Clone()
}

// Values returns the current values of keys. Absent keys map to nil.
func (o *Object) Values(keys []string) Props {
	out := make(Props, len(keys))
	for _, k := range keys {
		out[k] = cloneValue(o.props[k])
	}
	return out
}

// set applies patch. A nil value deletes the key.
func (o *Object) set(patch Props) {
	for k, v := range patch {
		if v == nil {
			delete(o.props, k)
			continue
		}
		o.props[k] = normalizeValue(v)
	}
	o.SetCoords()
}

// SetCoords recomputes the cached bounding box from the current props.
func (o *Object) SetCoords() {
	spec, ok := kinds[o.kind]
	if !ok || spec.Bounds == nil {
		o.coords = Rect{}
		return
	}
	o.coords = spec.Bounds(o.props)
}

// SetLayerFlags sets the layer-derived interaction flags.
func (o *Object) SetLayerFlags(visible, selectable, evented bool) {
	o.visible = visible
	o.selectable = selectable
	o.evented = evented
}
