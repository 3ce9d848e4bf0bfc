package scene

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
)

// Layer groups objects for visibility and locking. Index 0 of Layers.All is
// the bottom of the z-order.
type Layer struct {
	ID      string
	Name    string
	Visible bool
	Locked  bool
}

// Layers is the ordered layer list of one drawing.
type Layers struct {
	layers []*Layer
	active string
}

// NewLayers returns a list holding one visible, unlocked layer that is also
// the active one.
func NewLayers(firstName string) *Layers {
	ls := &Layers{}
	l := ls.Add(firstName)
	ls.active = l.ID
	return ls
}

// Add appends a layer on top.
func (ls *Layers) Add(name string) *Layer {
	l := &Layer{ID: uuid.NewString(), Name: name, Visible: true}
	ls.layers = append(ls.layers, l)
	return l
}

// All returns the layers bottom first.
func (ls *Layers) All() []*Layer {
	return slices.Clone(ls.layers)
}

// Get returns the layer with id.
func (ls *Layers) Get(id string) (*Layer, bool) {
	i := ls.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return ls.layers[i], true
}

// Order returns the z position of id, or -1.
func (ls *Layers) Order(id string) int {
	return ls.indexOf(id)
}

// Active returns the layer new objects go to.
func (ls *Layers) Active() *Layer {
	if l, ok := ls.Get(ls.active); ok {
		return l
	}
	if len(ls.layers) > 0 {
		return ls.layers[len(ls.layers)-1]
	}
	return nil
}

// SetActive makes id the active layer.
func (ls *Layers) SetActive(id string) error {
	if ls.indexOf(id) < 0 {
		return fmt.Errorf("layer %s: %w", id, ErrLayerNotFound)
	}
	ls.active = id
	return nil
}

// Rename changes a layer's display name.
func (ls *Layers) Rename(id, name string) error {
	l, ok := ls.Get(id)
	if !ok {
		return fmt.Errorf("layer %s: %w", id, ErrLayerNotFound)
	}
	l.Name = name
	return nil
}

// SetVisible toggles rendering of a layer.
func (ls *Layers) SetVisible(id string, visible bool) error {
	l, ok := ls.Get(id)
	if !ok {
		return fmt.Errorf("layer %s: %w", id, ErrLayerNotFound)
	}
	l.Visible = visible
	return nil
}

// SetLocked toggles interaction with a layer.
func (ls *Layers) SetLocked(id string, locked bool) error {
	l, ok := ls.Get(id)
	if !ok {
		return fmt.Errorf("layer %s: %w", id, ErrLayerNotFound)
	}
	l.Locked = locked
	return nil
}

// Move shifts a layer by delta positions in the z-order, clamped to the
// ends of the list.
func (ls *Layers) Move(id string, delta int) error {
	i := ls.indexOf(id)
	if i < 0 {
		return fmt.Errorf("layer %s: %w", id, ErrLayerNotFound)
	}
	j := min(max(i+delta, 0), len(ls.layers)-1)
	l := ls.layers[i]
	ls.layers = slices.Delete(ls.layers, i, i+1)
	ls.layers = slices.Insert(ls.layers, j, l)
	return nil
}

// Remove deletes a layer. Objects that referenced it become unrestricted.
// The last remaining layer cannot be removed.
func (ls *Layers) Remove(id string) error {
	i := ls.indexOf(id)
	if i < 0 {
		return fmt.Errorf("layer %s: %w", id, ErrLayerNotFound)
	}
	if len(ls.layers) == 1 {
		return fmt.Errorf("layer %s: cannot remove the last layer", id)
	}
	ls.layers = slices.Delete(ls.layers, i, i+1)
	if ls.active == id {
		ls.active = ls.layers[min(i, len(ls.layers)-1)].ID
	}
	return nil
}

// Find returns the layer whose name best matches query.
func (ls *Layers) Find(query string) (*Layer, bool) {
	names := make([]string, len(ls.layers))
	for i, l := range ls.layers {
		names[i] = l.Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return nil, false
	}
	return ls.layers[matches[0].Index], true
}

func (ls *Layers) indexOf(id string) int {
	return slices.IndexFunc(ls.layers, func(l *Layer) bool { return l.ID == id })
}

// ApplyLayerProps derives each object's visible/selectable/evented flags
// from its layer. Objects are selectable only while the select tool is
// active. Objects whose layer is unknown stay unrestricted.
func ApplyLayerProps(s *Surface, ls *Layers, selecting bool) {
	for _, o := range s.objects {
		l, ok := ls.Get(o.layerID)
		if !ok {
			o.SetLayerFlags(true, selecting, true)
			continue
		}
		o.SetLayerFlags(l.Visible, !l.Locked && selecting, !l.Locked)
	}
}
