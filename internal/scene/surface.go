// Package scene is the retained drawing surface: objects keyed by identity,
// the view transform and the mutation events the history engine listens to.
//
// Every mutating call names its Producer. Listeners use that tag to tell end
// user edits from undo/redo replay and from remote changes, so no flag is
// ever stored on the objects themselves.
//
// A Surface is driven from one goroutine and is not safe for concurrent use.
package scene

import (
	"fmt"
	"slices"

	"github.com/fogleman/gg"

	"sketchboard/internal/eventbus"
)

// Change is a property patch for one object.
type Change struct {
	ID    string
	Patch Props
}

// Transform names an object whose props were already written with Set
// during a gesture, together with the values it had before the gesture.
type Transform struct {
	ID       string
	Original Props
}

// Surface holds the live objects in stacking order.
type Surface struct {
	objects []*Object
	index   map[string]*Object
	view    gg.Matrix
	bus     *eventbus.Bus[Event]
}

// NewSurface returns an empty surface with an identity view transform.
func NewSurface() *Surface {
	return &Surface{
		index: make(map[string]*Object),
		view:  gg.Identity(),
		bus:   eventbus.New[Event](),
	}
}

// On subscribes to mutation events and returns the unsubscribe func.
func (s *Surface) On(h eventbus.Handler[Event]) func() {
	return s.bus.Subscribe(h)
}

// Objects returns the live objects, bottom first.
func (s *Surface) Objects() []*Object {
	return slices.Clone(s.objects)
}

// Len returns the number of live objects.
func (s *Surface) Len() int {
	return len(s.objects)
}

// IndexOf returns the stacking position of id, or -1 if it is not live.
func (s *Surface) IndexOf(id string) int {
	o, ok := s.index[id]
	if !ok {
		return -1
	}
	return slices.Index(s.objects, o)
}

// Get is FindByIdentity on s.
func (s *Surface) Get(id string) (*Object, bool) {
	return FindByIdentity(s, id)
}

// Create builds an object, assigns its identity and inserts it.
func (s *Surface) Create(p Producer, kind Kind, layerID string, props Props) (*Object, error) {
	o, err := NewObject(kind, layerID, props)
	if err != nil {
		return nil, err
	}
	if err := AssignIdentity(o); err != nil {
		return nil, err
	}
	if err := s.Add(p, o); err != nil {
		return o, err
	}
	return o, nil
}

// Add inserts objects on top of the stack. An id that is already live
// rejects the whole call. Errors returned by listeners are passed back after
// the objects were inserted.
func (s *Surface) Add(p Producer, objs ...*Object) error {
	return s.insert(p, objs, nil)
}

// Insert is Add with a stacking position per object, as reported in the
// Index of an EventRemoved. Positions are applied lowest first and clamped
// to the stack, so reinserting removed objects restores their order. A
// negative position puts the object on top.
func (s *Surface) Insert(p Producer, at []int, objs ...*Object) error {
	if len(at) != len(objs) {
		return fmt.Errorf("insert: %d positions for %d objects", len(at), len(objs))
	}
	return s.insert(p, objs, at)
}

func (s *Surface) insert(p Producer, objs []*Object, at []int) error {
	if len(objs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(objs))
	for _, o := range objs {
		if o.id == "" {
			continue
		}
		if _, ok := s.index[o.id]; ok || seen[o.id] {
			return fmt.Errorf("add %s: %w", o.id, ErrDuplicateIdentity)
		}
		seen[o.id] = true
	}
	order := make([]int, len(objs))
	for i := range order {
		order[i] = i
	}
	if at != nil {
		slices.SortStableFunc(order, func(a, b int) int { return at[a] - at[b] })
	}
	for _, i := range order {
		o := objs[i]
		o.producer = p
		pos := len(s.objects)
		if at != nil && at[i] >= 0 {
			pos = min(at[i], len(s.objects))
		}
		s.objects = slices.Insert(s.objects, pos, o)
		if o.id != "" {
			s.index[o.id] = o
		}
	}
	return s.bus.Publish(Event{Producer: p, Kind: EventAdded, Objects: slices.Clone(objs)})
}

// Remove deletes objects by id. Unknown ids reject the whole call.
func (s *Surface) Remove(p Producer, ids ...string) error {
	objs, err := s.lookup(ids)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return s.detach(p, objs)
}

// Clear removes every object.
func (s *Surface) Clear(p Producer) error {
	return s.detach(p, slices.Clone(s.objects))
}

func (s *Surface) detach(p Producer, objs []*Object) error {
	if len(objs) == 0 {
		return nil
	}
	index := make([]int, len(objs))
	for i, o := range objs {
		index[i] = slices.Index(s.objects, o)
	}
	for _, o := range objs {
		o.producer = p
		if o.id != "" {
			delete(s.index, o.id)
		}
	}
	s.objects = slices.DeleteFunc(s.objects, func(x *Object) bool { return slices.Contains(objs, x) })
	return s.bus.Publish(Event{Producer: p, Kind: EventRemoved, Objects: objs, Index: index})
}

// Set writes props without notifying listeners, like an in-progress drag.
// Pair it with CommitTransform once the gesture ends.
func (s *Surface) Set(id string, patch Props) error {
	o, ok := s.index[id]
	if !ok {
		return fmt.Errorf("set %s: %w", id, ErrObjectNotFound)
	}
	o.set(patch)
	return nil
}

// Modify applies each change and publishes one EventModified carrying the
// pre-change values of the patched keys.
func (s *Surface) Modify(p Producer, changes ...Change) error {
	ids := make([]string, len(changes))
	for i, c := range changes {
		ids[i] = c.ID
	}
	objs, err := s.lookup(ids)
	if err != nil {
		return fmt.Errorf("modify: %w", err)
	}
	ts := make([]Transform, len(changes))
	for i, c := range changes {
		ts[i] = Transform{ID: c.ID, Original: objs[i].Values(c.Patch.Keys())}
		objs[i].set(c.Patch)
	}
	return s.commit(p, objs, ts)
}

// CommitTransform publishes EventModified for changes already written with
// Set.
func (s *Surface) CommitTransform(p Producer, ts ...Transform) error {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	objs, err := s.lookup(ids)
	if err != nil {
		return fmt.Errorf("commit transform: %w", err)
	}
	return s.commit(p, objs, ts)
}

func (s *Surface) commit(p Producer, objs []*Object, ts []Transform) error {
	if len(objs) == 0 {
		return nil
	}
	original := make([]Props, len(ts))
	for i, t := range ts {
		objs[i].producer = p
		original[i] = t.Original.Clone()
	}
	return s.bus.Publish(Event{Producer: p, Kind: EventModified, Objects: objs, Original: original})
}

// ObjectAt returns the topmost visible, evented object whose bounds contain
// the scene point (x, y).
func (s *Surface) ObjectAt(x, y float64) (*Object, bool) {
	for i := len(s.objects) - 1; i >= 0; i-- {
		o := s.objects[i]
		if o.visible && o.evented && o.coords.Contains(x, y) {
			return o, true
		}
	}
	return nil, false
}

// Bounds returns the union of all visible object bounds.
func (s *Surface) Bounds() (Rect, bool) {
	var r Rect
	found := false
	for _, o := range s.objects {
		if !o.visible {
			continue
		}
		if !found {
			r = o.coords
			found = true
			continue
		}
		r = r.Union(o.coords)
	}
	return r, found
}

func (s *Surface) lookup(ids []string) ([]*Object, error) {
	objs := make([]*Object, len(ids))
	for i, id := range ids {
		o, ok := s.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
		objs[i] = o
	}
	return objs, nil
}
