package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectProps(left, top float64) Props {
	return Props{"left": left, "top": top, "width": 10, "height": 10}
}

func record(s *Surface) *[]Event {
	var events []Event
	s.On(func(e Event) error {
		events = append(events, e)
		return nil
	})
	return &events
}

func TestCreatePublishesAdded(t *testing.T) {
	s := NewSurface()
	events := record(s)

	o, err := s.Create(ProducerUser, KindRect, "layer", rectProps(1, 2))
	require.NoError(t, err)

	require.Len(t, *events, 1)
	e := (*events)[0]
	assert.Equal(t, EventAdded, e.Kind)
	assert.Equal(t, ProducerUser, e.Producer)
	assert.Equal(t, []*Object{o}, e.Objects)
	assert.Equal(t, 1, s.Len())
}

func TestAddRejectsDuplicateIdentity(t *testing.T) {
	s := NewSurface()
	o, err := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	require.NoError(t, err)

	dup, err := FromRecord(o.Record())
	require.NoError(t, err)

	err = s.Add(ProducerHistory, dup)
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
	assert.Equal(t, 1, s.Len())
}

func TestAddReturnsListenerErrors(t *testing.T) {
	s := NewSurface()
	boom := errors.New("boom")
	s.On(func(Event) error { return boom })

	o, err := NewObject(KindRect, "", rectProps(0, 0))
	require.NoError(t, err)

	err = s.Add(ProducerUser, o)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.Len(), "the mutation stays applied")
}

func TestRemove(t *testing.T) {
	s := NewSurface()
	a, _ := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	b, _ := s.Create(ProducerUser, KindRect, "", rectProps(5, 5))
	events := record(s)

	require.NoError(t, s.Remove(ProducerHistory, a.ID(), b.ID()))
	assert.Equal(t, 0, s.Len())
	require.Len(t, *events, 1)
	assert.Equal(t, EventRemoved, (*events)[0].Kind)
	assert.Equal(t, ProducerHistory, (*events)[0].Producer)
	assert.Len(t, (*events)[0].Objects, 2)
	assert.Equal(t, ProducerHistory, a.Producer(), "the actor tag records the last producer")

	_, ok := s.Get(a.ID())
	assert.False(t, ok)
}

func TestRemoveReportsStackingIndex(t *testing.T) {
	s := NewSurface()
	a, _ := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	b, _ := s.Create(ProducerUser, KindRect, "", rectProps(5, 5))
	c, _ := s.Create(ProducerUser, KindRect, "", rectProps(9, 9))
	assert.Equal(t, 1, s.IndexOf(b.ID()))
	assert.Equal(t, -1, s.IndexOf("ghost"))
	events := record(s)

	require.NoError(t, s.Remove(ProducerUser, c.ID(), a.ID()))
	require.Len(t, *events, 1)
	assert.Equal(t, []int{2, 0}, (*events)[0].Index)
	assert.Equal(t, []*Object{b}, s.Objects())

	require.NoError(t, s.Insert(ProducerHistory, (*events)[0].Index, (*events)[0].Objects...))
	assert.Equal(t, []*Object{a, b, c}, s.Objects())
}

func TestInsertClampsPositions(t *testing.T) {
	s := NewSurface()
	a, _ := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	b, err := NewObject(KindRect, "", rectProps(1, 1))
	require.NoError(t, err)
	c, err := NewObject(KindRect, "", rectProps(2, 2))
	require.NoError(t, err)

	require.NoError(t, s.Insert(ProducerUser, []int{-1, 7}, b, c))
	assert.Equal(t, []*Object{a, b, c}, s.Objects())

	assert.Error(t, s.Insert(ProducerUser, []int{0}, a, b))
}

func TestRemoveUnknownIsAtomic(t *testing.T) {
	s := NewSurface()
	a, _ := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))

	err := s.Remove(ProducerUser, a.ID(), "ghost")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestModifyCarriesOriginalValues(t *testing.T) {
	s := NewSurface()
	o, _ := s.Create(ProducerUser, KindRect, "", rectProps(10, 10))
	events := record(s)

	require.NoError(t, s.Modify(ProducerUser, Change{ID: o.ID(), Patch: Props{"left": 50, "top": 50}}))

	require.Len(t, *events, 1)
	e := (*events)[0]
	assert.Equal(t, EventModified, e.Kind)
	assert.Equal(t, []Props{{"left": 10.0, "top": 10.0}}, e.Original)
	left, _ := o.Get("left")
	assert.Equal(t, 50.0, left)
	assert.Equal(t, 50.0, o.Coords().MinX, "coordinates are recomputed")
}

func TestSetIsSilentAndCommitPublishes(t *testing.T) {
	s := NewSurface()
	o, _ := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	events := record(s)

	original := o.Values([]string{"left", "top"})
	require.NoError(t, s.Set(o.ID(), Props{"left": 3}))
	require.NoError(t, s.Set(o.ID(), Props{"left": 6, "top": 2}))
	assert.Empty(t, *events)

	require.NoError(t, s.CommitTransform(ProducerUser, Transform{ID: o.ID(), Original: original}))
	require.Len(t, *events, 1)
	assert.Equal(t, Props{"left": 0.0, "top": 0.0}, (*events)[0].Original[0])
}

func TestSetNilDeletesKey(t *testing.T) {
	s := NewSurface()
	o, _ := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	require.NoError(t, s.Set(o.ID(), Props{"custom": "x"}))
	require.NoError(t, s.Set(o.ID(), Props{"custom": nil}))
	_, ok := o.Get("custom")
	assert.False(t, ok)
}

func TestObjectAtPicksTopmostEvented(t *testing.T) {
	s := NewSurface()
	bottom, _ := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	top, _ := s.Create(ProducerUser, KindRect, "", rectProps(5, 5))

	got, ok := s.ObjectAt(7, 7)
	require.True(t, ok)
	assert.Same(t, top, got)

	top.SetLayerFlags(true, false, false)
	got, ok = s.ObjectAt(7, 7)
	require.True(t, ok)
	assert.Same(t, bottom, got)

	_, ok = s.ObjectAt(100, 100)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	s := NewSurface()
	s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	s.Create(ProducerUser, KindRect, "", rectProps(1, 1))
	events := record(s)

	require.NoError(t, s.Clear(ProducerUser))
	assert.Equal(t, 0, s.Len())
	require.Len(t, *events, 1)
	assert.Len(t, (*events)[0].Objects, 2)

	require.NoError(t, s.Clear(ProducerUser))
	assert.Len(t, *events, 1, "clearing an empty surface publishes nothing")
}

func TestBounds(t *testing.T) {
	s := NewSurface()
	_, ok := s.Bounds()
	assert.False(t, ok)

	s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	s.Create(ProducerUser, KindCircle, "", Props{"left": 20, "top": -5, "radius": 5})

	r, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: 0, MinY: -5, MaxX: 30, MaxY: 10}, r)
}

func TestMovePatch(t *testing.T) {
	s := NewSurface()
	line, _ := s.Create(ProducerUser, KindLine, "", Props{"x1": 0, "y1": 0, "x2": 4, "y2": 2})
	path, _ := s.Create(ProducerUser, KindPath, "", Props{"points": []float64{1, 1, 2, 2}})
	rect, _ := s.Create(ProducerUser, KindRect, "", rectProps(3, 3))

	assert.Equal(t, Props{"x1": 1.0, "x2": 5.0, "y1": -1.0, "y2": 1.0}, MovePatch(line, 1, -1))
	assert.Equal(t, Props{"points": []float64{3, 0, 4, 1}}, MovePatch(path, 2, -1))
	assert.Equal(t, Props{"left": 5.0, "top": 6.0}, MovePatch(rect, 2, 3))
}

func TestResizePatch(t *testing.T) {
	s := NewSurface()
	rect, _ := s.Create(ProducerUser, KindRect, "", rectProps(0, 0))
	path, _ := s.Create(ProducerUser, KindPath, "", Props{"points": []float64{1, 1}})

	assert.Equal(t, Props{"width": 12.0, "height": 1.0}, ResizePatch(rect, 2, -20))
	assert.Nil(t, ResizePatch(path, 1, 1))
}
