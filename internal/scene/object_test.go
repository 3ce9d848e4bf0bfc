package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectFillsDefaults(t *testing.T) {
	o, err := NewObject(KindRect, "layer-1", Props{"left": 10, "top": 20, "width": 30, "height": 40})
	require.NoError(t, err)

	assert.Empty(t, o.ID())
	assert.Equal(t, "layer-1", o.LayerID())
	v, ok := o.Get("scaleX")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, _ = o.Get("left")
	assert.Equal(t, 10.0, v, "ints are normalized to float64")
	assert.Equal(t, Rect{MinX: 10, MinY: 20, MaxX: 40, MaxY: 60}, o.Coords())
}

func TestNewObjectRejectsBadInput(t *testing.T) {
	_, err := NewObject("hexagon", "", Props{})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = NewObject(KindCircle, "", Props{"left": 1, "top": 1})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRecordRoundTrip(t *testing.T) {
	o, err := NewObject(KindPath, "layer-1", Props{"points": []float64{0, 0, 5, 5, 10, 0}, "stroke": "#ff0000"})
	require.NoError(t, err)
	require.NoError(t, AssignIdentity(o))

	rec := o.Record()
	assert.Equal(t, o.ID(), rec[KeyID])
	assert.Equal(t, "layer-1", rec[KeyLayerID])
	assert.Equal(t, "path", rec[KeyKind])
	assert.Equal(t, "user", rec[KeyProducer])

	back, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, o.ID(), back.ID())
	assert.Equal(t, o.LayerID(), back.LayerID())
	assert.Equal(t, o.Kind(), back.Kind())
	assert.Equal(t, o.Props(), back.Props())
	assert.Equal(t, o.Coords(), back.Coords())
}

func TestRecordRoundTripThroughJSON(t *testing.T) {
	o, err := NewObject(KindLine, "l", Props{"x1": 1, "y1": 2, "x2": 3, "y2": 4, "arrowHead": true})
	require.NoError(t, err)
	require.NoError(t, AssignIdentity(o))

	data, err := json.Marshal(o.Record())
	require.NoError(t, err)
	var rec Props
	require.NoError(t, json.Unmarshal(data, &rec))

	back, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, o.Props(), back.Props())
}

func TestFromRecordRequiresKind(t *testing.T) {
	_, err := FromRecord(Props{"left": 1})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRecordIsDetached(t *testing.T) {
	o, err := NewObject(KindPath, "", Props{"points": []float64{1, 2, 3, 4}})
	require.NoError(t, err)

	rec := o.Record()
	rec["points"].([]float64)[0] = 99

	pts, _ := o.Get("points")
	assert.Equal(t, []float64{1, 2, 3, 4}, pts)
}

func TestTextBoundsUseDisplayWidth(t *testing.T) {
	o, err := NewObject(KindText, "", Props{"left": 0, "top": 0, "text": "日本\nab"})
	require.NoError(t, err)
	assert.Equal(t, 4.0, o.Coords().Width())
	assert.Equal(t, 2.0, o.Coords().Height())
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, ValuesEqual(10, 10.0))
	assert.True(t, ValuesEqual([]any{1.0, 2.0}, []float64{1, 2}))
	assert.False(t, ValuesEqual("a", "b"))
	assert.False(t, ValuesEqual(nil, 0.0))
}
