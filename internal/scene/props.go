package scene

import (
	"maps"
	"reflect"
	"slices"
)

// Props is a flat property record keyed by native property names
// ("left", "top", "fill", ...). Values are float64, string, bool or
// []float64 once normalized.
type Props map[string]any

// Clone returns a deep copy of p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Keys returns the keys of p in sorted order.
func (p Props) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Float returns p[key] as a float64 and whether it was numeric.
func (p Props) Float(key string) (float64, bool) {
	return toFloat(p[key])
}

// String returns p[key] if it is a string.
func (p Props) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Bool returns p[key] if it is a bool.
func (p Props) Bool(key string) (bool, bool) {
	b, ok := p[key].(bool)
	return b, ok
}

// Points returns p[key] if it is a flat coordinate list.
func (p Props) Points(key string) ([]float64, bool) {
	pts, ok := p[key].([]float64)
	return pts, ok
}

// ValuesEqual compares two property values after normalization.
func ValuesEqual(a, b any) bool {
	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

func cloneValue(v any) any {
	if pts, ok := v.([]float64); ok {
		return slices.Clone(pts)
	}
	return v
}

// normalizeProps rewrites values in place to the canonical types.
func normalizeProps(p Props) {
	for k, v := range p {
		p[k] = normalizeValue(v)
	}
}

// normalizeValue maps numeric types to float64 and numeric slices to
// []float64, so records decoded from JSON compare equal to live state.
func normalizeValue(v any) any {
	if f, ok := toFloat(v); ok {
		return f
	}
	switch vv := v.(type) {
	case []float64:
		return slices.Clone(vv)
	case []int:
		out := make([]float64, len(vv))
		for i, n := range vv {
			out[i] = float64(n)
		}
		return out
	case []any:
		out := make([]float64, len(vv))
		for i, n := range vv {
			f, ok := toFloat(n)
			if !ok {
				return v
			}
			out[i] = f
		}
		return out
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
