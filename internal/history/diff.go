package history

import "sketchboard/internal/scene"

// DiffForReversal returns the patch that undoes applying recorded to an
// object whose current values are live. For each recorded key the patch
// holds the live value when it differs, otherwise the recorded value, so the
// patch always names every key. A key missing from live maps to nil, which
// deletes it when the patch is applied.
func DiffForReversal(live, recorded scene.Props) scene.Props {
	diff := make(scene.Props, len(recorded))
	for k, rec := range recorded {
		cur, ok := live[k]
		switch {
		case !ok:
			diff[k] = nil
		case !scene.ValuesEqual(cur, rec):
			diff[k] = cur
		default:
			diff[k] = rec
		}
	}
	return diff.Clone()
}
