package scene

import (
	"github.com/google/uuid"

	"sketchboard/internal/logging"
)

// AssignIdentity gives o a fresh unique identifier. It must run exactly once
// per object; a second call leaves the id untouched and returns
// ErrIdentityAssigned.
func AssignIdentity(o *Object) error {
	if o.id != "" {
		logging.Logger().Warn("identity already assigned", "id", o.id, "kind", o.kind)
		return ErrIdentityAssigned
	}
	o.id = uuid.NewString()
	return nil
}

// FindByIdentity returns the live object with id.
func FindByIdentity(s *Surface, id string) (*Object, bool) {
	if id == "" {
		return nil, false
	}
	o, ok := s.index[id]
	return o, ok
}
