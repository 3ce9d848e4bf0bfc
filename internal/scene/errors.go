package scene

import "errors"

var (
	// ErrMissingIdentity reports an object observed without an identifier.
	ErrMissingIdentity = errors.New("object has no identity")
	// ErrIdentityAssigned reports a second identity assignment.
	ErrIdentityAssigned = errors.New("object identity already assigned")
	// ErrDuplicateIdentity reports an insert whose id is already live.
	ErrDuplicateIdentity = errors.New("object identity already on surface")
	// ErrObjectNotFound reports a lookup of an id that is not live.
	ErrObjectNotFound = errors.New("object not found")
	ErrUnknownKind    = errors.New("unknown object kind")
	ErrInvalidRecord  = errors.New("invalid object record")
	ErrLayerNotFound  = errors.New("layer not found")
)
