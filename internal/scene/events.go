package scene

// Producer identifies who caused a mutation.
type Producer string

const (
	// ProducerUser marks direct end-user interaction.
	ProducerUser Producer = "user"
	// ProducerHistory marks mutations replayed by undo/redo.
	ProducerHistory Producer = "history"
	// ProducerRemote is reserved for changes arriving from another client.
	ProducerRemote Producer = "remote"
)

// EventKind is the mutation class of an Event.
type EventKind int

const (
	EventAdded EventKind = iota
	EventModified
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "object:added"
	case EventModified:
		return "object:modified"
	case EventRemoved:
		return "object:removed"
	default:
		return "object:unknown"
	}
}

// Event is published once per surface mutation. One mutation may touch
// several objects, e.g. deleting a selection.
type Event struct {
	Producer Producer
	Kind     EventKind
	Objects  []*Object
	// Original holds, for EventModified, the values each object had before
	// the change, keyed like the change itself. It is parallel to Objects.
	Original []Props
	// Index holds, for EventRemoved, the stacking position each object had
	// before the call. It is parallel to Objects.
	Index []int
}
