package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sketchboard/internal/eventbus"
	"sketchboard/internal/logging"
	"sketchboard/internal/scene"
)

// Changed is published whenever either stack changes depth.
type Changed struct {
	UndoDepth int
	RedoDepth int
}

// Option configures a Service.
type Option func(*options)

type options struct {
	maxLength int
	logger    *slog.Logger
}

// WithMaxLength bounds each stack. Non-positive values keep the default.
func WithMaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = n
	}
}

// WithLogger sets the logger for recorded and dropped entries. The shared
// logging.Logger is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Service is the history engine of one editing session. It records end-user
// mutations of a surface and replays them on PerformUndo and PerformRedo.
type Service struct {
	surface    *scene.Surface
	store      *Store
	dispatcher *Dispatcher
	changes    *eventbus.Bus[Changed]
	logger     *slog.Logger
	detach     func()
}

// New subscribes a history service to s.
func New(s *scene.Surface, opts ...Option) *Service {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Logger()
	}
	svc := &Service{
		surface:    s,
		store:      NewStore(o.maxLength),
		dispatcher: NewDispatcher(s),
		changes:    eventbus.New[Changed](),
		logger:     o.logger,
	}
	svc.detach = s.On(svc.capture)
	return svc
}

// Close stops recording. The stacks are kept.
func (s *Service) Close() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

// Store exposes the stacks for inspection. Callers must not push or pop.
func (s *Service) Store() *Store { return s.store }

// CanUndo reports whether an undo entry is waiting.
func (s *Service) CanUndo() bool { return s.store.UndoLen() > 0 }

// CanRedo reports whether a redo entry is waiting.
func (s *Service) CanRedo() bool { return s.store.RedoLen() > 0 }

// Subscribe registers fn for history change notifications.
func (s *Service) Subscribe(fn func(Changed)) func() {
	return s.changes.Subscribe(func(c Changed) error {
		fn(c)
		return nil
	})
}

// capture turns end-user surface events into undo entries. Replayed and
// remote events are ignored.
func (s *Service) capture(e scene.Event) error {
	if e.Producer != scene.ProducerUser {
		return nil
	}
	targets := make([]Target, len(e.Objects))
	for i, o := range e.Objects {
		if o.ID() == "" {
			return fmt.Errorf("%s: %w", e.Kind, scene.ErrMissingIdentity)
		}
		switch e.Kind {
		case scene.EventAdded:
			targets[i] = Target{ObjectID: o.ID(), Payload: o.Record()}
		case scene.EventRemoved:
			targets[i] = Target{ObjectID: o.ID(), Payload: o.Record(), Index: -1}
			if i < len(e.Index) {
				targets[i].Index = e.Index[i]
			}
		case scene.EventModified:
			if i >= len(e.Original) {
				return fmt.Errorf("%s %s: no original values", e.Kind, o.ID())
			}
			targets[i] = Target{ObjectID: o.ID(), Payload: e.Original[i]}
		}
	}
	if len(targets) == 0 {
		return nil
	}

	var action Action
	switch e.Kind {
	case scene.EventAdded:
		action = ActionAdd
	case scene.EventModified:
		action = ActionModify
	case scene.EventRemoved:
		action = ActionRemove
	default:
		return fmt.Errorf("%s: %w", e.Kind, ErrUnknownAction)
	}

	entry := NewEntry(action, scene.CaptureViewport(s.surface), targets...)
	s.store.RecordUndo(entry)
	s.logger.Debug("history entry recorded", "action", action, "objects", len(targets), "undo", s.store.UndoLen())
	s.notify()
	return nil
}

// PerformUndo reverts the latest entry. It reports whether anything was
// applied; an empty stack is a no-op.
func (s *Service) PerformUndo() bool {
	e, ok := s.store.PeekUndo()
	if !ok {
		return false
	}
	comp, err := s.dispatcher.Dispatch(Undo, e)
	s.store.PopUndo()
	if err != nil {
		s.drop(Undo, e, err)
		return false
	}
	s.store.RecordRedo(comp)
	s.notify()
	return true
}

// PerformRedo reapplies the latest undone entry. An empty stack is a no-op.
func (s *Service) PerformRedo() bool {
	e, ok := s.store.PeekRedo()
	if !ok {
		return false
	}
	comp, err := s.dispatcher.Dispatch(Redo, e)
	s.store.PopRedo()
	if err != nil {
		s.drop(Redo, e, err)
		return false
	}
	s.store.pushUndo(comp)
	s.notify()
	return true
}

// drop discards an entry the surface can no longer honor. The step is
// skipped rather than jamming the stack.
func (s *Service) drop(dir Direction, e Entry, err error) {
	level := slog.LevelError
	if errors.Is(err, scene.ErrObjectNotFound) || errors.Is(err, scene.ErrDuplicateIdentity) {
		level = slog.LevelWarn
	}
	s.logger.Log(context.Background(), level, "history entry dropped",
		"direction", dir.String(), "action", e.Action, "objects", e.ObjectIDs(), "err", err)
	s.notify()
}

func (s *Service) notify() {
	_ = s.changes.Publish(Changed{UndoDepth: s.store.UndoLen(), RedoDepth: s.store.RedoLen()})
}
