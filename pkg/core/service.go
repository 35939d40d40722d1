package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ServiceConfig holds the optional collaborators of a Service.
type ServiceConfig struct {
	Notifier     Notifier
	Logger       *slog.Logger
	EventBuffer  int
	ErrorHandler func(error)
}

// Service ties the shared store, the sync controller and the remote API together.
// It is created once at application start and lives until shutdown.
type Service struct {
	api        API
	store      *Store
	controller *Controller
	notifier   Notifier
	logger     *slog.Logger
}

// NewService creates a new Service.
func NewService(api API, config ServiceConfig) *Service {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Notifier == nil {
		config.Notifier = NopNotifier
	}

	store := NewStore(StoreConfig{
		Logger:      config.Logger,
		EventBuffer: config.EventBuffer,
	})
	controller := NewController(ControllerConfig{
		API:          api,
		Store:        store,
		Notifier:     config.Notifier,
		Logger:       config.Logger,
		ErrorHandler: config.ErrorHandler,
	})

	return &Service{
		api:        api,
		store:      store,
		controller: controller,
		notifier:   config.Notifier,
		logger:     config.Logger,
	}
}

// Store returns the shared store.
func (s *Service) Store() *Store { return s.store }

// Controller returns the sync controller.
func (s *Service) Controller() *Controller { return s.controller }

// Start fetches the document and begins serving reload requests.
func (s *Service) Start(ctx context.Context) error {
	return s.controller.Start(ctx)
}

// Stop halts the sync controller.
func (s *Service) Stop(ctx context.Context) error {
	return s.controller.Stop(ctx)
}

// Reload fetches the document synchronously.
func (s *Service) Reload(ctx context.Context) error {
	return s.controller.Reload(ctx)
}

// Snapshot returns a consistent read of the store.
func (s *Service) Snapshot() Snapshot {
	return s.store.Snapshot()
}

// Watch observes changes to collections matching pattern.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	return s.store.Watch(ctx, pattern)
}

// Mutation describes one create, update or delete call against an entity endpoint.
type Mutation struct {
	Type       EventType // EventCreate, EventUpdate or EventDelete
	Entity     string    // endpoint name, e.g. "course"
	Collection string    // document key, e.g. "courses"
	ID         string    // required for update and delete
	Payload    Item      // ignored for delete
}

func (m Mutation) op() string {
	switch m.Type {
	case EventCreate:
		return "add-" + m.Entity
	case EventUpdate:
		return "update-" + m.Entity
	case EventDelete:
		return "delete-" + m.Entity
	}
	return string(m.Type) + " " + m.Entity
}

// Mutate runs the mutation lifecycle: loading is raised for exactly the
// duration of the request, the outcome is notified, and only a successful
// response raises the reload flag. The document itself is never touched.
func (s *Service) Mutate(ctx context.Context, m Mutation) (Envelope, error) {
	payload, err := m.prepare()
	if err != nil {
		return Envelope{}, err
	}

	env, err := s.call(ctx, m, payload)
	if err != nil {
		s.logger.Warn("mutation failed", "op", m.op(), "id", m.ID, "error", err)
		s.notifier.Error(TransportErrorMessage)
		return Envelope{}, err
	}

	if !env.Success {
		s.logger.Info("mutation rejected", "op", m.op(), "id", m.ID, "message", env.Message)
		s.notifier.Error(env.Message)
		return env, &RejectedOperation{Op: m.op(), Message: env.Message}
	}

	s.logger.Info("mutation applied", "op", m.op(), "id", m.ID)
	s.notifier.Success(env.Message)
	s.store.RequestReload()
	s.store.Publish(Event{Type: m.Type, Collection: m.Collection, ID: m.ID})
	return env, nil
}

// call brackets the request with the loading flag. EndRequest is deferred so
// the flag drops on every settlement, including panics and cancelled contexts.
func (s *Service) call(ctx context.Context, m Mutation, payload Item) (Envelope, error) {
	s.store.BeginRequest()
	defer s.store.EndRequest()

	switch m.Type {
	case EventCreate:
		return s.api.Create(ctx, m.Entity, payload)
	case EventUpdate:
		return s.api.Update(ctx, m.Entity, payload)
	default:
		return s.api.Delete(ctx, m.Entity, m.ID)
	}
}

func (m Mutation) prepare() (Item, error) {
	if m.Entity == "" {
		return nil, errors.New("mutation entity cannot be empty")
	}
	switch m.Type {
	case EventCreate:
		payload := make(Item, len(m.Payload))
		for k, v := range m.Payload {
			payload[k] = v
		}
		delete(payload, IDKey)
		return payload, nil
	case EventUpdate:
		if m.ID == "" {
			return nil, &ValidationGap{Kind: m.Entity, Missing: []string{IDKey}}
		}
		payload := make(Item, len(m.Payload)+1)
		for k, v := range m.Payload {
			payload[k] = v
		}
		payload[IDKey] = m.ID
		return payload, nil
	case EventDelete:
		if m.ID == "" {
			return nil, &ValidationGap{Kind: m.Entity, Missing: []string{IDKey}}
		}
		return Item{IDKey: m.ID}, nil
	}
	return nil, fmt.Errorf("unsupported mutation type %q", m.Type)
}

// TransportErrorMessage is what users are told when a mutation never got a
// server answer. The underlying fault is logged, not shown.
const TransportErrorMessage = "An error occurred, please try again"
