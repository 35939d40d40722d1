package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const defaultEventBuffer = 100

// StoreConfig holds the configuration for the shared store.
type StoreConfig struct {
	Logger      *slog.Logger
	EventBuffer int // per-subscriber buffer, zero means 100
}

// Snapshot is a consistent read of every store slot.
type Snapshot struct {
	Document        *Document // nil before the first successful fetch
	Loading         bool
	ReloadRequested bool
}

// Store holds the synchronized portfolio document and its transient flags.
//
// The document is written only by the Controller. Mutations may only raise
// the reload flag and bracket their requests with BeginRequest/EndRequest.
type Store struct {
	mu sync.RWMutex

	doc       *Document
	inflight  int
	reload    bool
	reloadGen uint64
	signal    chan struct{}

	subs        map[int]*subscriber
	nextSub     int
	eventBuffer int
	dropped     int

	lastReplace *time.Time
	logger      *slog.Logger
}

type subscriber struct {
	pattern string
	ch      chan Event
}

// NewStore creates an empty store. The document stays absent until the first fetch.
func NewStore(config StoreConfig) *Store {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = defaultEventBuffer
	}
	return &Store{
		signal:      make(chan struct{}, 1),
		subs:        make(map[int]*subscriber),
		eventBuffer: config.EventBuffer,
		logger:      config.Logger,
	}
}

// Snapshot returns a copy of the document together with both flags.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Document:        s.doc.Clone(),
		Loading:         s.inflight > 0,
		ReloadRequested: s.reload,
	}
}

// Document returns a copy of the current document, or nil before the first load.
func (s *Store) Document() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Loading reports whether any fetch or mutation is outstanding.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// ReloadRequested reports whether a reload has been raised and not yet served.
func (s *Store) ReloadRequested() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reload
}

// BeginRequest marks a request as in flight. Every call must be paired with EndRequest.
func (s *Store) BeginRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
}

// EndRequest marks a request as settled.
func (s *Store) EndRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == 0 {
		s.logger.Warn("unbalanced EndRequest ignored")
		return
	}
	s.inflight--
}

// RequestReload raises the reload flag and wakes the controller.
// Raises collapse: any number of calls before the next fetch yields one pending reload.
func (s *Store) RequestReload() {
	s.mu.Lock()
	s.reload = true
	s.reloadGen++
	gen := s.reloadGen
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
	s.logger.Debug("reload requested", "generation", gen)
}

// reloadSignal is the wake-up channel consumed by the controller.
func (s *Store) reloadSignal() <-chan struct{} {
	return s.signal
}

func (s *Store) reloadGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reloadGen
}

// clearReload lowers the flag unless a newer raise happened after gen was observed.
func (s *Store) clearReload(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reloadGen != gen {
		return false
	}
	s.reload = false
	return true
}

// replace swaps in a freshly fetched document.
func (s *Store) replace(doc *Document) {
	if doc == nil {
		doc = NewDocument()
	}
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.lastReplace = &now
}

// Watch streams store events whose collection matches pattern (doublestar glob).
// Document-wide events are always delivered. The channel closes when ctx is done.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	sub := &subscriber{pattern: pattern, ch: make(chan Event, s.eventBuffer)}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(sub.ch)
		s.mu.Unlock()
	}()

	return sub.ch, nil
}

// Publish delivers e to every matching subscriber without blocking.
// Events for a subscriber whose buffer is full are dropped.
func (s *Store) Publish(e Event) {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().Unix()
	}

	s.mu.RLock()
	var dropped int
	for _, sub := range s.subs {
		if e.Collection != "" {
			ok, err := doublestar.Match(sub.pattern, e.Collection)
			if err != nil || !ok {
				continue
			}
		}
		select {
		case sub.ch <- e:
		default:
			dropped++
		}
	}
	s.mu.RUnlock()

	if dropped > 0 {
		s.mu.Lock()
		s.dropped += dropped
		s.mu.Unlock()
		s.logger.Debug("slow subscriber, event dropped", "event", e.String(), "count", dropped)
	}
}
