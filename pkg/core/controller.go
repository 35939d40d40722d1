package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
)

// ControllerConfig holds the collaborators of the sync controller.
type ControllerConfig struct {
	API      API
	Store    *Store
	Notifier Notifier
	Logger   *slog.Logger
	// ErrorHandler receives panics recovered from the reload loop.
	ErrorHandler func(error)
}

// Controller is the single authority on document freshness.
// It fetches once on Start and again every time the store's reload flag is raised.
type Controller struct {
	api          API
	store        *Store
	notifier     Notifier
	logger       *slog.Logger
	errorHandler func(error)

	fetchMu sync.Mutex // one fetch cycle at a time

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	fetches   int
	failures  int
	lastFetch *time.Time
	lastErr   error
}

// NewController wires a controller to its store and API.
func NewController(config ControllerConfig) *Controller {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Notifier == nil {
		config.Notifier = NopNotifier
	}
	return &Controller{
		api:          config.API,
		store:        config.Store,
		notifier:     config.Notifier,
		logger:       config.Logger,
		errorHandler: config.ErrorHandler,
	}
}

// Start performs the initial fetch and then serves reload requests until ctx
// is cancelled or Stop is called. A failed initial fetch is reported through
// the notifier and State, not returned: the controller keeps running so a
// later reload can still populate the document.
func (c *Controller) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return errors.New("controller already started")
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	if err := c.fetch(runCtx); err != nil {
		c.logger.Warn("initial fetch failed", "error", err)
	}

	lifecycle.Go(runCtx, func(ctx context.Context) error {
		defer close(done)
		c.loop(ctx)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		if c.errorHandler != nil {
			c.errorHandler(fmt.Errorf("reload loop panic: %w", err))
			return
		}
		c.logger.Error("reload loop panic", "error", err)
	}))

	return nil
}

// Stop cancels the reload loop and waits for it to exit.
// A fetch that is in flight settles before Stop returns, so loading is never left raised.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return ErrNotStarted
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload runs one fetch cycle synchronously.
func (c *Controller) Reload(ctx context.Context) error {
	return c.fetch(ctx)
}

func (c *Controller) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.store.reloadSignal():
			if err := c.fetch(ctx); err != nil {
				c.logger.Debug("reload failed", "error", err)
			}
		}
	}
}

// fetch is the fetch-and-clear cycle. The reload flag is cleared only for the
// generation observed before the request; a raise that lands mid-flight keeps
// the flag up and its pending signal triggers exactly one follow-up fetch.
func (c *Controller) fetch(ctx context.Context) error {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	gen := c.store.reloadGeneration()

	c.store.BeginRequest()
	defer c.store.EndRequest()

	start := time.Now()
	doc, err := c.api.FetchDocument(ctx)
	if err != nil {
		c.store.clearReload(gen)
		c.record(err)
		c.store.Publish(Event{Type: EventFetchFailed})
		if ctx.Err() == nil {
			c.notifier.Error(fetchErrorMessage(err))
		}
		return fmt.Errorf("fetch portfolio document: %w", err)
	}

	c.store.replace(doc)
	if !c.store.clearReload(gen) {
		c.logger.Debug("reload raised during fetch, follow-up queued", "generation", gen)
	}
	c.record(nil)
	c.store.Publish(Event{Type: EventReload})
	c.logger.Debug("document fetched", "collections", len(doc.Names()), "elapsed", time.Since(start))
	return nil
}

func (c *Controller) record(err error) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches++
	c.lastFetch = &now
	c.lastErr = err
	if err != nil {
		c.failures++
	}
}

// LastError returns the error of the most recent fetch, nil if it succeeded.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func fetchErrorMessage(err error) string {
	var rejected *RejectedOperation
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	return "Could not load portfolio data"
}
