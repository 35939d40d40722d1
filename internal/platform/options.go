package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/folio/pkg/core"
)

// options holds the internal configuration for the folio service.
type options struct {
	api          core.API
	logger       *slog.Logger
	notifier     core.Notifier
	token        string
	timeout      time.Duration
	httpClient   *http.Client
	eventBuffer  int
	errorHandler func(error)
}

// Option defines a functional option for configuring folio.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		api:      nil,
		logger:   nil,
		notifier: nil,
	}
}

// WithLogger sets the logger for the service and the API client.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNotifier sets where success and error notifications go.
// Defaults to logging them.
func WithNotifier(n core.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithAPI allows injecting a custom API implementation (e.g. a fake for tests).
// If provided, the HTTP client is not created and the base URL is ignored.
func WithAPI(api core.API) Option {
	return func(o *options) {
		o.api = api
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithTimeout bounds every HTTP request. Zero means 30s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithEventBuffer allows specifying the per-subscriber event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithErrorHandler registers a callback for panics recovered from the reload loop.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
