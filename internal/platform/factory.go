package platform

import (
	"log/slog"

	"github.com/aretw0/folio/pkg/adapters/httpapi"
	"github.com/aretw0/folio/pkg/adapters/notify"
	"github.com/aretw0/folio/pkg/core"
)

// New wires the API client, the shared store and the sync controller.
//
//	svc, err := folio.New("https://example.com/api/portfolio", folio.WithToken(token))
//
// The service is not started; call Start to perform the initial fetch.
func New(baseURL string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	notifier := o.notifier
	if notifier == nil {
		notifier = notify.Log{Logger: logger}
	}

	api := o.api
	if api == nil {
		if err := validateBaseURL(baseURL); err != nil {
			return nil, err
		}
		api = httpapi.NewClient(httpapi.Config{
			BaseURL:    baseURL,
			Token:      o.token,
			Timeout:    o.timeout,
			Logger:     logger,
			HTTPClient: o.httpClient,
		})
	}

	return core.NewService(api, core.ServiceConfig{
		Notifier:     notifier,
		Logger:       logger,
		EventBuffer:  o.eventBuffer,
		ErrorHandler: o.errorHandler,
	}), nil
}
