package folio

import (
	"log/slog"
	"time"

	"github.com/aretw0/folio/internal/platform"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/portfolio"
	"github.com/aretw0/folio/pkg/typed"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Form is a public alias for editor input.
type Form = typed.Form

// Kind is a public alias for an entity kind description.
type Kind = typed.Kind

// Repository is a public alias for the typed mutation lifecycle.
type Repository[T any] = typed.Repository[T]

// Editor is a public alias for an add/edit session.
type Editor[T any] = typed.Editor[T]

// Admin is a public alias for the set of built-in entity repositories.
type Admin = portfolio.Admin

// --- Configuration ---

// Option defines a functional option for configuring folio.
type Option = platform.Option

// Config is the file and environment configuration.
type Config = platform.Config

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithNotifier sets where success and error notifications go.
func WithNotifier(n core.Notifier) Option {
	return platform.WithNotifier(n)
}

// WithAPI allows injecting a custom API implementation.
func WithAPI(api core.API) Option {
	return platform.WithAPI(api)
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return platform.WithToken(token)
}

// WithTimeout bounds every HTTP request.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithEventBuffer allows specifying the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithErrorHandler registers a callback for panics recovered from the reload loop.
func WithErrorHandler(fn func(error)) Option {
	return platform.WithErrorHandler(fn)
}

// --- Factory ---

// New creates a new, not yet started, folio Service.
func New(baseURL string, opts ...Option) (*core.Service, error) {
	return platform.New(baseURL, opts...)
}

// NewAdmin creates one repository per built-in entity kind.
func NewAdmin(svc *core.Service) *Admin {
	return portfolio.NewAdmin(svc)
}

// NewRepository creates a typed repository for a custom entity kind.
func NewRepository[T any](svc *core.Service, kind Kind) *Repository[T] {
	return typed.NewRepository[T](svc, kind)
}

// --- Configuration helpers ---

// LoadConfig reads .env files, an optional YAML file and FOLIO_* variables.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	return platform.LoadConfig(path, envFiles...)
}

// FindConfig recursively looks upwards for a folio config file.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}

// --- Field helpers ---

// SplitList turns comma-delimited input into trimmed, non-empty tokens.
func SplitList(s string) []string {
	return typed.SplitList(s)
}

// JoinList renders tokens for display in a form.
func JoinList(tokens []string) string {
	return typed.JoinList(tokens)
}
