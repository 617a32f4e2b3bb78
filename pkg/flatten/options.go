package flatten

import (
	"log/slog"

	"github.com/aretw0/lineage/internal/logging"
	"github.com/google/uuid"
)

// DefaultScope is the scope under which generated identifiers are recorded.
const DefaultScope = "auto"

// Recorder receives counts from Flatten. observability.Metrics implements it.
type Recorder interface {
	UIDsAssigned(n int)
	Flattened(size int)
	Failed()
}

type options struct {
	scope     string
	preferred string
	generate  func() string
	logger    *slog.Logger
	recorder  Recorder
}

// Option configures Flatten.
type Option func(*options)

// WithScope sets the scope for generated identifiers (default "auto").
func WithScope(scope string) Option {
	return func(o *options) {
		o.scope = scope
	}
}

// WithPreferredScope makes links use scope whenever the target has an identifier in it.
func WithPreferredScope(scope string) Option {
	return func(o *options) {
		o.preferred = scope
	}
}

// WithGenerator replaces the random UUID generator, e.g. for reproducible output.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		o.generate = fn
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder reports counts to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		scope:    DefaultScope,
		generate: uuid.NewString,
		logger:   logging.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type nopRecorder struct{}

func (nopRecorder) UIDsAssigned(int) {}
func (nopRecorder) Flattened(int)    {}
func (nopRecorder) Failed()          {}
