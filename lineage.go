package lineage

import (
	"log/slog"

	"github.com/aretw0/lineage/internal/logging"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/flatten"
	"github.com/aretw0/lineage/pkg/index"
	"github.com/aretw0/lineage/pkg/observability"
)

// Engine holds the settings shared by Flatten and Rehydrate calls.
type Engine struct {
	logger    *slog.Logger
	scope     string
	preferred string
	generate  func() string
	recorders []observability.Recorder
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithScope sets the scope generated identifiers are recorded under (default "auto").
func WithScope(scope string) Option {
	return func(e *Engine) {
		e.scope = scope
	}
}

// WithPreferredScope makes links use scope whenever the target has an identifier in it.
func WithPreferredScope(scope string) Option {
	return func(e *Engine) {
		e.preferred = scope
	}
}

// WithGenerator replaces the UUID generator for new identifiers.
func WithGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.generate = fn
	}
}

// WithMetrics reports flatten counts to m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.recorders = append(e.recorders, m)
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		scope: flatten.DefaultScope,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Flatten lists every entity reachable from root, other than root, exactly once, with
// references replaced by links and dependencies first. Entities without identifiers
// get one assigned in place.
func (e *Engine) Flatten(root any) ([]domain.Entity, error) {
	opts := []flatten.Option{
		flatten.WithScope(e.scope),
		flatten.WithPreferredScope(e.preferred),
		flatten.WithLogger(e.logger),
	}
	if e.generate != nil {
		opts = append(opts, flatten.WithGenerator(e.generate))
	}
	if len(e.recorders) > 0 {
		opts = append(opts, flatten.WithRecorder(observability.Multi(e.recorders...)))
	}

	listing, err := flatten.Flatten(root, opts...)
	if err != nil {
		e.logger.Error("flatten failed", "error", err)
		return nil, err
	}
	e.logger.Debug("flatten complete", "size", len(listing))
	return listing, nil
}

// Rehydrate replays a listing into a fresh index and returns it with the resolved
// entities in listing order.
func (e *Engine) Rehydrate(listing []domain.Entity) (*index.Index, []domain.Entity, error) {
	idx := index.New()
	entities, err := flatten.Rehydrate(listing, idx)
	if err != nil {
		e.logger.Error("rehydrate failed", "error", err)
		return nil, nil, err
	}
	e.logger.Debug("rehydrate complete", "entities", idx.Len())
	return idx, entities, nil
}

// Flatten is shorthand for New(opts...).Flatten(root).
func Flatten(root any, opts ...Option) ([]domain.Entity, error) {
	return New(opts...).Flatten(root)
}

// Rehydrate is shorthand for New(opts...).Rehydrate(listing).
func Rehydrate(listing []domain.Entity, opts ...Option) (*index.Index, []domain.Entity, error) {
	return New(opts...).Rehydrate(listing)
}
