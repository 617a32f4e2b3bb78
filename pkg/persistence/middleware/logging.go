package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ListingStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at Debug, and failures at Warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ListingStore) ports.ListingStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) done(op, key string, start time.Time, err error, args ...any) {
	args = append([]any{"op", op, "key", key, "duration", time.Since(start)}, args...)
	if err != nil {
		m.logger.Warn("store call failed", append(args, "error", err)...)
		return
	}
	m.logger.Debug("store call", args...)
}

func (m *loggingMiddleware) Save(ctx context.Context, key string, listing []domain.Entity) error {
	start := time.Now()
	err := m.next.Save(ctx, key, listing)
	m.done("save", key, start, err, "size", len(listing))
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, key string) ([]domain.Entity, error) {
	start := time.Now()
	listing, err := m.next.Load(ctx, key)
	m.done("load", key, start, err, "size", len(listing))
	return listing, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := m.next.Delete(ctx, key)
	m.done("delete", key, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := m.next.List(ctx)
	m.done("list", "", start, err, "keys", len(keys))
	return keys, err
}
