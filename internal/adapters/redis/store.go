package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/lineage/pkg/codec"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/registry"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the keys the store writes.
const DefaultPrefix = "lineage:listing:"

// farFuture scores index entries of listings that never expire (2100-01-01).
const farFuture = 4102444800

// Store implements ports.ListingStore using Redis.
// Listings are JSON strings; a sorted set indexes the keys by expiry.
type Store struct {
	client *backend.Client
	reg    *registry.Registry
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for listings.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for listings.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, reg *registry.Registry, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, reg, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, reg *registry.Registry, opts ...Option) *Store {
	store := &Store{
		client: client,
		reg:    reg,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the listing and records it in the index.
func (s *Store) Save(ctx context.Context, key string, listing []domain.Entity) error {
	data, err := codec.MarshalListing(listing, codec.JSON)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(key), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: key,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the listing from Redis.
func (s *Store) Load(ctx context.Context, key string) ([]domain.Entity, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return codec.UnmarshalListing(val, codec.JSON, s.reg)
}

// Delete removes the listing and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns the keys of live listings, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired listings: %w", err)
	}

	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return keys, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
