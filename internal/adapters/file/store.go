package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/lineage/pkg/codec"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/registry"
)

const (
	jsonExt = ".json"
	zstdExt = ".json.zst"
)

// Store implements ports.ListingStore using the local filesystem.
// Each listing is a JSON file in BasePath, optionally zstd-compressed.
type Store struct {
	BasePath string
	reg      *registry.Registry
	compress bool
}

type Option func(*Store)

// WithCompression stores listings zstd-compressed, as <key>.json.zst.
func WithCompression(enabled bool) Option {
	return func(s *Store) {
		s.compress = enabled
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".lineage/listings".
func New(basePath string, reg *registry.Registry, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".lineage", "listings")
	}
	s := &Store{BasePath: basePath, reg: reg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ext() string {
	if s.compress {
		return zstdExt
	}
	return jsonExt
}

func (s *Store) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}
	if key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.BasePath, key+s.ext()), nil
}

// Save writes the listing atomically: to a temporary file first, synced, then renamed
// over the destination.
func (s *Store) Save(ctx context.Context, key string, listing []domain.Entity) error {
	destPath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure listing directory: %w", err)
	}

	data, err := codec.MarshalListing(listing, codec.JSON)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}
	if s.compress {
		data = compress(data)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+key+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not replace an existing file on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing listing for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to listing: %w", err)
	}
	return nil
}

// Load reads the listing stored under key.
func (s *Store) Load(ctx context.Context, key string) ([]domain.Entity, error) {
	filePath, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to read listing file: %w", err)
	}
	if s.compress {
		data, err = decompress(data)
		if err != nil {
			return nil, err
		}
	}
	return codec.UnmarshalListing(data, codec.JSON, s.reg)
}

// Delete removes the listing file.
func (s *Store) Delete(ctx context.Context, key string) error {
	filePath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete listing file: %w", err)
	}
	return nil
}

// List returns the keys of the stored listings, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	ext := s.ext()
	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "tmp-") || !strings.HasSuffix(name, ext) {
			continue
		}
		// a plain store must not pick up "x.json.zst" as "x.json"
		key := strings.TrimSuffix(name, ext)
		if !s.compress && strings.HasSuffix(key, ".json") {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}
