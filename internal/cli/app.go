// Package cli implements the lineage commands on top of the library packages.
// cmd/lineage binds these to cobra; everything here writes to the App's streams so it
// can be driven from tests.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/aretw0/lineage"
	"github.com/aretw0/lineage/internal/adapters/file"
	"github.com/aretw0/lineage/internal/adapters/redis"
	"github.com/aretw0/lineage/internal/config"
	"github.com/aretw0/lineage/internal/logging"
	"github.com/aretw0/lineage/internal/presentation/graph"
	"github.com/aretw0/lineage/internal/presentation/tui"
	"github.com/aretw0/lineage/pkg/codec"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/model"
	"github.com/aretw0/lineage/pkg/observability"
	"github.com/aretw0/lineage/pkg/persistence/middleware"
	"github.com/aretw0/lineage/pkg/ports"
	"github.com/aretw0/lineage/pkg/registry"
)

// StdinPath names standard input as a document source.
const StdinPath = "-"

// App carries the configuration and streams shared by every command.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Registry *registry.Registry
	Metrics  *observability.Metrics
	// Gatherer holds the collectors of Metrics.
	Gatherer prometheus.Gatherer
	In       io.Reader
	Out      io.Writer
}

// NewApp wires an App to the process streams. A nil logger discards logs.
func NewApp(cfg config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := prometheus.NewRegistry()
	return &App{
		Config:   cfg,
		Logger:   logger,
		Registry: model.NewRegistry(),
		Metrics:  observability.NewMetrics(reg),
		Gatherer: reg,
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// WriteMetrics writes the collected metrics to w in the Prometheus text format.
func (a *App) WriteMetrics(w io.Writer) error {
	families, err := a.Gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}

func (a *App) engine() *lineage.Engine {
	return lineage.New(
		lineage.WithLogger(a.Logger),
		lineage.WithScope(a.Config.Scope),
		lineage.WithPreferredScope(a.Config.Scope),
		lineage.WithMetrics(a.Metrics),
	)
}

// ReadDocument loads the nested document at path, or stdin for "" and "-". in forces
// the input format; otherwise it comes from the file extension, and stdin is JSON.
// Links inside the document are resolved against the entities it defines.
func (a *App) ReadDocument(path, in string) (any, error) {
	format, err := inputFormat(path, in)
	if err != nil {
		return nil, err
	}

	var data []byte
	if path == "" || path == StdinPath {
		data, err = io.ReadAll(a.In)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc, err := codec.ParseDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", format, err)
	}
	root, err := codec.Load(doc, a.Registry)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return root, nil
}

func inputFormat(path, in string) (codec.Format, error) {
	switch {
	case in != "":
		return codec.ParseFormat(in)
	case path == "" || path == StdinPath:
		return codec.JSON, nil
	}
	return codec.FormatFromPath(path)
}

// Flatten reads a document and returns its listing.
func (a *App) Flatten(path, in string) ([]domain.Entity, error) {
	root, err := a.ReadDocument(path, in)
	if err != nil {
		return nil, err
	}
	return a.engine().Flatten(root)
}

// WriteListing encodes a listing to Out. An empty format uses the configured one.
func (a *App) WriteListing(listing []domain.Entity, format string) error {
	if format == "" {
		format = a.Config.Format
	}
	f, err := codec.ParseFormat(format)
	if err != nil {
		return err
	}
	data, err := codec.MarshalListing(listing, f)
	if err != nil {
		return err
	}
	_, err = a.Out.Write(data)
	return err
}

// Graph writes the Mermaid diagram of the document's listing to Out.
func (a *App) Graph(path, in string) error {
	listing, err := a.Flatten(path, in)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.Out, graph.GenerateMermaid(listing))
	return err
}

// DescribeWidth is the wrap width of rendered descriptions.
const DescribeWidth = 100

// Describe writes a table of the document's listing. With pretty set, the Markdown is
// rendered for the terminal under a headline colored for the detected color profile.
func (a *App) Describe(path, in string, pretty bool) error {
	listing, err := a.Flatten(path, in)
	if err != nil {
		return err
	}
	md, err := tui.Describe(listing)
	if err != nil {
		return err
	}
	if !pretty {
		_, err = io.WriteString(a.Out, md)
		return err
	}

	render, err := tui.NewRenderer(DescribeWidth)
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("rendering description: %w", err)
	}
	_, err = fmt.Fprintf(a.Out, "%s\n%s", tui.Headline(termenv.EnvColorProfile(), listing), out)
	return err
}

// OpenStore builds the configured listing store, wrapped with call logging and, when
// patterns are configured, redaction. The returned func releases it.
func (a *App) OpenStore() (ports.ListingStore, func() error, error) {
	cfg := a.Config.Store
	var (
		store     ports.ListingStore
		closeFunc = func() error { return nil }
	)
	switch cfg.Backend {
	case config.BackendFile:
		a.Logger.Debug("using file store", "dir", cfg.Dir, "compress", cfg.Compress)
		store = file.New(cfg.Dir, a.Registry, file.WithCompression(cfg.Compress))
	case config.BackendRedis:
		a.Logger.Debug("using redis store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, a.Registry,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		store, closeFunc = s, s.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	mws := []middleware.Middleware{middleware.NewLoggingMiddleware(a.Logger)}
	if len(cfg.Redact) > 0 {
		mws = append(mws, middleware.NewRedactMiddleware(cfg.Redact))
	}
	return middleware.Chain(store, mws...), closeFunc, nil
}

// Key returns the content key of a listing: the digest of its JSON encoding.
func Key(listing []domain.Entity) (string, error) {
	data, err := codec.MarshalListing(listing, codec.JSON)
	if err != nil {
		return "", err
	}
	return codec.Digest(data), nil
}

// Save flattens the document and stores the listing under key, or under its digest
// when key is empty. It prints and returns the key used.
func (a *App) Save(ctx context.Context, store ports.ListingStore, path, in, key string) (string, error) {
	listing, err := a.Flatten(path, in)
	if err != nil {
		return "", err
	}
	if key == "" {
		if key, err = Key(listing); err != nil {
			return "", err
		}
	}
	if err := store.Save(ctx, key, listing); err != nil {
		return "", fmt.Errorf("saving listing %s: %w", key, err)
	}
	a.Logger.Info("listing saved", "key", key, "size", len(listing))
	_, err = fmt.Fprintln(a.Out, key)
	return key, err
}

// Load writes the listing stored under key to Out.
func (a *App) Load(ctx context.Context, store ports.ListingStore, key, format string) error {
	listing, err := store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("loading listing %s: %w", key, err)
	}
	return a.WriteListing(listing, format)
}

// List prints one stored key per line.
func (a *App) List(ctx context.Context, store ports.ListingStore) error {
	keys, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}
	for _, k := range keys {
		if _, err := fmt.Fprintln(a.Out, k); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the listing stored under key.
func (a *App) Delete(ctx context.Context, store ports.ListingStore, key string) error {
	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("deleting listing %s: %w", key, err)
	}
	a.Logger.Info("listing deleted", "key", key)
	return nil
}
