package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lineage/pkg/adapters/memory"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/model"
	"github.com/aretw0/lineage/pkg/persistence/middleware"
	"github.com/aretw0/lineage/pkg/ports"
	"github.com/aretw0/lineage/pkg/ports/tests"
)

func secretRun() *model.ProcessRun {
	run := &model.ProcessRun{Object: model.Object{
		Name:      "bake",
		Notes:     "oven 3, ask Dana",
		FileLinks: []any{&model.FileLink{Filename: "log.csv", URL: "https://lab.internal/log.csv"}},
	}}
	run.Tags = []string{"batch::7"}
	run.AddUID("auto", "run-1")
	run.Conditions = []any{&model.Condition{Attribute: model.Attribute{Name: "temperature", Notes: "uncalibrated"}}}
	run.Spec = domain.Link{Scope: "auto", ID: "spec-1"}
	return run
}

func TestRedactMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore(model.NewRegistry())
	store := middleware.NewRedactMiddleware([]string{"^notes$", "url", "tags", "uids"})(underlying)
	ctx := context.Background()

	run := secretRun()
	require.NoError(t, store.Save(ctx, "k", []domain.Entity{run}))

	// the caller's entities are untouched
	assert.Equal(t, "oven 3, ask Dana", run.Notes)
	assert.Equal(t, "https://lab.internal/log.csv", run.FileLinks[0].(*model.FileLink).URL)

	listing, err := underlying.Load(ctx, "k")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	got := listing[0].(*model.ProcessRun)

	assert.Equal(t, "bake", got.Name)
	assert.Equal(t, middleware.Mask, got.Notes)
	assert.Equal(t, []string{middleware.Mask}, got.Tags)
	link := got.FileLinks[0].(*model.FileLink)
	assert.Equal(t, "log.csv", link.Filename)
	assert.Equal(t, middleware.Mask, link.URL)
	cond := got.Conditions[0].(*model.Condition)
	assert.Equal(t, "temperature", cond.Name)
	assert.Equal(t, middleware.Mask, cond.Notes)
	assert.Equal(t, domain.Link{Scope: "auto", ID: "spec-1"}, got.Spec)

	id, ok := got.UIDs().Get("auto")
	assert.True(t, ok, "identifiers are never redacted")
	assert.Equal(t, "run-1", id)
}

func TestRedactMiddleware_RecordsInsideTuples(t *testing.T) {
	underlying := memory.NewStore(model.NewRegistry())
	store := middleware.NewRedactMiddleware([]string{"^default_units$"})(underlying)
	ctx := context.Background()

	bounds := &model.RealBounds{Lower: 20, Upper: 300, DefaultUnits: "degC"}
	tmpl := &model.ProcessTemplate{
		Name:       "bake",
		Conditions: []any{domain.Tuple{domain.Link{Scope: "auto", ID: "temperature"}, bounds}},
	}
	tmpl.AddUID("auto", "bake")
	require.NoError(t, store.Save(ctx, "k", []domain.Entity{tmpl}))
	assert.Equal(t, "degC", bounds.DefaultUnits)

	listing, err := underlying.Load(ctx, "k")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	got := listing[0].(*model.ProcessTemplate)
	require.Len(t, got.Conditions, 1)
	pair := got.Conditions[0].([]any)
	require.Len(t, pair, 2)
	assert.Equal(t, domain.Link{Scope: "auto", ID: "temperature"}, pair[0])
	assert.Equal(t, &model.RealBounds{Lower: 20, Upper: 300, DefaultUnits: middleware.Mask}, pair[1])
}

func TestRedactMiddleware_NilListsStayNil(t *testing.T) {
	underlying := memory.NewStore(model.NewRegistry())
	store := middleware.NewRedactMiddleware([]string{"^notes$", "tags"})(underlying)
	ctx := context.Background()

	spec := &model.ProcessSpec{Object: model.Object{Name: "mix", Notes: "by hand"}}
	spec.AddUID("auto", "mix")
	require.NoError(t, store.Save(ctx, "k", []domain.Entity{spec}))

	listing, err := underlying.Load(ctx, "k")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	got := listing[0].(*model.ProcessSpec)
	assert.Equal(t, middleware.Mask, got.Notes)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.Parameters)
	assert.Nil(t, got.Conditions)
	assert.Nil(t, got.FileLinks)
}

func TestRedactMiddleware_Contract(t *testing.T) {
	store := middleware.NewRedactMiddleware([]string{"no-such-field"})(memory.NewStore(model.NewRegistry()))
	tests.ListingStoreContractTest(t, store)
}

func TestRedactMiddleware_InvalidPattern(t *testing.T) {
	assert.Panics(t, func() { middleware.NewRedactMiddleware([]string{"("}) })
}

type failingStore struct{ ports.ListingStore }

func (failingStore) Load(ctx context.Context, key string) ([]domain.Entity, error) {
	return nil, errors.New("backend down")
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	store := middleware.NewLoggingMiddleware(logger)(memory.NewStore(model.NewRegistry()))
	require.NoError(t, store.Save(ctx, "k", []domain.Entity{secretRun()}))
	assert.Contains(t, buf.String(), "op=save key=k")
	assert.Contains(t, buf.String(), "size=1")

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	failing := middleware.NewLoggingMiddleware(logger)(failingStore{})
	_, err = failing.Load(ctx, "k")
	assert.EqualError(t, err, "backend down")
	assert.Contains(t, buf.String(), `error="backend down"`)
}

func TestChain_Order(t *testing.T) {
	var calls []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.ListingStore) ports.ListingStore {
			return recordingStore{ListingStore: next, name: name, calls: &calls}
		}
	}
	store := middleware.Chain(memory.NewStore(model.NewRegistry()), tag("outer"), tag("inner"))
	_, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

type recordingStore struct {
	ports.ListingStore
	name  string
	calls *[]string
}

func (s recordingStore) List(ctx context.Context) ([]string, error) {
	*s.calls = append(*s.calls, s.name)
	return s.ListingStore.List(ctx)
}
