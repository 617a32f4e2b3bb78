package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lineage/internal/config"
	"github.com/aretw0/lineage/pkg/codec"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/order"
)

const cake = `
type: material_run
uids: {auto: cake}
name: cake
process:
  type: process_run
  uids: {auto: bake-1}
  name: bake
  spec: {type: link_by_uid, scope: auto, id: bake-spec}
  output_material: {type: link_by_uid, scope: auto, id: cake}
spec:
  type: material_spec
  uids: {auto: cake-spec}
  process:
    type: process_spec
    uids: {auto: bake-spec}
    name: baking
`

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Store.Dir = filepath.Join(t.TempDir(), "listings")
	app := NewApp(cfg, nil)
	out := &bytes.Buffer{}
	app.Out = out
	app.In = strings.NewReader("")
	return app, out
}

func writeDoc(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFlatten_YAMLFile(t *testing.T) {
	app, out := newTestApp(t)
	path := writeDoc(t, "cake.yaml", cake)

	listing, err := app.Flatten(path, "")
	require.NoError(t, err)
	require.NoError(t, app.WriteListing(listing, ""))

	decoded, err := codec.UnmarshalListing(out.Bytes(), codec.JSON, app.Registry)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assert.Equal(t, order.ProcessSpec, decoded[0].Type())
	for _, e := range decoded {
		assert.NotEqual(t, order.MaterialRun, e.Type(), "root is not listed")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.Flattens))

	var metrics bytes.Buffer
	require.NoError(t, app.WriteMetrics(&metrics))
	assert.Contains(t, metrics.String(), "lineage_flatten_total 1")
	assert.Contains(t, metrics.String(), "lineage_listing_size_count 1")
}

func TestFlatten_StdinWithFormat(t *testing.T) {
	app, out := newTestApp(t)
	app.In = strings.NewReader(`{"type": "process_run", "uids": {"auto": "r"},
		"spec": {"type": "process_spec", "uids": {"auto": "s"}, "name": "mix"}}`)

	listing, err := app.Flatten(StdinPath, "")
	require.NoError(t, err)
	require.Len(t, listing, 1)

	require.NoError(t, app.WriteListing(listing, "yaml"))
	assert.Contains(t, out.String(), "type: process_spec")
	assert.Contains(t, out.String(), "name: mix")
}

func TestFlatten_InputErrors(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := app.Flatten(writeDoc(t, "cake.txt", cake), "")
	assert.ErrorContains(t, err, `unknown format "txt"`)

	_, err = app.Flatten(filepath.Join(t.TempDir(), "absent.json"), "")
	assert.ErrorContains(t, err, "reading document")

	_, err = app.Flatten(writeDoc(t, "bad.json", "{"), "")
	assert.ErrorContains(t, err, "parsing json document")

	_, err = app.Flatten(writeDoc(t, "odd.json", `{"type": "unicorn"}`), "")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestWriteListing_UnknownFormat(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Error(t, app.WriteListing(nil, "xml"))
}

func TestGraph(t *testing.T) {
	app, out := newTestApp(t)
	require.NoError(t, app.Graph(writeDoc(t, "cake.yml", cake), ""))

	g := out.String()
	assert.True(t, strings.HasPrefix(g, "graph TD\n"))
	assert.Contains(t, g, "baking <br/> process_spec <br/> auto:bake-spec")
	// the back-link to the root points outside the listing
	assert.Contains(t, g, `["auto:cake"]`)
}

func storeRoundTrip(t *testing.T, app *App, out *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()
	path := writeDoc(t, "cake.yaml", cake)

	store, closeStore, err := app.OpenStore()
	require.NoError(t, err)
	defer func() { require.NoError(t, closeStore()) }()

	key, err := app.Save(ctx, store, path, "", "")
	require.NoError(t, err)
	listing, err := app.Flatten(path, "")
	require.NoError(t, err)
	want, err := Key(listing)
	require.NoError(t, err)
	assert.Equal(t, want, key, "default key is the listing digest")

	_, err = app.Save(ctx, store, path, "", "named")
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, app.List(ctx, store))
	assert.ElementsMatch(t, []string{key, "named"}, strings.Fields(out.String()))

	out.Reset()
	require.NoError(t, app.Load(ctx, store, "named", "json"))
	wantJSON, err := codec.MarshalListing(listing, codec.JSON)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), out.String())

	require.NoError(t, app.Delete(ctx, store, "named"))
	err = app.Load(ctx, store, "named", "")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestStore_File(t *testing.T) {
	app, out := newTestApp(t)
	app.Config.Store.Compress = true
	storeRoundTrip(t, app, out)
}

func TestStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	app, out := newTestApp(t)
	app.Config.Store.Backend = config.BackendRedis
	app.Config.Store.Redis.Addr = mr.Addr()
	storeRoundTrip(t, app, out)

	assert.False(t, mr.Exists(app.Config.Store.Redis.Prefix+"named"))
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	app, _ := newTestApp(t)
	app.Config.Store.Backend = "s3"
	_, _, err := app.OpenStore()
	assert.ErrorContains(t, err, `unknown store backend "s3"`)
}

func TestSignalContext_Stop(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Stop()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
	sc.Stop()
}

func TestStore_Redact(t *testing.T) {
	app, _ := newTestApp(t)
	app.Config.Store.Redact = []string{"^name$"}
	ctx := context.Background()

	store, closeStore, err := app.OpenStore()
	require.NoError(t, err)
	defer closeStore()

	_, err = app.Save(ctx, store, writeDoc(t, "cake.yaml", cake), "", "cake")
	require.NoError(t, err)
	listing, err := store.Load(ctx, "cake")
	require.NoError(t, err)
	for _, e := range listing {
		name, _ := e.Attributes().Get("name")
		assert.NotEqual(t, "baking", name)
		assert.NotEqual(t, "bake", name)
	}
}

func TestDescribe(t *testing.T) {
	path := writeDoc(t, "cake.yaml", cake)

	app, out := newTestApp(t)
	require.NoError(t, app.Describe(path, "", false))
	assert.Contains(t, out.String(), "| 1 | 2 | process_spec | `auto:bake-spec` | baking |")

	app, out = newTestApp(t)
	require.NoError(t, app.Describe(path, "", true))
	assert.Contains(t, out.String(), "3 entities")
	assert.Contains(t, out.String(), "baking")
}
