package walk_test

import (
	"errors"
	"testing"

	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/model"
	"github.com/aretw0/lineage/pkg/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entities []domain.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		n, _ := e.Attributes().Get("name")
		out[i], _ = n.(string)
	}
	return out
}

func self(e domain.Entity) []domain.Entity {
	return []domain.Entity{e}
}

func TestFlatMap_SkipsBackReferences(t *testing.T) {
	proc := &model.ProcessRun{Object: model.Object{Name: "foo"}}
	(&model.IngredientRun{Object: model.Object{Name: "bar"}}).SetProcess(proc)

	// the process is reached again through the ingredient's own process field
	assert.Len(t, walk.FlatMap(proc, self, true), 2)

	proc = &model.ProcessRun{Object: model.Object{Name: "foo"}}
	(&model.MaterialRun{Object: model.Object{Name: "out"}}).SetProcess(proc)

	assert.Empty(t, walk.FlatMap(proc, self, true))
	assert.Equal(t, []string{"foo", "out"}, names(walk.FlatMap(proc, self, false)))
}

func TestFlatMap_ChildrenBeforeParents(t *testing.T) {
	spec := &model.ProcessSpec{Object: model.Object{Name: "spec"}}
	procRun := &model.ProcessRun{Object: model.Object{Name: "proc"}, Spec: spec}
	mat := &model.MaterialRun{Object: model.Object{Name: "mat"}, Process: procRun}
	root := &model.MeasurementRun{Material: mat}

	got := walk.FlatMap(root, self, true)
	assert.Equal(t, []string{"spec", "proc", "mat"}, names(got))
}

func TestFlatMap_CallsFnOnEveryEdge(t *testing.T) {
	shared := &model.ProcessSpec{Object: model.Object{Name: "shared"}}
	a := &model.ProcessRun{Object: model.Object{Name: "a"}, Spec: shared}
	b := &model.ProcessRun{Object: model.Object{Name: "b"}, Spec: shared}
	root := []any{a, b}

	got := walk.FlatMap(root, self, true)
	assert.Equal(t, []string{"shared", "a", "shared", "b"}, names(got))
}

func TestFlatMap_Containers(t *testing.T) {
	a := &model.ProcessSpec{Object: model.Object{Name: "a"}}
	b := &model.ProcessSpec{Object: model.Object{Name: "b"}}
	c := &model.ProcessSpec{Object: model.Object{Name: "c"}}
	d := &model.ProcessSpec{Object: model.Object{Name: "d"}}

	m := domain.NewMapping()
	m.Set(a, "value")
	m.Set("key", b)
	root := []any{m, domain.Tuple{c}, map[string]any{"z": nil, "y": d}, 42, nil}

	got := walk.FlatMap(root, self, true)
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(got))
}

func TestFlatMap_Cycle(t *testing.T) {
	loop := []any{nil}
	loop[0] = loop
	p := &model.ProcessSpec{Object: model.Object{Name: "p"}}
	p.Parameters = []any{loop, p}

	got := walk.FlatMap(p, self, true)
	assert.Equal(t, []string{"p"}, names(got))
}

func TestForeach(t *testing.T) {
	spec := &model.ProcessSpec{Object: model.Object{Name: "spec"}}
	run := &model.ProcessRun{Object: model.Object{Name: "run"}, Spec: spec}
	mat := &model.MaterialRun{Object: model.Object{Name: "mat"}}
	mat.SetProcess(run)

	collect := func(applyFirst bool) []string {
		var seen []domain.Entity
		err := walk.Foreach(run, func(e domain.Entity) error {
			seen = append(seen, e)
			return nil
		}, applyFirst)
		require.NoError(t, err)
		return names(seen)
	}

	// back-references are followed, every entity is visited once, root included
	assert.Equal(t, []string{"spec", "mat", "run"}, collect(false))
	assert.Equal(t, []string{"run", "spec", "mat"}, collect(true))
}

func TestForeach_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	a := &model.ProcessSpec{Object: model.Object{Name: "a"}}
	b := &model.ProcessSpec{Object: model.Object{Name: "b"}}
	calls := 0

	err := walk.Foreach([]any{a, b}, func(e domain.Entity) error {
		calls++
		return boom
	}, true)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestForeach_NilEntity(t *testing.T) {
	var missing *model.ProcessSpec
	calls := 0
	err := walk.Foreach([]any{missing, nil}, func(domain.Entity) error {
		calls++
		return nil
	}, false)
	require.NoError(t, err)
	assert.Zero(t, calls)
}
