package order_test

import (
	"testing"

	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tagged is the smallest Entity that only answers Type.
type tagged struct {
	domain.Entity
	typ string
}

func (t tagged) Type() string { return t.typ }

func TestRank(t *testing.T) {
	tests := []struct {
		typ  string
		want int
	}{
		{order.ConditionTemplate, 0},
		{order.ParameterTemplate, 0},
		{order.PropertyTemplate, 0},
		{order.MaterialTemplate, 1},
		{order.ProcessTemplate, 1},
		{order.MeasurementTemplate, 1},
		{order.ProcessSpec, 2},
		{order.MeasurementSpec, 2},
		{order.ProcessRun, 3},
		{order.MaterialSpec, 3},
		{order.IngredientSpec, 4},
		{order.MaterialRun, 4},
		{order.IngredientRun, 5},
		{order.MeasurementRun, 5},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got, err := order.Rank(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			got, err = order.Rank(tagged{typ: tt.typ})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "entities rank like their tag")
		})
	}
}

func TestRank_Unrecognized(t *testing.T) {
	_, err := order.Rank("widget")
	assert.ErrorIs(t, err, domain.ErrUnrecognizedType)

	_, err = order.Rank(tagged{typ: "widget"})
	assert.ErrorIs(t, err, domain.ErrUnrecognizedType)

	_, err = order.Rank(3.14)
	var typed *domain.UnrecognizedTypeError
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, 3.14, typed.Value)
}

func TestTypes(t *testing.T) {
	types := order.Types()
	require.Len(t, types, 14)
	assert.Equal(t, order.ConditionTemplate, types[0])
	assert.Equal(t, order.MeasurementRun, types[len(types)-1])
}

func TestSort_Stable(t *testing.T) {
	runA := tagged{typ: order.ProcessRun}
	runB := tagged{typ: order.MaterialSpec}
	tmpl := tagged{typ: order.PropertyTemplate}
	meas := tagged{typ: order.MeasurementRun}

	entities := []domain.Entity{meas, runA, tmpl, runB}
	require.NoError(t, order.Sort(entities))

	assert.Equal(t, []domain.Entity{tmpl, runA, runB, meas}, entities)
}

func TestSort_ErrorLeavesInput(t *testing.T) {
	entities := []domain.Entity{tagged{typ: order.MeasurementRun}, tagged{typ: "widget"}}
	err := order.Sort(entities)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedType)
	assert.Equal(t, order.MeasurementRun, entities[0].Type())
}
