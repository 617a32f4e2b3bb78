// Package order ranks entity kinds so a flattened listing can be replayed front to back.
//
// Templates come before anything instantiated from them, specs before the runs that
// realise them, and materials before the ingredients and measurements that consume them.
package order

import (
	"cmp"
	"slices"

	"github.com/aretw0/lineage/pkg/domain"
)

// Type tags of the ranked entity kinds.
const (
	ConditionTemplate   = "condition_template"
	ParameterTemplate   = "parameter_template"
	PropertyTemplate    = "property_template"
	MaterialTemplate    = "material_template"
	ProcessTemplate     = "process_template"
	MeasurementTemplate = "measurement_template"
	ProcessSpec         = "process_spec"
	MeasurementSpec     = "measurement_spec"
	ProcessRun          = "process_run"
	MaterialSpec        = "material_spec"
	IngredientSpec      = "ingredient_spec"
	MaterialRun         = "material_run"
	IngredientRun       = "ingredient_run"
	MeasurementRun      = "measurement_run"
)

var ranks = map[string]int{
	ConditionTemplate: 0,
	ParameterTemplate: 0,
	PropertyTemplate:  0,

	MaterialTemplate:    1,
	ProcessTemplate:     1,
	MeasurementTemplate: 1,

	ProcessSpec:     2,
	MeasurementSpec: 2,

	ProcessRun:   3,
	MaterialSpec: 3,

	IngredientSpec: 4,
	MaterialRun:    4,

	IngredientRun:  5,
	MeasurementRun: 5,
}

// Rank returns the serialization rank of an entity or of a bare type tag.
func Rank(v any) (int, error) {
	var typ string
	switch t := v.(type) {
	case domain.Entity:
		typ = t.Type()
	case string:
		typ = t
	default:
		return 0, &domain.UnrecognizedTypeError{Value: v}
	}
	r, ok := ranks[typ]
	if !ok {
		return 0, &domain.UnrecognizedTypeError{Value: typ}
	}
	return r, nil
}

// Types returns every ranked type tag, lowest rank first.
func Types() []string {
	types := make([]string, 0, len(ranks))
	for t := range ranks {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b string) int {
		return cmp.Or(cmp.Compare(ranks[a], ranks[b]), cmp.Compare(a, b))
	})
	return types
}

// Sort orders entities by rank in place. Entities of equal rank keep their relative order.
// Nothing is moved if any entity cannot be ranked.
func Sort(entities []domain.Entity) error {
	type ranked struct {
		e    domain.Entity
		rank int
	}
	items := make([]ranked, len(entities))
	for i, e := range entities {
		r, err := Rank(e)
		if err != nil {
			return err
		}
		items[i] = ranked{e, r}
	}
	slices.SortStableFunc(items, func(a, b ranked) int {
		return cmp.Compare(a.rank, b.rank)
	})
	for i := range items {
		entities[i] = items[i].e
	}
	return nil
}
