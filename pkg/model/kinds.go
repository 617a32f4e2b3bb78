package model

import (
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/registry"
)

// Kinds returns a prototype of every entity kind and value record in this package.
func Kinds() []domain.Record {
	return []domain.Record{
		&ConditionTemplate{},
		&ParameterTemplate{},
		&PropertyTemplate{},
		&ProcessTemplate{},
		&MaterialTemplate{},
		&MeasurementTemplate{},
		&ProcessSpec{},
		&MaterialSpec{},
		&IngredientSpec{},
		&MeasurementSpec{},
		&ProcessRun{},
		&MaterialRun{},
		&IngredientRun{},
		&MeasurementRun{},
		&CategoricalBounds{},
		&RealBounds{},
		&NominalReal{},
		&NominalCategorical{},
		&Condition{},
		&Parameter{},
		&Property{},
		&FileLink{},
	}
}

// Register adds every kind of this package to r.
func Register(r *registry.Registry) {
	r.Register(Kinds()...)
}

// NewRegistry returns a registry preloaded with every kind of this package.
func NewRegistry() *registry.Registry {
	r := registry.NewRegistry()
	Register(r)
	return r
}
