package model

import (
	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/order"
)

// Object is the shared shape of specs and runs.
type Object struct {
	Base      `mapstructure:",squash"`
	Name      string `mapstructure:"name"`
	Notes     string `mapstructure:"notes"`
	FileLinks []any  `mapstructure:"file_links"`
}

func (o *Object) attributes() *domain.Attributes {
	attrs := o.Base.attributes()
	attrs.Set("name", o.Name)
	attrs.Set("notes", o.Notes)
	attrs.Set("file_links", o.FileLinks)
	return attrs
}

// ProcessSpec is the intended procedure that yields a material spec.
type ProcessSpec struct {
	Object         `mapstructure:",squash"`
	Template       any   `mapstructure:"template"`
	Parameters     []any `mapstructure:"parameters"`
	Conditions     []any `mapstructure:"conditions"`
	OutputMaterial any   `mapstructure:"output_material"`
	Ingredients    []any `mapstructure:"ingredients"`
}

func (s *ProcessSpec) Type() string   { return order.ProcessSpec }
func (s *ProcessSpec) Skip() []string { return []string{"output_material"} }

func (s *ProcessSpec) Attributes() *domain.Attributes {
	attrs := s.attributes()
	attrs.Set("template", s.Template)
	attrs.Set("parameters", s.Parameters)
	attrs.Set("conditions", s.Conditions)
	attrs.Set("output_material", s.OutputMaterial)
	attrs.Set("ingredients", s.Ingredients)
	return attrs
}

func (s *ProcessSpec) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[ProcessSpec](attrs)
}

// MaterialSpec is the intended outcome of a process spec.
type MaterialSpec struct {
	Object     `mapstructure:",squash"`
	Process    any   `mapstructure:"process"`
	Template   any   `mapstructure:"template"`
	Properties []any `mapstructure:"properties"`
}

func (s *MaterialSpec) Type() string { return order.MaterialSpec }

func (s *MaterialSpec) Attributes() *domain.Attributes {
	attrs := s.attributes()
	attrs.Set("process", s.Process)
	attrs.Set("template", s.Template)
	attrs.Set("properties", s.Properties)
	return attrs
}

func (s *MaterialSpec) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[MaterialSpec](attrs)
}

// SetProcess makes p the process producing s and s the output material of p.
func (s *MaterialSpec) SetProcess(p *ProcessSpec) {
	if old, ok := s.Process.(*ProcessSpec); ok && old != p && identity.Same(old.OutputMaterial, s) {
		old.OutputMaterial = nil
	}
	if p == nil {
		s.Process = nil
		return
	}
	if prev, ok := p.OutputMaterial.(*MaterialSpec); ok && prev != s && identity.Same(prev.Process, p) {
		prev.Process = nil
	}
	s.Process = p
	p.OutputMaterial = s
}

// IngredientSpec is the intended use of a material spec in a process spec.
type IngredientSpec struct {
	Object           `mapstructure:",squash"`
	Material         any      `mapstructure:"material"`
	Process          any      `mapstructure:"process"`
	Labels           []string `mapstructure:"labels"`
	MassFraction     any      `mapstructure:"mass_fraction"`
	VolumeFraction   any      `mapstructure:"volume_fraction"`
	AbsoluteQuantity any      `mapstructure:"absolute_quantity"`
}

func (s *IngredientSpec) Type() string { return order.IngredientSpec }

func (s *IngredientSpec) Attributes() *domain.Attributes {
	attrs := s.attributes()
	attrs.Set("material", s.Material)
	attrs.Set("process", s.Process)
	attrs.Set("labels", anyStrings(s.Labels))
	attrs.Set("mass_fraction", s.MassFraction)
	attrs.Set("volume_fraction", s.VolumeFraction)
	attrs.Set("absolute_quantity", s.AbsoluteQuantity)
	return attrs
}

func (s *IngredientSpec) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[IngredientSpec](attrs)
}

// SetProcess moves s into the ingredients of p.
func (s *IngredientSpec) SetProcess(p *ProcessSpec) {
	if old, ok := s.Process.(*ProcessSpec); ok {
		old.Ingredients = removeRef(old.Ingredients, s)
	}
	if p == nil {
		s.Process = nil
		return
	}
	s.Process = p
	p.Ingredients = addRef(p.Ingredients, s)
}

// MeasurementSpec is the intended characterization of a material.
type MeasurementSpec struct {
	Object     `mapstructure:",squash"`
	Template   any   `mapstructure:"template"`
	Parameters []any `mapstructure:"parameters"`
	Conditions []any `mapstructure:"conditions"`
}

func (s *MeasurementSpec) Type() string { return order.MeasurementSpec }

func (s *MeasurementSpec) Attributes() *domain.Attributes {
	attrs := s.attributes()
	attrs.Set("template", s.Template)
	attrs.Set("parameters", s.Parameters)
	attrs.Set("conditions", s.Conditions)
	return attrs
}

func (s *MeasurementSpec) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[MeasurementSpec](attrs)
}

// ProcessRun is a process as it was actually performed.
type ProcessRun struct {
	Object         `mapstructure:",squash"`
	Spec           any   `mapstructure:"spec"`
	Conditions     []any `mapstructure:"conditions"`
	Parameters     []any `mapstructure:"parameters"`
	OutputMaterial any   `mapstructure:"output_material"`
	Ingredients    []any `mapstructure:"ingredients"`
}

func (r *ProcessRun) Type() string   { return order.ProcessRun }
func (r *ProcessRun) Skip() []string { return []string{"output_material"} }

func (r *ProcessRun) Attributes() *domain.Attributes {
	attrs := r.attributes()
	attrs.Set("spec", r.Spec)
	attrs.Set("conditions", r.Conditions)
	attrs.Set("parameters", r.Parameters)
	attrs.Set("output_material", r.OutputMaterial)
	attrs.Set("ingredients", r.Ingredients)
	return attrs
}

func (r *ProcessRun) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[ProcessRun](attrs)
}

// MaterialRun is the material a process run actually produced.
type MaterialRun struct {
	Object       `mapstructure:",squash"`
	Process      any    `mapstructure:"process"`
	Spec         any    `mapstructure:"spec"`
	SampleType   string `mapstructure:"sample_type"`
	Measurements []any  `mapstructure:"measurements"`
}

func (r *MaterialRun) Type() string   { return order.MaterialRun }
func (r *MaterialRun) Skip() []string { return []string{"measurements"} }

func (r *MaterialRun) Attributes() *domain.Attributes {
	attrs := r.attributes()
	attrs.Set("process", r.Process)
	attrs.Set("spec", r.Spec)
	attrs.Set("sample_type", r.SampleType)
	attrs.Set("measurements", r.Measurements)
	return attrs
}

func (r *MaterialRun) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[MaterialRun](attrs)
}

// SetProcess makes p the run producing r and r the output material of p.
func (r *MaterialRun) SetProcess(p *ProcessRun) {
	if old, ok := r.Process.(*ProcessRun); ok && old != p && identity.Same(old.OutputMaterial, r) {
		old.OutputMaterial = nil
	}
	if p == nil {
		r.Process = nil
		return
	}
	if prev, ok := p.OutputMaterial.(*MaterialRun); ok && prev != r && identity.Same(prev.Process, p) {
		prev.Process = nil
	}
	r.Process = p
	p.OutputMaterial = r
}

// IngredientRun is the actual use of a material run in a process run.
type IngredientRun struct {
	Object           `mapstructure:",squash"`
	Material         any      `mapstructure:"material"`
	Process          any      `mapstructure:"process"`
	Spec             any      `mapstructure:"spec"`
	Labels           []string `mapstructure:"labels"`
	MassFraction     any      `mapstructure:"mass_fraction"`
	VolumeFraction   any      `mapstructure:"volume_fraction"`
	AbsoluteQuantity any      `mapstructure:"absolute_quantity"`
}

func (r *IngredientRun) Type() string { return order.IngredientRun }

func (r *IngredientRun) Attributes() *domain.Attributes {
	attrs := r.attributes()
	attrs.Set("material", r.Material)
	attrs.Set("process", r.Process)
	attrs.Set("spec", r.Spec)
	attrs.Set("labels", anyStrings(r.Labels))
	attrs.Set("mass_fraction", r.MassFraction)
	attrs.Set("volume_fraction", r.VolumeFraction)
	attrs.Set("absolute_quantity", r.AbsoluteQuantity)
	return attrs
}

func (r *IngredientRun) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[IngredientRun](attrs)
}

// SetProcess moves r into the ingredients of p.
func (r *IngredientRun) SetProcess(p *ProcessRun) {
	if old, ok := r.Process.(*ProcessRun); ok {
		old.Ingredients = removeRef(old.Ingredients, r)
	}
	if p == nil {
		r.Process = nil
		return
	}
	r.Process = p
	p.Ingredients = addRef(p.Ingredients, r)
}

// MeasurementRun is a characterization actually performed on a material run.
type MeasurementRun struct {
	Object     `mapstructure:",squash"`
	Material   any   `mapstructure:"material"`
	Spec       any   `mapstructure:"spec"`
	Properties []any `mapstructure:"properties"`
	Conditions []any `mapstructure:"conditions"`
	Parameters []any `mapstructure:"parameters"`
}

func (r *MeasurementRun) Type() string { return order.MeasurementRun }

func (r *MeasurementRun) Attributes() *domain.Attributes {
	attrs := r.attributes()
	attrs.Set("material", r.Material)
	attrs.Set("spec", r.Spec)
	attrs.Set("properties", r.Properties)
	attrs.Set("conditions", r.Conditions)
	attrs.Set("parameters", r.Parameters)
	return attrs
}

func (r *MeasurementRun) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[MeasurementRun](attrs)
}

// SetMaterial moves r into the measurements of m.
func (r *MeasurementRun) SetMaterial(m *MaterialRun) {
	if old, ok := r.Material.(*MaterialRun); ok {
		old.Measurements = removeRef(old.Measurements, r)
	}
	if m == nil {
		r.Material = nil
		return
	}
	r.Material = m
	m.Measurements = addRef(m.Measurements, r)
}
