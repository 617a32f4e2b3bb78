package model

import (
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/order"
)

// AttributeTemplate is the shared shape of condition, parameter and property templates.
type AttributeTemplate struct {
	Base        `mapstructure:",squash"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Bounds      any    `mapstructure:"bounds"`
}

func (t *AttributeTemplate) attributes() *domain.Attributes {
	attrs := t.Base.attributes()
	attrs.Set("name", t.Name)
	attrs.Set("description", t.Description)
	attrs.Set("bounds", t.Bounds)
	return attrs
}

type ConditionTemplate struct {
	AttributeTemplate `mapstructure:",squash"`
}

func (t *ConditionTemplate) Type() string                   { return order.ConditionTemplate }
func (t *ConditionTemplate) Attributes() *domain.Attributes { return t.attributes() }
func (t *ConditionTemplate) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[ConditionTemplate](attrs)
}

// Condition makes a condition value that points back at this template.
func (t *ConditionTemplate) Condition(value any) *Condition {
	return &Condition{Attribute{Name: t.Name, Template: t, Value: value}}
}

type ParameterTemplate struct {
	AttributeTemplate `mapstructure:",squash"`
}

func (t *ParameterTemplate) Type() string                   { return order.ParameterTemplate }
func (t *ParameterTemplate) Attributes() *domain.Attributes { return t.attributes() }
func (t *ParameterTemplate) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[ParameterTemplate](attrs)
}

// Parameter makes a parameter value that points back at this template.
func (t *ParameterTemplate) Parameter(value any) *Parameter {
	return &Parameter{Attribute{Name: t.Name, Template: t, Value: value}}
}

type PropertyTemplate struct {
	AttributeTemplate `mapstructure:",squash"`
}

func (t *PropertyTemplate) Type() string                   { return order.PropertyTemplate }
func (t *PropertyTemplate) Attributes() *domain.Attributes { return t.attributes() }
func (t *PropertyTemplate) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[PropertyTemplate](attrs)
}

// Property makes a property value that points back at this template.
func (t *PropertyTemplate) Property(value any) *Property {
	return &Property{Attribute{Name: t.Name, Template: t, Value: value}}
}

// ProcessTemplate constrains the conditions and parameters of a process. Conditions
// and Parameters hold either bare attribute templates or Tuple{template, bounds} pairs
// narrowing the template's own bounds.
type ProcessTemplate struct {
	Base          `mapstructure:",squash"`
	Name          string   `mapstructure:"name"`
	Description   string   `mapstructure:"description"`
	Conditions    []any    `mapstructure:"conditions"`
	Parameters    []any    `mapstructure:"parameters"`
	AllowedLabels []string `mapstructure:"allowed_labels"`
	AllowedNames  []string `mapstructure:"allowed_names"`
}

func (t *ProcessTemplate) Type() string { return order.ProcessTemplate }

func (t *ProcessTemplate) Attributes() *domain.Attributes {
	attrs := t.Base.attributes()
	attrs.Set("name", t.Name)
	attrs.Set("description", t.Description)
	attrs.Set("conditions", t.Conditions)
	attrs.Set("parameters", t.Parameters)
	attrs.Set("allowed_labels", anyStrings(t.AllowedLabels))
	attrs.Set("allowed_names", anyStrings(t.AllowedNames))
	return attrs
}

func (t *ProcessTemplate) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[ProcessTemplate](attrs)
}

type MaterialTemplate struct {
	Base        `mapstructure:",squash"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Properties  []any  `mapstructure:"properties"`
}

func (t *MaterialTemplate) Type() string { return order.MaterialTemplate }

func (t *MaterialTemplate) Attributes() *domain.Attributes {
	attrs := t.Base.attributes()
	attrs.Set("name", t.Name)
	attrs.Set("description", t.Description)
	attrs.Set("properties", t.Properties)
	return attrs
}

func (t *MaterialTemplate) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[MaterialTemplate](attrs)
}

type MeasurementTemplate struct {
	Base        `mapstructure:",squash"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Properties  []any  `mapstructure:"properties"`
	Conditions  []any  `mapstructure:"conditions"`
	Parameters  []any  `mapstructure:"parameters"`
}

func (t *MeasurementTemplate) Type() string { return order.MeasurementTemplate }

func (t *MeasurementTemplate) Attributes() *domain.Attributes {
	attrs := t.Base.attributes()
	attrs.Set("name", t.Name)
	attrs.Set("description", t.Description)
	attrs.Set("properties", t.Properties)
	attrs.Set("conditions", t.Conditions)
	attrs.Set("parameters", t.Parameters)
	return attrs
}

func (t *MeasurementTemplate) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[MeasurementTemplate](attrs)
}
