package model

import "github.com/aretw0/lineage/pkg/domain"

// Type tags of the plain value records.
const (
	TypeCategoricalBounds  = "categorical_bounds"
	TypeRealBounds         = "real_bounds"
	TypeNominalReal        = "nominal_real"
	TypeNominalCategorical = "nominal_categorical"
	TypeCondition          = "condition"
	TypeParameter          = "parameter"
	TypeProperty           = "property"
	TypeFileLink           = "file_link"
)

type CategoricalBounds struct {
	Categories []string `mapstructure:"categories"`
}

func (b *CategoricalBounds) Type() string { return TypeCategoricalBounds }

func (b *CategoricalBounds) Attributes() *domain.Attributes {
	attrs := domain.NewAttributes()
	attrs.Set("categories", anyStrings(b.Categories))
	return attrs
}

func (b *CategoricalBounds) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[CategoricalBounds](attrs)
}

type RealBounds struct {
	Lower        float64 `mapstructure:"lower_bound"`
	Upper        float64 `mapstructure:"upper_bound"`
	DefaultUnits string  `mapstructure:"default_units"`
}

func (b *RealBounds) Type() string { return TypeRealBounds }

func (b *RealBounds) Attributes() *domain.Attributes {
	attrs := domain.NewAttributes()
	attrs.Set("lower_bound", b.Lower)
	attrs.Set("upper_bound", b.Upper)
	attrs.Set("default_units", b.DefaultUnits)
	return attrs
}

func (b *RealBounds) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[RealBounds](attrs)
}

// Contains reports whether x lies within the closed interval.
func (b *RealBounds) Contains(x float64) bool {
	return b.Lower <= x && x <= b.Upper
}

type NominalReal struct {
	Nominal float64 `mapstructure:"nominal"`
	Units   string  `mapstructure:"units"`
}

func (v *NominalReal) Type() string { return TypeNominalReal }

func (v *NominalReal) Attributes() *domain.Attributes {
	attrs := domain.NewAttributes()
	attrs.Set("nominal", v.Nominal)
	attrs.Set("units", v.Units)
	return attrs
}

func (v *NominalReal) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[NominalReal](attrs)
}

type NominalCategorical struct {
	Category string `mapstructure:"category"`
}

func (v *NominalCategorical) Type() string { return TypeNominalCategorical }

func (v *NominalCategorical) Attributes() *domain.Attributes {
	attrs := domain.NewAttributes()
	attrs.Set("category", v.Category)
	return attrs
}

func (v *NominalCategorical) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[NominalCategorical](attrs)
}

// Attribute is a named value, optionally tied to the template that bounds it.
type Attribute struct {
	Name     string `mapstructure:"name"`
	Template any    `mapstructure:"template"`
	Origin   string `mapstructure:"origin"`
	Value    any    `mapstructure:"value"`
	Notes    string `mapstructure:"notes"`
}

func (a *Attribute) attributes() *domain.Attributes {
	attrs := domain.NewAttributes()
	attrs.Set("name", a.Name)
	attrs.Set("template", a.Template)
	attrs.Set("origin", a.Origin)
	attrs.Set("value", a.Value)
	attrs.Set("notes", a.Notes)
	return attrs
}

type Condition struct {
	Attribute `mapstructure:",squash"`
}

func (c *Condition) Type() string                   { return TypeCondition }
func (c *Condition) Attributes() *domain.Attributes { return c.attributes() }
func (c *Condition) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[Condition](attrs)
}

type Parameter struct {
	Attribute `mapstructure:",squash"`
}

func (p *Parameter) Type() string                   { return TypeParameter }
func (p *Parameter) Attributes() *domain.Attributes { return p.attributes() }
func (p *Parameter) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[Parameter](attrs)
}

type Property struct {
	Attribute `mapstructure:",squash"`
}

func (p *Property) Type() string                   { return TypeProperty }
func (p *Property) Attributes() *domain.Attributes { return p.attributes() }
func (p *Property) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[Property](attrs)
}

type FileLink struct {
	Filename string `mapstructure:"filename"`
	URL      string `mapstructure:"url"`
}

func (f *FileLink) Type() string { return TypeFileLink }

func (f *FileLink) Attributes() *domain.Attributes {
	attrs := domain.NewAttributes()
	attrs.Set("filename", f.Filename)
	attrs.Set("url", f.URL)
	return attrs
}

func (f *FileLink) Build(attrs *domain.Attributes) (domain.Record, error) {
	return build[FileLink](attrs)
}
