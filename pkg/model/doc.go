/*
Package model provides the provenance entity kinds: templates, specs and runs of
processes, materials, ingredients and measurements, plus the plain value records
(bounds, values, attributes, file links) they carry.

Reference fields hold either a live pointer to the referenced kind or a domain.Link
standing in for it. Setters keep the two sides of every bidirectional relationship in
step: giving a MaterialSpec a process records it as that process's output material,
giving an IngredientRun a process adds it to the process's ingredients, and so on.
Build never performs those side effects, so rebuilding a record never touches another.

# Back-references

The fields listed by Skip are the inverse side of a relationship and are not followed
when walking unidirectionally:

  - process_spec.output_material
  - process_run.output_material
  - material_run.measurements
*/
package model
