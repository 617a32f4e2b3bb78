/*
Package domain contains the capability contracts and value types shared by every
lineage package.

It describes what the core needs from the provenance data model without knowing any
concrete entity kind. This package is kept pure and free of I/O, following the same
Hexagonal split as the rest of the module: concrete kinds live in pkg/model, wire
formats in pkg/codec, persistence behind pkg/ports.

# Key Types

  - Record: anything with an ordered structural attribute view that can be rebuilt from it.
  - Entity: a Record carrying identifiers (UIDs), a type tag and back-reference fields.
  - Link: the (scope, id) pair that stands in for an Entity in flattened output.
  - Tuple, Mapping, Attributes: containers walked structurally by the core.
  - Lookup: the read-only index used to turn Links back into entities.
*/
package domain
