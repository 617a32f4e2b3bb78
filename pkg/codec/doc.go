/*
Package codec converts entities, links and listings to and from wire documents.

A document is a tree of *domain.Attributes (objects, key order kept), []any and
scalars. Records appear as objects with a "type" tag followed by their attributes;
links appear as {"type": "link_by_uid", "scope": ..., "id": ...}. Encode builds a
document, Decode rebuilds records from one through a registry.Registry.

Documents are written as JSON, YAML or CBOR. JSON and YAML keep object key order.
CBOR uses core deterministic encoding, so its maps are written with sorted keys and
identical data always produces identical bytes.
*/
package codec
