/*
Package walk visits the entities reachable from a root value.

Both walkers descend through []any, domain.Tuple, ordered mappings (keys, then values),
map[string]any (sorted keys) and the attribute view of any domain.Record. Each node that
has an identity is descended into at most once, which makes both walkers safe on cyclic
graphs.

  - Foreach applies a function to every distinct entity, root included.
  - FlatMap accumulates a list-valued function over the entities found as children,
    emitting children before their parents, and can skip back-reference fields.
*/
package walk
