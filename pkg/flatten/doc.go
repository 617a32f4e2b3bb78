/*
Package flatten turns a nested entity graph into a deduplicated, dependency-ordered
listing of entities that refer to each other only through domain.Link values, and
replays such a listing back into live objects.

	listing, err := flatten.Flatten(root)
	...
	idx := index.New()
	entities, err := flatten.Rehydrate(listing, idx)

Flatten assigns identifiers to every reachable entity that has none. That is the only
change it makes to the caller's graph: the listing is built from rebuilt copies.
*/
package flatten
