/*
Package ports defines the driven ports (interfaces) that storage backends implement.

  - ListingStore: persists flattened listings by key (memory, file and Redis adapters).

Adapters verify themselves against the shared suite in pkg/ports/tests.
*/
package ports
