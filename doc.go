/*
Package lineage flattens materials-provenance graphs into self-contained listings and
rebuilds them again.

A provenance graph is a web of templates, specs and runs for processes, materials,
ingredients and measurements that point at each other, often in both directions.
Flatten turns everything reachable from a root into a list in which every entity
appears once, every reference is a link by identifier, and every entity comes after
the entities it depends on. Rehydrate replays such a list into live objects.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/lineage"
		"github.com/aretw0/lineage/pkg/model"
	)

	func main() {
		spec := &model.ProcessSpec{Object: model.Object{Name: "bake"}}
		run := &model.ProcessRun{Object: model.Object{Name: "bake #1"}, Spec: spec}
		cake := &model.MaterialRun{Object: model.Object{Name: "cake"}}
		cake.SetProcess(run)

		listing, err := lineage.Flatten(cake)
		if err != nil {
			log.Fatal(err)
		}
		for _, e := range listing {
			fmt.Println(e.Type(), e.UIDs().Items())
		}

		idx, entities, err := lineage.Rehydrate(listing)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(idx.Len(), len(entities))
	}

# Packages

  - pkg/model: the entity kinds and value records.
  - pkg/walk, pkg/substitute, pkg/order: the graph primitives Flatten is built from.
  - pkg/codec: JSON, YAML and CBOR documents for entities and listings.
  - pkg/ports and the adapters: storage for listings.
*/
package lineage
