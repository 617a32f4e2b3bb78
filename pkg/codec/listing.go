package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/index"
	"github.com/aretw0/lineage/pkg/registry"
	"github.com/aretw0/lineage/pkg/substitute"
	"github.com/aretw0/lineage/pkg/walk"
	"github.com/zeebo/blake3"
)

// MarshalListing writes a listing as a sequence of entity documents.
func MarshalListing(listing []domain.Entity, f Format) ([]byte, error) {
	docs := make([]any, len(listing))
	for i, e := range listing {
		doc, err := Encode(e)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", e.Type(), err)
		}
		docs[i] = doc
	}
	return MarshalDocument(docs, f)
}

// UnmarshalListing reads a listing written by MarshalListing.
func UnmarshalListing(data []byte, f Format, reg *registry.Registry) ([]domain.Entity, error) {
	doc, err := ParseDocument(data, f)
	if err != nil {
		return nil, err
	}
	seq, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("listing must be a sequence, got %T", doc)
	}
	listing := make([]domain.Entity, 0, len(seq))
	for i, item := range seq {
		v, err := Decode(item, reg)
		if err != nil {
			return nil, fmt.Errorf("listing[%d]: %w", i, err)
		}
		e, ok := v.(domain.Entity)
		if !ok {
			return nil, fmt.Errorf("listing[%d]: expected an entity, got %T", i, v)
		}
		listing = append(listing, e)
	}
	return listing, nil
}

// Load decodes a nested document and resolves the links inside it against the
// entities the document itself defines.
func Load(doc any, reg *registry.Registry) (any, error) {
	decoded, err := Decode(doc, reg)
	if err != nil {
		return nil, err
	}
	idx := index.New()
	err = walk.Foreach(decoded, func(e domain.Entity) error {
		idx.Add(e)
		return nil
	}, true)
	if err != nil {
		return nil, err
	}
	return substitute.Objects(decoded, idx)
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
