// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter reduces a textproto document to the relationships of
// chosen kinds and the entities those relationships reference.
package filter

import (
	"io"
	"strings"

	"github.com/pdiddy/topology-engine/internal/textproto"
	"github.com/pdiddy/topology-engine/pkg/types"
)

// Result holds the blocks kept by Select, each list in original order.
type Result struct {
	Entities      []types.Block
	Relationships []types.Block

	// Discarded lists relationship blocks skipped for lack of a kind.
	Discarded []textproto.Discard
}

// Blocks returns the kept entities followed by the kept relationships.
func (r Result) Blocks() []types.Block {
	out := make([]types.Block, 0, len(r.Entities)+len(r.Relationships))
	out = append(out, r.Entities...)
	return append(out, r.Relationships...)
}

// WriteTo emits the reduced document: every kept block, trimmed, followed
// by a blank line.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, b := range r.Blocks() {
		n, err := io.WriteString(w, b.Text()+"\n\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Select keeps relationship blocks whose kind is in kinds, then keeps entity
// blocks whose id is an endpoint of a kept relationship. Endpoints that no
// entity declares are simply absent from the result.
func Select(p textproto.Parser, blocks []types.Block, kinds []string) Result {
	keep := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		keep[k] = true
	}

	var result Result
	referenced := make(map[string]bool)

	// Pass 1: relationships of the requested kinds and their endpoints.
	for _, b := range blocks {
		if b.Kind != types.BlockRelationship {
			continue
		}
		rel, ok := textproto.Relationship(p, b)
		if !ok {
			result.Discarded = append(result.Discarded, textproto.Discard{Kind: b.Kind, Offset: b.Offset, Reason: "missing kind"})
			continue
		}
		if !keep[rel.Kind] {
			continue
		}
		result.Relationships = append(result.Relationships, b)
		if rel.A != "" {
			referenced[rel.A] = true
		}
		if rel.Z != "" {
			referenced[rel.Z] = true
		}
	}

	// Pass 2: entities referenced by a kept relationship.
	for _, b := range blocks {
		if b.Kind != types.BlockEntity {
			continue
		}
		e, ok := textproto.Entity(p, b)
		if ok && referenced[e.ID] {
			result.Entities = append(result.Entities, b)
		}
	}

	return result
}

// Document segments text with p and filters it by kinds.
func Document(p textproto.Parser, text string, kinds []string) Result {
	return Select(p, p.Segment(text), kinds)
}

// ParseKinds splits a comma-separated kind list, trimming whitespace and
// dropping empty entries.
func ParseKinds(list string) []string {
	var kinds []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
