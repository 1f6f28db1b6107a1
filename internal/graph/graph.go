// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph assembles entities and relationships from a segmented
// textproto document.
package graph

import (
	"sort"

	"github.com/pdiddy/topology-engine/internal/textproto"
	"github.com/pdiddy/topology-engine/pkg/types"
)

// Graph is the entity map and relationship list of one document. It is
// rebuilt from text on every run and owned by the caller.
type Graph struct {
	// Entities is keyed by id. When several blocks declare the same id the
	// last one in document order wins.
	Entities map[string]types.Entity

	// Relationships holds every relationship block with a kind, in
	// document order.
	Relationships []types.Relationship

	// Discarded lists blocks dropped for lack of a required field.
	Discarded []textproto.Discard

	// Redeclared lists ids declared by more than one entity block.
	Redeclared []string
}

// Parse segments text with p and builds a Graph from the resulting blocks.
func Parse(p textproto.Parser, text string) *Graph {
	return FromBlocks(p, p.Segment(text))
}

// FromBlocks builds a Graph from blocks already produced by a Parser.
func FromBlocks(p textproto.Parser, blocks []types.Block) *Graph {
	g := &Graph{Entities: make(map[string]types.Entity)}
	redeclared := make(map[string]bool)

	for _, b := range blocks {
		switch b.Kind {
		case types.BlockEntity:
			e, ok := textproto.Entity(p, b)
			if !ok {
				g.Discarded = append(g.Discarded, textproto.Discard{Kind: b.Kind, Offset: b.Offset, Reason: "missing id"})
				continue
			}
			if _, dup := g.Entities[e.ID]; dup && !redeclared[e.ID] {
				redeclared[e.ID] = true
				g.Redeclared = append(g.Redeclared, e.ID)
			}
			g.Entities[e.ID] = e
		case types.BlockRelationship:
			r, ok := textproto.Relationship(p, b)
			if !ok {
				g.Discarded = append(g.Discarded, textproto.Discard{Kind: b.Kind, Offset: b.Offset, Reason: "missing kind"})
				continue
			}
			g.Relationships = append(g.Relationships, r)
		}
	}
	return g
}

// Edges returns the relationships of the given kind as parent/child edges.
// Relationships lacking either endpoint carry no edge and are skipped.
func (g *Graph) Edges(kind string) []types.Edge {
	var edges []types.Edge
	for _, r := range g.Relationships {
		if r.Kind != kind || r.A == "" || r.Z == "" {
			continue
		}
		edges = append(edges, types.Edge{Parent: r.A, Child: r.Z})
	}
	return edges
}

// EntityIDs returns the declared entity ids in ascending order.
func (g *Graph) EntityIDs() []string {
	ids := make([]string, 0, len(g.Entities))
	for id := range g.Entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Kinds returns the distinct relationship kinds with their counts.
func (g *Graph) Kinds() map[string]int {
	kinds := make(map[string]int)
	for _, r := range g.Relationships {
		kinds[r.Kind]++
	}
	return kinds
}
