// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package forest projects containment edges onto a deterministic,
// multi-root forest of ForestNodes.
//
// Roots are the containment parents that are never children, plus every
// declared entity that takes part in no containment edge. An id that is a
// child anywhere is never a root, so a component made only of a cycle has
// no root and does not appear in the forest at all. Cycles reachable from a
// root are reported as a *CycleError instead of recursing forever.
package forest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/topology-engine/pkg/types"
)

// ErrCycle is matched by every *CycleError.
var ErrCycle = errors.New("containment cycle")

// CycleError reports a containment cycle met while descending from a root.
// Path starts and ends with the same id.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCycle, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// Forest is the result of Build.
type Forest struct {
	// Roots are ordered by ascending id.
	Roots []*types.ForestNode

	// Omitted lists declared entity ids that appear nowhere in Roots,
	// in ascending order. Only rootless cycles produce them.
	Omitted []string
}

// Count returns the number of nodes in the forest, counting an id once per
// position it occupies.
func (f *Forest) Count() int {
	n := 0
	var walk func(nodes []*types.ForestNode)
	walk = func(nodes []*types.ForestNode) {
		for _, node := range nodes {
			n++
			walk(node.Children)
		}
	}
	walk(f.Roots)
	return n
}

// builder is the per-invocation state of Build.
type builder struct {
	entities map[string]types.Entity
	children map[string][]string
	onPath   map[string]bool
	path     []string
	placed   map[string]bool
}

// Build constructs the forest for entities and containment edges. Ids that
// are referenced by an edge but never declared get placeholder nodes named
// after the id with an empty type. Edges with an empty endpoint are ignored.
func Build(entities map[string]types.Entity, edges []types.Edge) (*Forest, error) {
	b := &builder{
		entities: entities,
		children: make(map[string][]string),
		onPath:   make(map[string]bool),
		placed:   make(map[string]bool),
	}
	for _, e := range edges {
		if e.Parent == "" || e.Child == "" {
			continue
		}
		b.children[e.Parent] = append(b.children[e.Parent], e.Child)
	}
	for _, c := range b.children {
		sort.Strings(c)
	}

	f := &Forest{Roots: []*types.ForestNode{}}
	for _, id := range Roots(entities, edges) {
		node, err := b.node(id)
		if err != nil {
			return nil, err
		}
		f.Roots = append(f.Roots, node)
	}

	for id := range entities {
		if !b.placed[id] {
			f.Omitted = append(f.Omitted, id)
		}
	}
	sort.Strings(f.Omitted)
	return f, nil
}

func (b *builder) node(id string) (*types.ForestNode, error) {
	if b.onPath[id] {
		return nil, &CycleError{Path: b.cyclePath(id)}
	}
	b.onPath[id] = true
	b.path = append(b.path, id)
	defer func() {
		delete(b.onPath, id)
		b.path = b.path[:len(b.path)-1]
	}()

	b.placed[id] = true
	info, ok := b.entities[id]
	if !ok {
		info = types.Entity{ID: id, Name: id}
	}

	node := &types.ForestNode{
		ID:       id,
		Name:     info.Name,
		Type:     info.Type,
		Children: make([]*types.ForestNode, 0, len(b.children[id])),
	}
	for _, c := range b.children[id] {
		child, err := b.node(c)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// cyclePath returns the current path from the first visit of id, closed
// with id again.
func (b *builder) cyclePath(id string) []string {
	for i, p := range b.path {
		if p == id {
			cycle := append([]string(nil), b.path[i:]...)
			return append(cycle, id)
		}
	}
	return []string{id, id}
}

// Roots returns the root ids for entities and edges in ascending order:
// parents that are never children, plus declared entities that are neither
// parent nor child.
func Roots(entities map[string]types.Entity, edges []types.Edge) []string {
	parents := make(map[string]bool)
	referenced := make(map[string]bool)
	for _, e := range edges {
		if e.Parent == "" || e.Child == "" {
			continue
		}
		parents[e.Parent] = true
		referenced[e.Child] = true
	}

	var roots []string
	for id := range parents {
		if !referenced[id] {
			roots = append(roots, id)
		}
	}
	for id := range entities {
		if !parents[id] && !referenced[id] {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}
