// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textproto splits a loosely structured textproto document into
// top-level entity and relationship blocks and mines typed fields out of
// each block with independent line-anchored patterns.
//
// The format is not parsed as a grammar. Boundaries are found by keyword at
// the start of a line, and every field pattern runs against the whole block,
// so nesting depth and field order do not matter. A same-named field inside
// an unrelated sub-message can therefore be picked up; callers accept that.
package textproto

import "github.com/pdiddy/topology-engine/pkg/types"

// Parser turns raw text into blocks and blocks into fields. FlatParser is
// the only implementation; callers depend on the interface so that a real
// recursive-descent parser can replace it.
type Parser interface {
	// Segment splits text into blocks in input order.
	Segment(text string) []types.Block

	// ExtractFields returns every field found in the block's text.
	ExtractFields(block types.Block) Fields
}

// FlatParser implements Parser with line-anchored regular expressions.
type FlatParser struct{}

// Segment implements Parser.
func (FlatParser) Segment(text string) []types.Block {
	return Segment(text)
}

// ExtractFields implements Parser.
func (FlatParser) ExtractFields(block types.Block) Fields {
	return ExtractFields(block.Text())
}

// Discard records a block that was dropped because a required field was
// missing.
type Discard struct {
	Kind   types.BlockKind
	Offset int
	Reason string
}

// Entity extracts an entity from an entity block. It reports false when the
// block has no id, in which case the block produces no entity at all.
func Entity(p Parser, block types.Block) (types.Entity, bool) {
	f := p.ExtractFields(block)
	id, ok := f[FieldID]
	if !ok {
		return types.Entity{}, false
	}
	return types.Entity{
		ID:   id,
		Name: f.Get(FieldName, id),
		Type: f.Get(FieldVariant, ""),
	}, true
}

// Relationship extracts a relationship from a relationship block. It reports
// false when the block has no kind. Missing endpoints are returned empty.
func Relationship(p Parser, block types.Block) (types.Relationship, bool) {
	f := p.ExtractFields(block)
	kind, ok := f[FieldKind]
	if !ok {
		return types.Relationship{}, false
	}
	return types.Relationship{Kind: kind, A: f[FieldA], Z: f[FieldZ]}, true
}
