// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// BlockKind classifies a top-level block by its leading keyword.
type BlockKind string

const (
	BlockEntity       BlockKind = "entity"
	BlockRelationship BlockKind = "relationship"
)

// Block is a contiguous span of the input text that starts at a detected
// entity or relationship boundary and runs until the next boundary or the
// end of input.
type Block struct {
	// Kind is derived from the keyword the block begins with.
	Kind BlockKind `json:"kind" yaml:"kind"`

	// Offset is the byte offset of Raw within the source text.
	Offset int `json:"offset" yaml:"offset"`

	// Raw is the untrimmed span, including any trailing blank lines or
	// comments up to the next boundary.
	Raw string `json:"raw" yaml:"raw"`
}

// Text returns the block with leading and trailing whitespace removed.
// Downstream consumers see only this form.
func (b Block) Text() string {
	return strings.TrimSpace(b.Raw)
}

// Entity is a named node in the source graph.
type Entity struct {
	// ID is the unique key of the entity.
	ID string `json:"id" yaml:"id"`

	// Name is the display name; it falls back to ID when the block has none.
	Name string `json:"name" yaml:"name"`

	// Type is the tag of the first nested ek_* variant in the block, with the
	// prefix removed (e.g. "port" for ek_port). Empty when no variant exists.
	Type string `json:"type" yaml:"type"`
}

// Relationship is a typed, directed edge between two entity ids. Endpoints
// are not required to resolve to declared entities.
type Relationship struct {
	Kind string `json:"kind" yaml:"kind"`
	A    string `json:"a" yaml:"a"`
	Z    string `json:"z" yaml:"z"`
}

// Edge is a parent/child pair taken from a containment relationship.
type Edge struct {
	Parent string `json:"parent" yaml:"parent"`
	Child  string `json:"child" yaml:"child"`
}

// ForestNode is one node of the containment forest handed to the
// presentation layer. Children are ordered by ascending id.
type ForestNode struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Type     string        `json:"type" yaml:"type"`
	Children []*ForestNode `json:"children" yaml:"children"`
}
