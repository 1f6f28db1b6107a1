// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproto

import (
	"regexp"
	"strings"

	"github.com/pdiddy/topology-engine/pkg/types"
)

// boundaryPattern matches the start of a line that opens a top-level block:
// the keyword, an optional colon, and an opening brace, which may sit on a
// following line. The match begins at the line start so leading indentation
// stays with the block.
var boundaryPattern = regexp.MustCompile(`(?m)^[ \t]*(entity|relationship)\s*:?\s*\{`)

// Segment cuts text into consecutive blocks, one per detected boundary. Each
// block runs until the next boundary or the end of input. Text before the
// first boundary belongs to no block and is dropped. Nested braces are not
// counted; a block's inner text may contain any amount of nesting.
func Segment(text string) []types.Block {
	matches := boundaryPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	blocks := make([]types.Block, 0, len(matches))
	for i, m := range matches {
		start := m[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		raw := text[start:end]
		blocks = append(blocks, types.Block{
			Kind:   classify(raw),
			Offset: start,
			Raw:    raw,
		})
	}
	return blocks
}

// Preamble returns the text preceding the first block, which Segment drops.
func Preamble(text string, blocks []types.Block) string {
	if len(blocks) == 0 {
		return text
	}
	return text[:blocks[0].Offset]
}

// classify looks only at the keyword the trimmed span begins with.
func classify(raw string) types.BlockKind {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, string(types.BlockRelationship)):
		return types.BlockRelationship
	case strings.HasPrefix(trimmed, string(types.BlockEntity)):
		return types.BlockEntity
	}
	return ""
}
