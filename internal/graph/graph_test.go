// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/topology-engine/internal/textproto"
	"github.com/pdiddy/topology-engine/pkg/types"
)

const doc = `entity: {
  id: "e1"
  name: "First"
  ek_chassis: {}
}
entity: {
  id: "e2"
}
entity: {
  name: "no id here"
}
entity: {
  id: "e1"
  name: "First, again"
  ek_rack: {}
}
relationship: {
  kind: RK_CONTAINS
  a: "e1"
  z: "e2"
}
relationship: {
  a: "e1"
  z: "e2"
}
relationship: {
  kind: RK_CONTAINS
  a: "e2"
}
relationship: {
  kind: RK_CONTROLS
  a: "e2"
  z: "e9"
}
`

func TestParse(t *testing.T) {
	g := Parse(textproto.FlatParser{}, doc)

	require.Len(t, g.Entities, 2)
	assert.Equal(t, types.Entity{ID: "e2", Name: "e2"}, g.Entities["e2"])
	assert.Len(t, g.Relationships, 3)
	assert.Equal(t, []string{"e1", "e2"}, g.EntityIDs())
	assert.Equal(t, map[string]int{"RK_CONTAINS": 2, "RK_CONTROLS": 1}, g.Kinds())
}

func TestParseLastDeclarationWins(t *testing.T) {
	g := Parse(textproto.FlatParser{}, doc)

	assert.Equal(t, types.Entity{ID: "e1", Name: "First, again", Type: "rack"}, g.Entities["e1"])
	assert.Equal(t, []string{"e1"}, g.Redeclared)
}

func TestParseDiscards(t *testing.T) {
	g := Parse(textproto.FlatParser{}, doc)

	require.Len(t, g.Discarded, 2)
	assert.Equal(t, types.BlockEntity, g.Discarded[0].Kind)
	assert.Equal(t, "missing id", g.Discarded[0].Reason)
	assert.Equal(t, types.BlockRelationship, g.Discarded[1].Kind)
	assert.Equal(t, "missing kind", g.Discarded[1].Reason)
	assert.Less(t, g.Discarded[0].Offset, g.Discarded[1].Offset)
}

func TestEdges(t *testing.T) {
	g := Parse(textproto.FlatParser{}, doc)

	assert.Equal(t, []types.Edge{{Parent: "e1", Child: "e2"}}, g.Edges("RK_CONTAINS"))
	assert.Equal(t, []types.Edge{{Parent: "e2", Child: "e9"}}, g.Edges("RK_CONTROLS"))
	assert.Empty(t, g.Edges("RK_UNKNOWN"))
}

func TestParseEmpty(t *testing.T) {
	g := Parse(textproto.FlatParser{}, "")
	assert.Empty(t, g.Entities)
	assert.Empty(t, g.Relationships)
	assert.Empty(t, g.Discarded)
}
