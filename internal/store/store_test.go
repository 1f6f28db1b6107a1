// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/topology-engine/internal/graph"
	"github.com/pdiddy/topology-engine/internal/textproto"
	"github.com/pdiddy/topology-engine/pkg/types"
)

const doc = `entity: {
  id: "site-1"
  name: "Dallas"
  ek_site: {}
}
entity: {
  id: "rack-1"
  name: "Rack A1"
  ek_rack: {}
}
entity: {
  id: "port-1"
  name: "Ethernet1/1"
  ek_port: {}
}
entity: {
  id: "loop-a"
}
entity: {
  id: "loop-b"
}
relationship: {
  kind: RK_CONTAINS
  a: "site-1"
  z: "rack-1"
}
relationship: {
  kind: RK_CONTAINS
  a: "rack-1"
  z: "port-1"
}
relationship: {
  kind: RK_CONTROLS
  a: "site-1"
  z: "port-1"
}
relationship: {
  kind: RK_CONTAINS
  a: "loop-a"
  z: "loop-b"
}
relationship: {
  kind: RK_CONTAINS
  a: "loop-b"
  z: "loop-a"
}
`

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(types.StoreConfig{DBPath: filepath.Join(dir, "index", "topology.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func indexDoc(t *testing.T, s *Store) Snapshot {
	t.Helper()
	g := graph.Parse(textproto.FlatParser{}, doc)
	snap, err := s.Index(context.Background(), g, "model.txtpb")
	require.NoError(t, err)
	return snap
}

// --- schema tests ---

func TestOpenCreatesSchema(t *testing.T) {
	s, dir := testStore(t)

	for _, table := range []string{"entities", "relationships", "snapshot"} {
		var count int
		err := s.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", table)
	}
	_, err := os.Stat(filepath.Join(dir, "index", "topology.db"))
	assert.NoError(t, err)
}

// --- index tests ---

func TestIndex(t *testing.T) {
	s, _ := testStore(t)
	snap := indexDoc(t, s)

	assert.Equal(t, 5, snap.Entities)
	assert.Equal(t, 5, snap.Relationships)

	got, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "model.txtpb", got.Source)
	assert.Equal(t, snap.Entities, got.Entities)
	assert.True(t, snap.IndexedAt.Equal(got.IndexedAt))
}

func TestIndexReplacesPreviousSnapshot(t *testing.T) {
	s, _ := testStore(t)
	indexDoc(t, s)

	g := graph.Parse(textproto.FlatParser{}, "entity: {\n  id: \"only\"\n}\n")
	_, err := s.Index(context.Background(), g, "second.txtpb")
	require.NoError(t, err)

	results, err := s.Search(context.Background(), SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "only", results[0].ID)
}

func TestSnapshotEmpty(t *testing.T) {
	s, _ := testStore(t)
	_, err := s.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

// --- search tests ---

func TestSearch(t *testing.T) {
	s, _ := testStore(t)
	indexDoc(t, s)

	tests := []struct {
		name    string
		opts    SearchOptions
		wantIDs []string
	}{
		{"match by name, case-insensitive", SearchOptions{Query: "ethernet"}, []string{"port-1"}},
		{"match by id", SearchOptions{Query: "RACK-"}, []string{"rack-1"}},
		{"match by type", SearchOptions{Query: "sit"}, []string{"site-1"}},
		{"type filter", SearchOptions{Type: "port"}, []string{"port-1"}},
		{"empty query lists all", SearchOptions{}, []string{"loop-a", "loop-b", "port-1", "rack-1", "site-1"}},
		{"limit", SearchOptions{MaxResults: 2}, []string{"loop-a", "loop-b"}},
		{"no match", SearchOptions{Query: "nothing"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Search(context.Background(), tt.opts)
			require.NoError(t, err)
			var ids []string
			for _, r := range results {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearchAncestors(t *testing.T) {
	s, _ := testStore(t)
	indexDoc(t, s)

	results, err := s.Search(context.Background(), SearchOptions{Query: "port-1"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	// RK_CONTROLS edges do not count as containment.
	assert.Equal(t, []string{"site-1", "rack-1"}, results[0].Ancestors)
	assert.Equal(t, "port", results[0].Type)
}

func TestAncestorsTerminateOnCycle(t *testing.T) {
	s, _ := testStore(t)
	indexDoc(t, s)

	anc, err := s.Ancestors(context.Background(), "loop-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"loop-b"}, anc)

	anc, err = s.Ancestors(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Empty(t, anc)
}

// --- export tests ---

func TestExport(t *testing.T) {
	s, dir := testStore(t)
	indexDoc(t, s)

	yamlPath := filepath.Join(dir, "export.yaml")
	require.NoError(t, s.ExportYAML(context.Background(), yamlPath))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)

	var entries []ExportEntry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 5)
	site := entries[4]
	assert.Equal(t, "site-1", site.ID)
	assert.Equal(t, []ExportEdge{
		{Kind: "RK_CONTAINS", Z: "rack-1"},
		{Kind: "RK_CONTROLS", Z: "port-1"},
	}, site.Relationships)
	assert.Empty(t, entries[2].Relationships, "port-1 has no outgoing relationships")

	jsonPath := filepath.Join(dir, "export.json")
	require.NoError(t, s.ExportJSON(context.Background(), jsonPath))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON []ExportEntry
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, entries, fromJSON)
}

func TestExportWriteErrors(t *testing.T) {
	s, dir := testStore(t)
	indexDoc(t, s)
	missing := filepath.Join(dir, "no-such-dir")

	err := s.ExportYAML(context.Background(), filepath.Join(missing, "export.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing export file")
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = s.ExportJSON(context.Background(), filepath.Join(missing, "export.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing export file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
