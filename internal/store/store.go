// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a parsed topology graph in a SQLite database so it can
// be searched and exported without re-reading the source document.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/topology-engine/internal/graph"
	"github.com/pdiddy/topology-engine/pkg/types"
)

const (
	defaultDBPath     = "topology.db"
	defaultMaxResults = 20
)

// Store manages the graph index database.
type Store struct {
	db              *sql.DB
	containmentKind string
	maxResults      int
}

// Open opens or creates the database at cfg.DBPath and creates the schema
// if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = defaultDBPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	kind := cfg.ContainmentKind
	if kind == "" {
		kind = types.DefaultContainmentKind
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, containmentKind: kind, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS relationships (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			a TEXT NOT NULL,
			z TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_relationships_kind_z ON relationships(kind, z)`,
		`CREATE INDEX IF NOT EXISTS idx_relationships_a ON relationships(a)`,
		`CREATE TABLE IF NOT EXISTS snapshot (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			source TEXT NOT NULL,
			indexed_at TEXT NOT NULL,
			entities INTEGER NOT NULL,
			relationships INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Snapshot describes the document currently held by the store.
type Snapshot struct {
	Source        string    `json:"source" yaml:"source"`
	IndexedAt     time.Time `json:"indexed_at" yaml:"indexed_at"`
	Entities      int       `json:"entities" yaml:"entities"`
	Relationships int       `json:"relationships" yaml:"relationships"`
}

// Index replaces the store contents with g. The whole replacement runs in
// one transaction, so a failed run leaves the previous snapshot intact.
func (s *Store) Index(ctx context.Context, g *graph.Graph, source string) (Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM entities`, `DELETE FROM relationships`, `DELETE FROM snapshot`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return Snapshot{}, fmt.Errorf("clearing previous snapshot: %w", err)
		}
	}

	entStmt, err := tx.PrepareContext(ctx, `INSERT INTO entities (id, name, type) VALUES (?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("preparing entity insert: %w", err)
	}
	defer entStmt.Close()

	for _, id := range g.EntityIDs() {
		e := g.Entities[id]
		if _, err := entStmt.ExecContext(ctx, e.ID, e.Name, e.Type); err != nil {
			return Snapshot{}, fmt.Errorf("inserting entity %s: %w", e.ID, err)
		}
	}

	relStmt, err := tx.PrepareContext(ctx, `INSERT INTO relationships (kind, a, z) VALUES (?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("preparing relationship insert: %w", err)
	}
	defer relStmt.Close()

	for _, r := range g.Relationships {
		if _, err := relStmt.ExecContext(ctx, r.Kind, r.A, r.Z); err != nil {
			return Snapshot{}, fmt.Errorf("inserting relationship %s %s->%s: %w", r.Kind, r.A, r.Z, err)
		}
	}

	snap := Snapshot{
		Source:        source,
		IndexedAt:     time.Now().UTC(),
		Entities:      len(g.Entities),
		Relationships: len(g.Relationships),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot (id, source, indexed_at, entities, relationships) VALUES (1, ?, ?, ?, ?)`,
		snap.Source, snap.IndexedAt.Format(time.RFC3339Nano), snap.Entities, snap.Relationships,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("recording snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("committing snapshot: %w", err)
	}
	return snap, nil
}

// Snapshot returns the description of the indexed document. It returns
// ErrEmpty when nothing has been indexed yet.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap      Snapshot
		indexedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT source, indexed_at, entities, relationships FROM snapshot WHERE id = 1`,
	).Scan(&snap.Source, &indexedAt, &snap.Entities, &snap.Relationships)
	if err == sql.ErrNoRows {
		return Snapshot{}, ErrEmpty
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	snap.IndexedAt, err = time.Parse(time.RFC3339Nano, indexedAt)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing snapshot time %q: %w", indexedAt, err)
	}
	return snap, nil
}
