// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds an entity with its outgoing relationships.
type ExportEntry struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Type          string       `json:"type" yaml:"type"`
	Relationships []ExportEdge `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// ExportEdge is one outgoing relationship of an exported entity.
type ExportEdge struct {
	Kind string `json:"kind" yaml:"kind"`
	Z    string `json:"z" yaml:"z"`
}

// ExportYAML writes every entity to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// ExportJSON writes every entity to path as JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.name, e.type, r.kind, r.z
		FROM entities e
		LEFT JOIN relationships r ON r.a = e.id
		ORDER BY e.id, r.kind, r.z`)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	entries := []ExportEntry{}
	for rows.Next() {
		var (
			e    ExportEntry
			kind sql.NullString
			z    sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &kind, &z); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if n := len(entries); n == 0 || entries[n-1].ID != e.ID {
			entries = append(entries, e)
		}
		if kind.Valid {
			last := &entries[len(entries)-1]
			last.Relationships = append(last.Relationships, ExportEdge{Kind: kind.String, Z: z.String})
		}
	}
	return entries, rows.Err()
}
