// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/topology-engine/pkg/types"
)

// ErrEmpty is returned when the store holds no indexed document.
var ErrEmpty = errors.New("no document indexed: run index first")

// SearchOptions holds parameters for Search.
type SearchOptions struct {
	// Query is matched case-insensitively as a substring of the entity
	// name, id, or type. Empty matches every entity.
	Query string

	// Type restricts hits to one entity type.
	Type string

	// MaxResults limits the result count. Zero uses the store default.
	MaxResults int
}

// SearchResult is a matching entity with its containment ancestors.
type SearchResult struct {
	types.Entity `yaml:",inline"`

	// Ancestors lists the ids that contain the entity, outermost first.
	Ancestors []string `json:"ancestors" yaml:"ancestors"`
}

// Search returns entities matching opts ordered by id, each with its
// ancestor chain so a viewer can expand the path down to the hit.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]SearchResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, name, type FROM entities WHERE 1=1`)

	if q := strings.TrimSpace(opts.Query); q != "" {
		qb.WriteString(` AND (instr(lower(name), lower(?)) > 0 OR instr(lower(id), lower(?)) > 0 OR instr(lower(type), lower(?)) > 0)`)
		args = append(args, q, q, q)
	}
	if opts.Type != "" {
		qb.WriteString(` AND type = ?`)
		args = append(args, opts.Type)
	}
	qb.WriteString(` ORDER BY id LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Name, &r.Type); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		anc, err := s.Ancestors(ctx, results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Ancestors = anc
	}
	return results, nil
}

// ancestorsQuery walks containment edges upward from a child. Each row
// carries the visited ids delimited by char(31) so a cycle stops the walk.
const ancestorsQuery = `
WITH RECURSIVE up(id, depth, path) AS (
	SELECT a, 1, char(31) || ?1 || char(31) || a || char(31)
	FROM relationships
	WHERE kind = ?2 AND z = ?1 AND a <> ?1
	UNION ALL
	SELECT r.a, up.depth + 1, up.path || r.a || char(31)
	FROM relationships r
	JOIN up ON r.z = up.id
	WHERE r.kind = ?2 AND instr(up.path, char(31) || r.a || char(31)) = 0
)
SELECT id, MAX(depth) AS d FROM up GROUP BY id ORDER BY d DESC, id`

// Ancestors returns every id that transitively contains id, outermost
// first. Ids reached through several parents appear once.
func (s *Store) Ancestors(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, ancestorsQuery, id, s.containmentKind)
	if err != nil {
		return nil, fmt.Errorf("resolving ancestors of %s: %w", id, err)
	}
	defer rows.Close()

	ancestors := []string{}
	for rows.Next() {
		var (
			anc   string
			depth int
		)
		if err := rows.Scan(&anc, &depth); err != nil {
			return nil, fmt.Errorf("scanning ancestor: %w", err)
		}
		ancestors = append(ancestors, anc)
	}
	return ancestors, rows.Err()
}
