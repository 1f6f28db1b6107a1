// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultContainmentKind is the relationship kind treated as parent/child
// containment when no other kind is configured.
const DefaultContainmentKind = "RK_CONTAINS"

// FilterConfig holds settings for the filter command.
type FilterConfig struct {
	// Input is the path of the textproto document to filter.
	Input string `json:"input" yaml:"input"`

	// Output is the path the reduced document is written to.
	Output string `json:"output" yaml:"output"`

	// Relationships lists the relationship kinds to keep (e.g. RK_CONTAINS).
	Relationships []string `json:"relationships" yaml:"relationships"`
}

// TreeFormat selects how the containment forest is serialized.
type TreeFormat string

const (
	FormatHTML TreeFormat = "html"
	FormatJSON TreeFormat = "json"
	FormatYAML TreeFormat = "yaml"
)

// TreeConfig holds settings for the tree command.
type TreeConfig struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`

	// ContainmentKind is the relationship kind whose edges form the forest
	// (default RK_CONTAINS).
	ContainmentKind string `json:"containment_kind" yaml:"containment_kind"`

	// Title is the page title of the HTML rendering.
	Title string `json:"title" yaml:"title"`

	// Format selects html, json, or yaml output.
	Format TreeFormat `json:"format" yaml:"format"`

	// Strict turns declared entities that are missing from the forest into
	// an error instead of a warning.
	Strict bool `json:"strict" yaml:"strict"`
}

// StoreConfig holds settings for the SQLite graph index.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "topology.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// ContainmentKind is used to resolve ancestor chains in search results.
	ContainmentKind string `json:"containment_kind" yaml:"containment_kind"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
