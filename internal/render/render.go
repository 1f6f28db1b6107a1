// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes a containment forest for the presentation
// layer: JSON and YAML transport, or a self-contained interactive HTML page.
package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/topology-engine/pkg/types"
)

// DefaultTitle is the page title used when none is configured.
const DefaultTitle = "NMTS Containment Tree"

//go:embed tree.html.tmpl
var treeHTML string

var treeTemplate = template.Must(template.New("tree").Parse(treeHTML))

// pageData feeds tree.html.tmpl.
type pageData struct {
	Title string
	Kind  string
	Roots []*types.ForestNode
}

// Options controls Render.
type Options struct {
	Format          types.TreeFormat
	Title           string
	ContainmentKind string
}

// Render writes roots to w in the requested format.
func Render(w io.Writer, roots []*types.ForestNode, opts Options) error {
	if roots == nil {
		roots = []*types.ForestNode{}
	}
	switch opts.Format {
	case types.FormatHTML, "":
		return HTML(w, roots, opts.Title, opts.ContainmentKind)
	case types.FormatJSON:
		return JSON(w, roots)
	case types.FormatYAML:
		return YAML(w, roots)
	default:
		return fmt.Errorf("unsupported format %q: use html, json, or yaml", opts.Format)
	}
}

// ParseFormat validates a format name. Empty means html.
func ParseFormat(name string) (types.TreeFormat, error) {
	switch f := types.TreeFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return types.FormatHTML, nil
	case types.FormatHTML, types.FormatJSON, types.FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q: use html, json, or yaml", name)
}

// JSON writes roots as an indented JSON array.
func JSON(w io.Writer, roots []*types.ForestNode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(roots); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// YAML writes roots as a YAML sequence.
func YAML(w io.Writer, roots []*types.ForestNode) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(roots); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// HTML writes the interactive tree page. The forest is embedded as JSON;
// nodes start collapsed and can be searched by name, id, or type.
func HTML(w io.Writer, roots []*types.ForestNode, title, kind string) error {
	if title == "" {
		title = DefaultTitle
	}
	if kind == "" {
		kind = types.DefaultContainmentKind
	}
	if err := treeTemplate.Execute(w, pageData{Title: title, Kind: kind, Roots: roots}); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}
