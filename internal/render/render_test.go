// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/topology-engine/pkg/types"
)

func sampleRoots() []*types.ForestNode {
	return []*types.ForestNode{
		{
			ID: "chassis-1", Name: "Chassis <1>", Type: "chassis",
			Children: []*types.ForestNode{
				{ID: "port-1", Name: "Ethernet1/1", Type: "port", Children: []*types.ForestNode{}},
			},
		},
		{ID: "e9", Name: "e9", Type: "", Children: []*types.ForestNode{}},
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRoots(), Options{Format: types.FormatJSON}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "chassis-1", got[0]["id"])
	assert.Equal(t, "", got[1]["type"])
	assert.Equal(t, []any{}, got[1]["children"], "leaf children must be an empty array, not null")
}

func TestJSONNilForest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, Options{Format: types.FormatJSON}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRoots(), Options{Format: types.FormatYAML}))

	var got []*types.ForestNode
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "port-1", got[0].Children[0].ID)
	assert.Contains(t, buf.String(), "- id: chassis-1\n")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRoots(), Options{Title: "Lab <West>"}))
	page := buf.String()

	assert.Contains(t, page, "<title>Lab &lt;West&gt;</title>")
	assert.Contains(t, page, "Generated from textproto (RK_CONTAINS)")
	assert.Contains(t, page, `"id":"chassis-1"`)
	assert.NotContains(t, page, "Chassis <1>", "names must be escaped inside the script")
	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
}

func TestHTMLDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, []*types.ForestNode{}, "", ""))
	assert.Contains(t, buf.String(), "<title>"+DefaultTitle+"</title>")
	assert.Contains(t, buf.String(), "const data = [];")
}

func TestRenderUnsupportedFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, nil, Options{Format: "svg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "svg"`)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    types.TreeFormat
		wantErr bool
	}{
		{"", types.FormatHTML, false},
		{"html", types.FormatHTML, false},
		{" JSON ", types.FormatJSON, false},
		{"yaml", types.FormatYAML, false},
		{"dot", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
