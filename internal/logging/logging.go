// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the console logger used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/topology-engine/internal/textproto"
)

// New returns a logger writing to w at the named level (debug, info, warn,
// error). An empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "topology-engine",
	}), nil
}

// Kinds logs the relationship count of each kind at debug level, in
// ascending kind order.
func Kinds(logger *log.Logger, kinds map[string]int) {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		logger.Debug("relationship kind", "kind", k, "count", kinds[k])
	}
}

// Discards logs every dropped block at debug level.
func Discards(logger *log.Logger, discards []textproto.Discard) {
	for _, d := range discards {
		logger.Debug("discarded block", "kind", d.Kind, "offset", d.Offset, "reason", d.Reason)
	}
}
