// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed llms/*.json
var llmsFS embed.FS

// DocSource is a library whose reference text is included in the prompt.
type DocSource struct {
	Name  string `json:"name" toml:"name"`
	Label string `json:"label" toml:"label"`
	URL   string `json:"llmsTxtUrl" toml:"url"`
}

// Tag returns the XML-ish tag the docs are wrapped in, e.g. "callAI-docs".
func (d DocSource) Tag() string {
	return d.Label + "-docs"
}

// DefaultSources returns the built-in doc sources in file name order.
func DefaultSources() ([]DocSource, error) {
	return loadSources(llmsFS, "llms/*.json")
}

func loadSources(fsys fs.FS, pattern string) ([]DocSource, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	sources := make([]DocSource, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var src DocSource
		if err := json.Unmarshal(data, &src); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if src.URL == "" || src.Label == "" {
			return nil, fmt.Errorf("%s: label and llmsTxtUrl are required", name)
		}
		sources = append(sources, src)
	}
	return sources, nil
}
