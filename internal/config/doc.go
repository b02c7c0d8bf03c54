// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for vibes.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, validation and hot reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - UIConfig: Theme, sticky code header and mouse settings
//   - StreamConfig: Token batching and replay pacing
//   - PromptsConfig: Style prompt, doc sources and doc cache
//   - Watcher: Reloads the config file when it changes
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (VIBES_*)
//   - ~/.vibes/config.toml
//   - ~/.vibes/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	offset := cfg.UI.StickyOffset
//	ttl := cfg.CacheTTL()
package config
