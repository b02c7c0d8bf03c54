// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides session persistence for vibes.
//
// Sessions and their messages are stored as JSON documents in a local
// SQLite database (pure Go driver, no cgo). The sidebar reads sessions
// newest first and can restrict the list to favorites.
//
// # Key Types
//
//   - Store: the document database
//   - Session: title, creation time, favorite flag and prompt settings
//
// # Usage
//
//	store, err := storage.Open(cfg.Storage.Path)
//	sess := storage.NewSession()
//	err = store.PutSession(ctx, sess)
//	faves, err := store.ListSessions(ctx, true)
//	title := storage.SidebarTitle(len(faves), true) // "No Faves Yet"
//
// # Storage Location
//
// The database lives at ~/.vibes/vibes.db unless configured otherwise.
package storage
