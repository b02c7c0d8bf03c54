// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes stored vibes chats out as files.
//
// # Key Types
//
//   - Document: a session and its messages, as loaded from storage
//   - Exporter: converts a Document to bytes in one format
//   - Options: metadata and timestamp switches, output directory
//
// # Supported Formats
//
//   - Markdown: the chat as read, code fences intact
//   - JSON: session and messages, with each AI reply split into segments
//
// # Usage
//
//	doc := export.NewDocument(sess, msgs)
//	exp, err := export.ForFormat("md", nil)
//	path, err := export.ToFile(doc, exp, opts)
package export
