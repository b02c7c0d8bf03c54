// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the vibes command tree.
//
// Running vibes with no command starts the chat TUI. The other commands
// work without a terminal and print either styled text or, with --json, a
// single JSONResponse.
//
// # Commands Overview
//
//   - (none): interactive chat, optionally resuming --session <id>
//   - render: split a reply into markdown and code segments
//   - sessions: list stored chats, newest first
//   - prompt: assemble the system prompt a reply would be generated with
//   - export: write a stored chat out as Markdown or JSON
//   - config: show, get, set, reset and locate configuration
//   - version: build information
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
//
// Exit codes are ExitOK, ExitError, and ExitUsage for bad flags, arguments
// or config edits.
package cli
