// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI components for the vibes TUI.

Components are built on Bubble Tea, Bubbles and Lip Gloss and take a
*styles.Theme for all styling.

# Chat

StructuredMessage (structured.go) - An AI reply: glamour markdown, code
segment cards and the streaming cursor. Render reports the row of every
code card so the chat can track which ones have scrolled past.

CodeSegmentCard (codesegment.go) - Status dot, line count, copy label and a
three-line preview. The pinned variant is the collapsed copy shown in the
sticky bar.

ChatInput (input.go) - Growing prompt box, disabled while a reply streams.

# Frame

Header (header.go) - Sidebar hint, chat title, new chat hint.
Sidebar (sidebar.go) - Saved sessions with the favorites filter.
Preview (preview.go) - Full code of the selected response.
StatusBar (statusbar.go) - Status spinner, toasts and key hints.
Welcome (welcome.go) - Shown while a chat is empty.
*/
package components
