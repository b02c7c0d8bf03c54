// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view of the vibes TUI.

The chat package implements the conversation screen on top of Bubble Tea.
Prompts go out, replies stream back and every AI message is shown as
markdown with its code collapsed into cards that can be selected, copied
and opened in the preview pane.

# Key Components

## Model (model.go)

The Model struct is the central Bubble Tea model. It owns the open session
and conversation, the render cache of every AI message, the selection and
the layout of the header, sidebar, transcript, input, preview and status
bar.

## Update Loop (update.go)

Keyboard and mouse handling, layout on resize and the refresh pass that
re-renders the transcript and keeps the viewport, the sticky tracker and
the preview in step.

## Streaming (streaming.go, input.go)

A Streamer runs on its own goroutine and writes tokens into a
StreamingBuffer. A frame tick flushes the buffer into the message, so the
transcript is re-parsed at most once per frame:

	submit -> PromptReadyMsg -> StreamTickMsg ... -> StreamCompleteMsg

Escape cancels a running reply through the cancel manager.

## Pinning (pinning.go)

Every code card gets a sticky subscription. When a card scrolls under the
top of the transcript its collapsed copy is drawn in the sticky bar until
its message scrolls away.

## Sessions (sessions.go)

Listing, opening, starring and deleting stored chats. All store calls run
as commands with a timeout.

# Keys

	enter          send the prompt
	tab, shift+tab move between code cards
	enter, space   select the focused reply, again to open the preview
	y, Y           copy the focused code, or the whole message
	ctrl+p         toggle the preview
	ctrl+s         toggle the chat list
	ctrl+n         new chat
	esc            back, close the preview or stop the reply
*/
package chat
