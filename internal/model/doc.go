// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: the messages of one session, in order
//   - Message: a user prompt or an AI reply; AI replies stream token by token
//   - Statistics: timing collected while a reply streams
//
// # Usage
//
//	conv := model.NewConversation(sessionID)
//	conv.AddUserMessage("a todo list with due dates")
//	reply := conv.StartAIMessage()
//	reply.AppendToken("Here is ")
//	reply.FinalizeStream(stats)
package model
