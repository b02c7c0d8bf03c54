// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"
)

// MaxMessages bounds the in-memory history of one chat.
const MaxMessages = 1000

// DefaultTitle is shown for chats that have not been named yet.
const DefaultTitle = "Untitled Chat"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the in-memory view of one session's chat.
type Conversation struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`
}

// NewConversation creates an empty conversation bound to a session.
func NewConversation(sessionID string) *Conversation {
	now := time.Now()
	return &Conversation{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// AddMessage appends a message.
func (c *Conversation) AddMessage(msg *Message) {
	msg.SessionID = c.SessionID
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
	c.updateTitle()
}

// AddUserMessage appends and returns a user message.
func (c *Conversation) AddUserMessage(text string) *Message {
	msg := NewUserMessage(text)
	c.AddMessage(msg)
	return msg
}

// StartAIMessage appends and returns a streaming AI message.
func (c *Conversation) StartAIMessage() *Message {
	msg := NewAIMessage()
	c.AddMessage(msg)
	return msg
}

// Last returns the last message, or nil.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastAI returns the most recent AI message, or nil.
func (c *Conversation) LastAI() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Type == TypeAI {
			return c.Messages[i]
		}
	}
	return nil
}

// FindByID returns the message with the given ID, or nil.
func (c *Conversation) FindByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// IsStreaming reports whether the last message is still streaming.
func (c *Conversation) IsStreaming() bool {
	last := c.Last()
	return last != nil && last.IsStreaming
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty reports whether the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// SetTitle sets the title explicitly.
func (c *Conversation) SetTitle(title string) {
	c.Title = title
	c.UpdatedAt = time.Now()
}

// DisplayTitle returns the title or DefaultTitle.
func (c *Conversation) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return DefaultTitle
}

// updateTitle names an untitled chat after its first user message.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.Type == TypeUser {
			c.Title = msg.Preview(50)
			return
		}
	}
}

// pruneOldMessages keeps the most recent MaxMessages messages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	kept := make([]*Message, MaxMessages)
	copy(kept, c.Messages[len(c.Messages)-MaxMessages:])
	c.Messages = kept
}
