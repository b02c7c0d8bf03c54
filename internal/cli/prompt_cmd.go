// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt_cmd.go - Print the system prompt a reply would be generated with.
//
// Command: prompt
// Short:   Assemble and print the system prompt
//
// Examples:
//   vibes prompt                      Prompt for a new chat
//   vibes prompt --session <id>       Prompt with the chat's style
//   vibes prompt --style "brutalist"  Override the style for this call

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/vibes-tui/internal/prompts"
	"github.com/jeranaias/vibes-tui/internal/storage"
)

func newPromptCommand(g *globalFlags) *cobra.Command {
	var (
		sessionID string
		style     string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Assemble and print the system prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			var sess *storage.Session
			if sessionID != "" {
				store, err := storage.Open(cfg.Storage.Path)
				if err != nil {
					return err
				}
				defer store.Close()

				ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
				defer cancel()
				if sess, err = store.GetSession(ctx, sessionID); err != nil {
					return err
				}
			}

			builder, closeBuilder, err := newPromptBuilder(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeBuilder()
			if style != "" {
				builder.StylePrompt = style
			}

			out := cmd.OutOrStdout()
			return OutputJSON(out, g.json, "prompt", func() (interface{}, error) {
				ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout()+storeTimeout)
				defer cancel()

				text, err := builder.MakeBaseSystemPrompt(ctx, cfg.Model, sess)
				if err != nil {
					return nil, err
				}
				if !g.json {
					fmt.Fprintln(out, text)
				}
				data := PromptData{
					Model:       cfg.Model,
					StylePrompt: effectiveStyle(builder, sess),
					Prompt:      text,
				}
				if sess != nil {
					data.SessionID = sess.ID
				}
				return data, nil
			})
		},
	}
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "use this chat's style and user prompt")
	cmd.Flags().StringVar(&style, "style", "", "style prompt for chats without one")
	return cmd
}

// effectiveStyle mirrors the builder's choice of style prompt.
func effectiveStyle(b *prompts.Builder, sess *storage.Session) string {
	if sess != nil && sess.StylePrompt != "" {
		return sess.StylePrompt
	}
	if b.StylePrompt != "" {
		return b.StylePrompt
	}
	return prompts.DefaultStylePrompt
}
