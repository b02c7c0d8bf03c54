// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sessions_cmd.go - List stored chats.
//
// Command: sessions
// Short:   List stored chats, newest first
//
// Examples:
//   vibes sessions                    All chats
//   vibes sessions --favorites        Starred chats only
//   vibes sessions --search todo      Titles containing "todo"
//   vibes sessions --json

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/vibes-tui/internal/storage"
)

// storeTimeout bounds store calls made by the commands.
const storeTimeout = 10 * time.Second

func newSessionsCommand(g *globalFlags) *cobra.Command {
	var (
		favorites bool
		search    string
	)
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"ls"},
		Short:   "List stored chats, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			store, err := storage.Open(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			return OutputJSON(out, g.json, "sessions", func() (interface{}, error) {
				ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
				defer cancel()

				var sessions []storage.Session
				if search != "" {
					sessions, err = store.SearchSessions(ctx, search)
				} else {
					sessions, err = store.ListSessions(ctx, favorites)
				}
				if err != nil {
					return nil, err
				}
				if !g.json {
					printSessions(out, sessions, favorites)
				}
				return sessionData(sessions), nil
			})
		},
	}
	cmd.Flags().BoolVarP(&favorites, "favorites", "f", false, "only starred chats")
	cmd.Flags().StringVar(&search, "search", "", "only chats whose title contains this text")
	return cmd
}

func printSessions(w io.Writer, sessions []storage.Session, justFavorites bool) {
	fmt.Fprintln(w, TitleStyle.Render(storage.SidebarTitle(len(sessions), justFavorites)))
	if len(sessions) == 0 {
		fmt.Fprintln(w, DimStyle.Render(storage.EmptyListText(justFavorites)))
		return
	}
	for _, s := range sessions {
		star := " "
		if s.Favorite {
			star = FavoriteStyle.Render("★")
		}
		fmt.Fprintf(w, "%s %s %s\n", star, ValueStyle.Render(s.DisplayTitle()),
			DimStyle.Render(s.CreatedAt.Local().Format("Jan 2, 2006 15:04")))
		fmt.Fprintf(w, "  %s\n", DimStyle.Render(s.Path()))
	}
}

func sessionData(sessions []storage.Session) []SessionData {
	out := make([]SessionData, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionData{
			ID:        s.ID,
			Title:     s.DisplayTitle(),
			Path:      s.Path(),
			Favorite:  s.Favorite,
			CreatedAt: s.CreatedAt,
		})
	}
	return out
}
