// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Starts the interactive chat.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/vibes-tui/internal/config"
	"github.com/jeranaias/vibes-tui/internal/logging"
	"github.com/jeranaias/vibes-tui/internal/prompts"
	"github.com/jeranaias/vibes-tui/internal/storage"
	"github.com/jeranaias/vibes-tui/internal/ui/chat"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// redisPingTimeout bounds the startup check of a configured Redis cache.
const redisPingTimeout = 2 * time.Second

// runTUI wires config, logging, storage and the prompt builder into the chat
// model and runs it until the user quits.
func runTUI(ctx context.Context, g *globalFlags, sessionID string) error {
	if err := RequiresTTY("start the chat"); err != nil {
		return err
	}

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logCloser, err := logging.Setup(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	builder, closeBuilder, err := newPromptBuilder(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBuilder()

	streamer, err := newStreamer(cfg)
	if err != nil {
		return err
	}

	m := chat.New(chat.Options{
		Config:    cfg,
		Theme:     styles.NewTheme(cfg.UI.Theme),
		Store:     store,
		Prompts:   builder,
		Streamer:  streamer,
		SessionID: sessionID,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	if w := watchConfig(g, cfg, p); w != nil {
		defer w.Close()
	}

	log.Info().
		Str("version", Version).
		Str("db", store.Path()).
		Str("model", cfg.Model).
		Msg("vibes started")

	final, err := p.Run()
	if fm, ok := final.(chat.Model); ok {
		if cerr := fm.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing chat")
		}
	}
	if err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// watchConfig forwards edits of the config file into the running program.
// A missing file is not watched.
func watchConfig(g *globalFlags, cfg *config.Config, p *tea.Program) config.Watcher {
	path, err := g.configFile()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	w, err := config.Watch(path, cfg.PollInterval(), func(c *config.Config) {
		config.SetGlobal(c)
		if lvl, err := logging.ParseLevel(c.Log.Level); err == nil {
			logging.SetLevel(lvl)
		}
		p.Send(chat.ConfigReloadedMsg{Config: c})
	})
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config watch failed")
		return nil
	}
	return w
}

// newPromptBuilder assembles the system prompt builder. A configured Redis
// cache that cannot be reached falls back to memory.
func newPromptBuilder(ctx context.Context, cfg *config.Config) (*prompts.Builder, func(), error) {
	sources, err := docSources(cfg)
	if err != nil {
		return nil, nil, err
	}

	builder := prompts.NewBuilder(sources, prompts.NewHTTPFetcher(cfg.FetchTimeout()))
	builder.StylePrompt = cfg.Prompts.StylePrompt
	builder.Cache = prompts.NewMemoryCache(cfg.CacheTTL())
	cleanup := func() {}

	if url := cfg.Prompts.RedisURL; url != "" {
		rc, err := prompts.NewRedisCache(url, cfg.CacheTTL())
		if err != nil {
			return nil, nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("redis doc cache unavailable, using memory")
			closeQuietly(rc)
		} else {
			builder.Cache = rc
			cleanup = func() { closeQuietly(rc) }
		}
	}
	return builder, cleanup, nil
}

// docSources returns the configured doc sources, or the built-in ones.
func docSources(cfg *config.Config) ([]prompts.DocSource, error) {
	if len(cfg.Prompts.Docs) == 0 {
		return prompts.DefaultSources()
	}
	sources := make([]prompts.DocSource, 0, len(cfg.Prompts.Docs))
	for _, d := range cfg.Prompts.Docs {
		sources = append(sources, prompts.DocSource{Name: d.Name, Label: d.Label, URL: d.URL})
	}
	return sources, nil
}

// newStreamer returns the replay streamer: the configured file, or the
// built-in demo reply.
func newStreamer(cfg *config.Config) (chat.Streamer, error) {
	if cfg.Stream.ReplayFile != "" {
		return chat.LoadReplayStreamer(cfg.Stream.ReplayFile, cfg.Stream.ReplayRate)
	}
	return chat.NewReplayStreamer("", cfg.Stream.ReplayRate), nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Debug().Err(err).Msg("close")
	}
}
