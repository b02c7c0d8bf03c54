// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for vibes.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   get <key>           Print one value
//   set <key> <value>   Set a value and save the file
//   reset               Reset to default configuration
//   path                Show configuration file path
//
// Examples:
//   vibes config                              Show current config (default)
//   vibes config show --json                  Config in JSON format
//   vibes config get ui.sticky_offset
//   vibes config set ui.theme light
//   vibes config set stream.max_fps 60
//   vibes config set prompts.redis_url redis://localhost:6379/0
//   vibes config path
//
// Keys use the TOML section names, joined with dots. A running chat picks
// up saved changes without restarting.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/vibes-tui/internal/config"
)

// configSection groups keys for `config show`.
type configSection struct {
	name string
	keys []string
}

var configSections = []configSection{
	{"general", []string{"model"}},
	{"ui", []string{"ui.theme", "ui.sticky_offset", "ui.sticky_mode", "ui.poll_interval_ms", "ui.mouse", "ui.show_stats"}},
	{"stream", []string{"stream.batch_size", "stream.max_fps", "stream.replay_tokens_per_sec", "stream.replay_file"}},
	{"storage", []string{"storage.path"}},
	{"prompts", []string{"prompts.style_prompt", "prompts.cache_ttl_minutes", "prompts.redis_url", "prompts.fetch_timeout_secs"}},
	{"log", []string{"log.level", "log.path"}},
}

// ConfigValueData is the JSON output of `config get` and `config set`.
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
	Path  string      `json:"path,omitempty"`
}

func newConfigCommand(g *globalFlags) *cobra.Command {
	show := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, g)
		},
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and modify configuration",
		Args:  cobra.NoArgs,
		RunE:  show.RunE,
	}

	cmd.AddCommand(
		show,
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := g.loadConfig()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				return OutputJSON(out, g.json, "config get", func() (interface{}, error) {
					v, err := cfg.Get(args[0])
					if err != nil {
						return nil, usageError{err}
					}
					v = displayValue(args[0], v)
					if !g.json {
						fmt.Fprintln(out, v)
					}
					return ConfigValueData{Key: args[0], Value: v}, nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value and save it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigSet(cmd, g, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset to default configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := g.configFile()
				if err != nil {
					return err
				}
				if err := saveConfig(config.Default(), path); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				return OutputJSON(out, g.json, "config reset", func() (interface{}, error) {
					if !g.json {
						fmt.Fprintf(out, "%s Configuration reset to defaults\n", SuccessStyle.Render("[OK]"))
						fmt.Fprintf(out, "Config file: %s\n", DimStyle.Render(path))
					}
					return ConfigValueData{Path: path}, nil
				})
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := g.configFile()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				return OutputJSON(out, g.json, "config path", func() (interface{}, error) {
					if !g.json {
						fmt.Fprintln(out, path)
						if _, err := os.Stat(path); os.IsNotExist(err) {
							fmt.Fprintf(cmd.ErrOrStderr(), "%s (file does not exist yet, defaults apply)\n",
								DimStyle.Render("Note"))
						}
					}
					return ConfigValueData{Path: path}, nil
				})
			},
		},
	)
	return cmd
}

func runConfigShow(cmd *cobra.Command, g *globalFlags) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if g.json {
		// String already redacts secrets.
		return OutputJSON(out, true, "config show", func() (interface{}, error) {
			return json.RawMessage(cfg.String()), nil
		})
	}

	path, _ := g.configFile()
	printConfig(out, cfg, path)
	return nil
}

func printConfig(w io.Writer, cfg *config.Config, path string) {
	fmt.Fprintln(w, TitleStyle.Render("vibes Configuration"))
	fmt.Fprintln(w, RenderSeparator(41))
	for _, sec := range configSections {
		fmt.Fprintln(w)
		fmt.Fprintln(w, LabelStyle.Render("["+sec.name+"]"))
		for _, key := range sec.keys {
			v, err := cfg.Get(key)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "  %s%s\n", RenderLabel(key), ValueStyle.Render(fmt.Sprint(displayValue(key, v))))
		}
	}
	if len(cfg.Prompts.Docs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, LabelStyle.Render("[[prompts.docs]]"))
		for _, d := range cfg.Prompts.Docs {
			fmt.Fprintf(w, "  %s%s\n", RenderLabel(d.Name), ValueStyle.Render(d.URL))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderSeparator(41))
	if path != "" {
		fmt.Fprintf(w, "Config file: %s\n", DimStyle.Render(path))
	}
}

func runConfigSet(cmd *cobra.Command, g *globalFlags, key, value string) error {
	path, err := g.configFile()
	if err != nil {
		return err
	}

	// A file named by --config that does not exist yet starts from defaults.
	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil || g.configPath == "" {
		if cfg, err = g.loadConfig(); err != nil {
			return err
		}
	}
	if err := cfg.Set(key, value); err != nil {
		return usageError{err}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}

	if err := saveConfig(cfg, path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return OutputJSON(out, g.json, "config set", func() (interface{}, error) {
		v, _ := cfg.Get(key)
		v = displayValue(key, v)
		if !g.json {
			fmt.Fprintf(out, "%s %s = %v\n", SuccessStyle.Render("[OK]"), key, v)
		}
		return ConfigValueData{Key: key, Value: v, Path: path}, nil
	})
}

// saveConfig writes cfg in the format path's extension names.
func saveConfig(cfg *config.Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if strings.HasSuffix(path, ".json") {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}

// displayValue hides the password of a Redis URL.
func displayValue(key string, v interface{}) interface{} {
	s, ok := v.(string)
	if !ok || key != "prompts.redis_url" || s == "" {
		return v
	}
	u, err := url.Parse(s)
	if err != nil {
		return "(invalid url)"
	}
	return u.Redacted()
}
