// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command and shared setup for vibes.
//
// Usage:
//   vibes                         Start the TUI (default)
//   vibes --session <id>          Resume a stored chat
//   vibes render [file]           Render a reply as segments
//   vibes sessions [--favorites]  List stored chats
//   vibes prompt [--session id]   Print the system prompt
//   vibes export <id>             Write a chat out as Markdown or JSON
//   vibes config [show|get|set|path]
//   vibes version

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeranaias/vibes-tui/internal/config"
	"github.com/jeranaias/vibes-tui/internal/logging"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	// ExitUsage is returned for bad flags or arguments
	ExitUsage = 2
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	json       bool
}

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&g.configPath, "config", "c", "", "config file (default ~/.vibes/config.toml)")
	fs.StringVar(&g.logLevel, "log-level", "", "override log.level")
	fs.BoolVar(&g.json, "json", false, "print JSON instead of text")
}

// loadConfig reads the config file named by --config, or the default
// location. A broken default file is reported and the defaults are used.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFromPath(g.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.Load()
		if cfg == nil {
			return nil, err
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("config: ")+err.Error())
		}
	}
	consoleLevel := "warn"
	if g.logLevel != "" {
		if _, err := logging.ParseLevel(g.logLevel); err != nil {
			return nil, usageError{err}
		}
		cfg.Log.Level = g.logLevel
		consoleLevel = g.logLevel
	}
	// Commands log to stderr; the TUI moves logging to its file.
	if err := logging.Console(consoleLevel); err != nil {
		return nil, err
	}
	config.SetGlobal(cfg)
	return cfg, nil
}

// configFile returns the file the TUI watches for changes.
func (g *globalFlags) configFile() (string, error) {
	if g.configPath != "" {
		return g.configPath, nil
	}
	return config.ConfigPathTOML()
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the vibes command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	g := &globalFlags{}
	var sessionID string

	root := &cobra.Command{
		Use:   "vibes",
		Short: "Generate apps in seconds",
		Long: `vibes is a terminal chat for generating small React apps.

Replies stream in as markdown with their code collapsed into cards.
Select a reply to open its code in the preview pane, copy it with y,
and find earlier chats in the sidebar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), g, sessionID)
		},
	}
	root.SetOut(out)
	root.SetErr(os.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	g.register(root.PersistentFlags())
	root.Flags().StringVarP(&sessionID, "session", "s", "", "resume the chat with this ID")

	root.AddCommand(
		newRenderCommand(g),
		newSessionsCommand(g),
		newPromptCommand(g),
		newExportCommand(g),
		newConfigCommand(g),
		newVersionCommand(g),
	)
	reportJSONErrors(root, g)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		return GetExitCode(err)
	}
	return ExitOK
}

// GetExitCode maps an error to an exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

// =============================================================================
// VERSION
// =============================================================================

// VersionData is the output of `vibes version --json`.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := VersionData{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			out := cmd.OutOrStdout()
			return OutputJSON(out, g.json, "version", func() (interface{}, error) {
				if !g.json {
					fmt.Fprintf(out, "vibes %s (%s, built %s) %s %s\n",
						data.Version, data.GitCommit, data.BuildDate, data.GoVersion, data.Platform)
				}
				return data, nil
			})
		},
	}
}
