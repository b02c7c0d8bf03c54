// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - Export a stored chat.
//
// Command: export <session-id>
// Short:   Write a chat out as Markdown or JSON
//
// Examples:
//   vibes export <id>                     Markdown on stdout
//   vibes export <id> --format json       JSON with replies split into segments
//   vibes export <id> -o todo.md          Write to a file
//   vibes export <id> --dir ./exports     Generated file name in a directory

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/vibes-tui/internal/export"
	"github.com/jeranaias/vibes-tui/internal/storage"
	"github.com/jeranaias/vibes-tui/internal/util"
)

// ExportData is the output of `vibes export --json`.
type ExportData struct {
	SessionID string `json:"session_id"`
	Format    string `json:"format"`
	Path      string `json:"path"`
	Bytes     int    `json:"bytes"`
}

func newExportCommand(g *globalFlags) *cobra.Command {
	var (
		format       string
		output       string
		dir          string
		noMetadata   bool
		noTimestamps bool
	)
	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Write a chat out as Markdown or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := export.DefaultOptions()
			opts.IncludeMetadata = !noMetadata
			opts.IncludeTimestamps = !noTimestamps
			exporter, err := export.ForFormat(format, opts)
			if err != nil {
				return usageError{err}
			}
			if output != "" && dir != "" {
				return usageError{fmt.Errorf("--output and --dir cannot be combined")}
			}
			// JSON mode owns stdout, so the export goes to a file.
			if g.json && output == "" && dir == "" {
				dir = "."
			}

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
			return OutputJSON(out, g.json, "export", func() (interface{}, error) {
				ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
				defer cancel()

				sess, err := store.GetSession(ctx, args[0])
				if err != nil {
					return nil, err
				}
				msgs, err := store.Messages(ctx, sess.ID)
				if err != nil {
					return nil, err
				}
				doc := export.NewDocument(*sess, msgs)
				data := ExportData{SessionID: sess.ID, Format: exporter.MimeType()}

				switch {
				case dir != "":
					opts.OutputDir = dir
					if data.Path, err = export.ToFile(doc, exporter, opts); err != nil {
						return nil, err
					}
				default:
					content, err := exporter.Export(doc)
					if err != nil {
						return nil, err
					}
					data.Bytes = len(content)
					if output == "" || output == "-" {
						_, err = out.Write(content)
						return data, err
					}
					if err := util.AtomicWriteFileWithDir(output, content, 0644, 0755); err != nil {
						return nil, fmt.Errorf("write %s: %w", output, err)
					}
					data.Path = output
				}

				if !g.json {
					fmt.Fprintf(out, "%s Exported %s to %s\n", SuccessStyle.Render("[OK]"),
						sess.DisplayTitle(), data.Path)
				}
				return data, nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "md or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, - for stdout")
	cmd.Flags().StringVar(&dir, "dir", "", "directory to write a generated file name into")
	cmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "leave out front matter and stats")
	cmd.Flags().BoolVar(&noTimestamps, "no-timestamps", false, "leave out message times")
	return cmd
}
