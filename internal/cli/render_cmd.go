// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render_cmd.go - Render a reply outside the TUI.
//
// Command: render [file]
// Short:   Split a reply into markdown and code segments
//
// Examples:
//   vibes render reply.md            Styled, as the chat shows it
//   cat reply.md | vibes render      Read from stdin
//   vibes render reply.md --full     Show code in full, highlighted
//   vibes render reply.md --json     Segments as JSON
//
// Styled output is only used when stdout is a terminal; piped output is
// plain text.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/segment"
	"github.com/jeranaias/vibes-tui/internal/ui/components"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// renderMessageID names the single message a render call displays.
const renderMessageID = "cli"

type renderOptions struct {
	full   bool
	width  int
	styled bool
}

func newRenderCommand(g *globalFlags) *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Split a reply into markdown and code segments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if opts.width <= 0 {
				opts.width = GetTerminalWidth()
			}
			opts.styled = ColorsEnabled()

			out := cmd.OutOrStdout()
			return OutputJSON(out, g.json, "render", func() (interface{}, error) {
				segs := segment.Parse(text).NonBlank()
				if !g.json {
					_, err := io.WriteString(out, renderText(text, segs, opts))
					return nil, err
				}
				return segmentData(segs), nil
			})
		},
	}
	cmd.Flags().BoolVar(&opts.full, "full", false, "show code in full instead of cards")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "wrap width (default terminal width)")
	return cmd
}

// readInput reads the named file, or r when no file is given or it is "-".
func readInput(r io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// renderText renders segs either as the chat shows them or as plain text.
func renderText(text string, segs []segment.Segment, opts renderOptions) string {
	if !opts.styled {
		return renderPlain(segs)
	}

	theme := styles.NewTheme("auto")
	md := components.NewMarkdown(theme.GlamourStyle())

	if !opts.full {
		dm, _ := render.NewRenderer().Render(text, false, renderMessageID, "")
		sm := components.NewStructuredMessage(dm, md, theme)
		sm.Width = opts.width
		return sm.Render().Text + "\n"
	}

	var parts []string
	for _, seg := range segs {
		if !seg.IsCode() {
			parts = append(parts, md.Render(seg.Content, opts.width))
			continue
		}
		block := components.NewCodeBlock(seg.Language, seg.Content, theme)
		block.MaxWidth = opts.width
		parts = append(parts, TitleStyle.Render(codeTitle(seg)), block.Render())
	}
	return strings.Join(parts, "\n") + "\n"
}

// renderPlain prints markdown as is and code under a title line.
func renderPlain(segs []segment.Segment) string {
	var sb strings.Builder
	for i, seg := range segs {
		if i > 0 {
			sb.WriteString("\n")
		}
		if seg.IsCode() {
			sb.WriteString(codeTitle(seg))
			sb.WriteString("\n")
		}
		sb.WriteString(strings.TrimRight(seg.Content, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func codeTitle(seg segment.Segment) string {
	return fmt.Sprintf("── %s · %s ──", render.CopyLabel, render.LinesLabel(render.CountLines(seg.Content)))
}

func segmentData(segs []segment.Segment) []SegmentData {
	out := make([]SegmentData, 0, len(segs))
	for _, seg := range segs {
		out = append(out, SegmentData{
			Type:     string(seg.Type),
			Language: seg.Language,
			Lines:    render.CountLines(seg.Content),
			Content:  seg.Content,
		})
	}
	return out
}
