// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompts assembles the system prompt sent with every generation.
//
// The prompt is fixed instructions for writing a single-file React app,
// followed by reference documentation for the libraries the app may use,
// then the session's optional user prompt. Reference docs are fetched once
// per URL and cached.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/vibes-tui/internal/storage"
)

// DefaultStylePrompt is the vibe used when a session has none.
const DefaultStylePrompt = "DIY zine"

// ResponseFormat lists what a reply is expected to contain.
var ResponseFormat = struct {
	Structure []string
}{
	Structure: []string{
		"Brief explanation",
		"Component code with proper Fireproof integration",
		"Real-time updates",
		"Data persistence",
	},
}

// maxConcurrentFetches bounds parallel doc downloads.
const maxConcurrentFetches = 4

// Builder produces system prompts.
type Builder struct {
	Sources []DocSource
	Fetcher Fetcher
	Cache   Cache

	// StylePrompt overrides DefaultStylePrompt for sessions without one.
	StylePrompt string
}

// NewBuilder returns a Builder with an in-memory cache.
func NewBuilder(sources []DocSource, fetcher Fetcher) *Builder {
	return &Builder{
		Sources: sources,
		Fetcher: fetcher,
		Cache:   NewMemoryCache(0),
	}
}

// MakeBaseSystemPrompt builds the system prompt for a session. sess may be
// nil. The model name does not change the prompt today; it is logged.
//
// Any doc that cannot be fetched fails the whole call.
func (b *Builder) MakeBaseSystemPrompt(ctx context.Context, model string, sess *storage.Session) (string, error) {
	docs, err := b.loadDocs(ctx)
	if err != nil {
		return "", err
	}

	stylePrompt := b.StylePrompt
	if stylePrompt == "" {
		stylePrompt = DefaultStylePrompt
	}
	userPrompt := ""
	if sess != nil {
		if sess.StylePrompt != "" {
			stylePrompt = sess.StylePrompt
		}
		userPrompt = sess.UserPrompt
	}

	var llmsTxt strings.Builder
	for i, src := range b.Sources {
		fmt.Fprintf(&llmsTxt, "\n<%s>\n%s\n</%s>\n", src.Tag(), docs[i], src.Tag())
	}

	log.Debug().
		Str("model", model).
		Int("docs", len(b.Sources)).
		Str("style", stylePrompt).
		Msg("system prompt assembled")

	return render(stylePrompt, llmsTxt.String(), userPrompt), nil
}

// loadDocs returns the text of every source, in source order.
func (b *Builder) loadDocs(ctx context.Context) ([]string, error) {
	docs := make([]string, len(b.Sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, src := range b.Sources {
		g.Go(func() error {
			text, err := b.doc(ctx, src)
			if err != nil {
				return err
			}
			docs[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (b *Builder) doc(ctx context.Context, src DocSource) (string, error) {
	if b.Cache != nil {
		text, ok, err := b.Cache.Get(ctx, src.URL)
		if err != nil {
			// A broken cache only costs a refetch.
			log.Warn().Err(err).Str("url", src.URL).Msg("doc cache read failed")
		} else if ok {
			return text, nil
		}
	}

	if b.Fetcher == nil {
		return "", fmt.Errorf("no fetcher configured for %s", src.URL)
	}
	text, err := b.Fetcher.Fetch(ctx, src.URL)
	if err != nil {
		log.Error().Err(err).Str("label", src.Label).Msg("failed to fetch reference docs")
		return "", fmt.Errorf("load %s docs: %w", src.Label, err)
	}

	if b.Cache != nil {
		if err := b.Cache.Set(ctx, src.URL, text); err != nil {
			log.Warn().Err(err).Str("url", src.URL).Msg("doc cache write failed")
		}
	}
	return text, nil
}

func render(stylePrompt, llmsTxt, userPrompt string) string {
	var sb strings.Builder

	sb.WriteString("\nYou are an AI assistant tasked with creating React components. You should create components that:\n")
	for _, rule := range rules(stylePrompt) {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteByte('\n')
	}

	sb.WriteString("\n")
	sb.WriteString(llmsTxt)
	sb.WriteString("\n\n")

	if userPrompt != "" {
		sb.WriteString(userPrompt)
		sb.WriteString("\n\n")
	}

	sb.WriteString("IMPORTANT: You are working in one JavaScript file, use tailwind classes for styling.\n\n")
	sb.WriteString("Provide a title and brief explanation followed by the component code. " +
		"The component should demonstrate proper Fireproof integration with real-time updates and proper data persistence. " +
		"Follow it with a longer description of the app's purpose and detailed instructions how to use it (with occasional bold or italic for emphasis). " +
		"Then suggest some additional features that could be added to the app.\n\n")
	sb.WriteString("Begin the component with the import statements. Use react, use-fireproof, and call-ai:\n\n")
	sb.WriteString("```js\n")
	sb.WriteString("import React, { ... } from \"react\"\n")
	sb.WriteString("import { useFireproof } from \"use-fireproof\"\n")
	sb.WriteString("import { callAI } from \"call-ai\"\n")
	sb.WriteString("// other imports only when requested\n")
	sb.WriteString("```\n\n")

	return sb.String()
}

func rules(stylePrompt string) []string {
	return []string{
		"Use modern React practices and follow the rules of hooks",
		"Don't use any TypeScript, just use JavaScript",
		"Use Tailwind CSS for mobile-first accessible styling, have a " + stylePrompt + " vibe",
		"For dynamic components, like autocomplete, don't use external libraries, implement your own",
		"Avoid using external libraries unless they are essential for the component to function",
		"Always import the libraries you need at the top of the file",
		"Use Fireproof for data persistence",
		"Use `callAI` to fetch AI (set `stream: true` to enable streaming), use Structured JSON Outputs like this: " +
			"`callAI(prompt, { schema: { properties: { todos: { type: 'array', items: { type: 'string' } } } } })` " +
			"and save final responses as individual Fireproof documents.",
		"For file uploads use drag and drop and store using the `doc._files` API",
		"Don't try to generate png or base64 data, use placeholder image APIs instead",
		"Consider and potentially reuse/extend code from previous responses if relevant",
		"Always output the full component code, keep the explanation short and concise",
		"Keep your component file shorter than 99 lines of code",
		"In the UI, include a vivid description of the app's purpose and detailed instructions how to use it, in italic text.",
		"Include a \"Demo data\" button that adds a handful of documents to the database (maybe via AI or a mock api) to illustrate usage and schema",
	}
}
