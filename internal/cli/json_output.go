// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - Machine-readable output for the vibes commands.
//
// Every non-interactive command accepts --json and then prints a single
// JSONResponse on stdout.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// JSONResponse is the response envelope shared by all commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is when the response was generated, RFC 3339
	Timestamp string `json:"timestamp"`

	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates an error response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes the response, indented, to w.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// OutputJSON runs handler and, in JSON mode, wraps its result or error in
// a JSONResponse written to w. Outside JSON mode the handler prints for
// itself.
func OutputJSON(w io.Writer, jsonMode bool, command string, handler func() (interface{}, error)) error {
	data, err := handler()
	if !jsonMode {
		return err
	}
	if err != nil {
		return writeJSONError(w, command, err)
	}
	return NewJSONResponse(command, data).Write(w)
}

// reportedError is an error whose JSON response has already been written.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func writeJSONError(w io.Writer, command string, err error) error {
	if werr := NewJSONErrorResponse(command, err).Write(w); werr != nil {
		return fmt.Errorf("%w (and writing the response failed: %v)", err, werr)
	}
	return reportedError{err}
}

// reportJSONErrors wraps the RunE of cmd and its children so that with
// --json an error returned before OutputJSON ran (config, store or input
// setup) still prints an error response.
func reportJSONErrors(cmd *cobra.Command, g *globalFlags) {
	for _, c := range cmd.Commands() {
		reportJSONErrors(c, g)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	name := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		err := run(c, args)
		if err == nil || !g.json {
			return err
		}
		var reported reportedError
		if errors.As(err, &reported) {
			return err
		}
		return writeJSONError(c.OutOrStdout(), name, err)
	}
}

// =============================================================================
// RESPONSE DATA
// =============================================================================

// SessionData is one session in `vibes sessions --json`.
type SessionData struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
}

// SegmentData is one segment in `vibes render --json`.
type SegmentData struct {
	Type     string `json:"type"`
	Language string `json:"language,omitempty"`
	Lines    int    `json:"lines"`
	Content  string `json:"content"`
}

// PromptData is the output of `vibes prompt --json`.
type PromptData struct {
	Model       string `json:"model"`
	SessionID   string `json:"session_id,omitempty"`
	StylePrompt string `json:"style_prompt"`
	Prompt      string `json:"prompt"`
}
