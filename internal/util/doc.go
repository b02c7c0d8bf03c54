// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared across the application.
//
// String Utilities:
//   - TruncateWidth, StringWidth, PadRight: column-aware text fitting
//   - FirstLine: first line of a multi-line string
//
// Conversion:
//   - IntToStr, Plural
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
