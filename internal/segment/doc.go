// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package segment splits a streamed assistant reply into typed segments.
//
// A reply is markdown prose interleaved with triple-backtick fenced code
// blocks. Parse is re-run on the whole buffer every time a token arrives, so
// it is pure and never fails: any string, including a half-written fence,
// produces a well-formed Result.
//
// # Key Types
//
//   - Segment: one run of markdown or code, with the fence language for code
//   - Result: the ordered segments of one buffer
//
// # Usage
//
//	res := segment.Parse(msg.DisplayText())
//	for _, seg := range res.NonBlank() {
//	    if seg.Type == segment.Code {
//	        fmt.Println(seg.Language, len(seg.Content))
//	    }
//	}
package segment
