// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/jeranaias/vibes-tui/internal/util"
)

// SidebarTitle is the heading of the session list.
func SidebarTitle(count int, justFavorites bool) string {
	if justFavorites {
		if count == 0 {
			return "No Faves Yet"
		}
		return util.Plural(count, "Fave", "Faves")
	}
	if count == 0 {
		return "No Vibes Yet"
	}
	return util.Plural(count, "Vibe", "Vibes")
}

// EmptyListText is shown in place of an empty session list.
func EmptyListText(justFavorites bool) string {
	if justFavorites {
		return "No favorites yet"
	}
	return "No vibes saved yet"
}

// FilterLabel describes what toggling the favorites filter will do.
func FilterLabel(justFavorites bool) string {
	if justFavorites {
		return "Show all sessions"
	}
	return "Show favorites only"
}

// EncodeTitle turns a title into a URL path segment: lower case, runs of
// whitespace collapsed to a single dash, everything else percent-escaped.
func EncodeTitle(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsSpace(r) {
			if !dash {
				sb.WriteByte('-')
				dash = true
			}
			continue
		}
		dash = false
		sb.WriteRune(r)
	}
	return url.PathEscape(sb.String())
}

// SessionPath is the chat location of a session.
func SessionPath(id, title string) string {
	return "/chat/" + id + "/" + EncodeTitle(title)
}
