// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

// Callbacks are the hooks a code segment fires when activated.
// Either may be nil.
type Callbacks struct {
	SetSelectedResponseID func(id string)
	SetMobilePreviewShown func(shown bool)
}

// Click handles activation of any code segment in the message. The message
// becomes the selected response; activating an already selected message
// also asks for the preview panel.
//
// IsSelected is read from the model as it was before this click, so the
// first click only selects and the second one opens the preview.
func (dm DisplayModel) Click(cb Callbacks) {
	if dm.MessageID != "" && cb.SetSelectedResponseID != nil {
		cb.SetSelectedResponseID(dm.MessageID)
	}
	if dm.IsSelected && cb.SetMobilePreviewShown != nil {
		cb.SetMobilePreviewShown(true)
	}
}

// Selection is a small holder for the selected response ID and the preview
// flag. It satisfies Callbacks for callers without their own state.
type Selection struct {
	SelectedResponseID string
	PreviewShown       bool
}

// Callbacks returns Callbacks bound to s.
func (s *Selection) Callbacks() Callbacks {
	return Callbacks{
		SetSelectedResponseID: func(id string) { s.SelectedResponseID = id },
		SetMobilePreviewShown: func(shown bool) { s.PreviewShown = shown },
	}
}
