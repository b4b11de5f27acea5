// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/palette.go
// Summary: Fixed-depth colour resolution from a view's logical indices to attributes.
// Notes: Views never walk their ancestors; the owner kind tag picks the single
//        intermediate palette. A dialog nested in a dialog reuses the dialog level.

package texel

// Palette maps logical colour indices (1-based) to indices of the next stage.
type Palette []uint8

// OwnerKind selects the intermediate palette between a view and the root.
type OwnerKind uint8

const (
	// OwnerRoot views map straight into the root palette.
	OwnerRoot OwnerKind = iota
	OwnerWindow
	OwnerDialog
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerRoot:
		return "root"
	case OwnerWindow:
		return "window"
	case OwnerDialog:
		return "dialog"
	}
	return "unknown"
}

// Theme holds the concrete attributes and the intermediate palettes.
type Theme struct {
	// Root is indexed from 1; Root[0] is unused.
	Root         []Attr
	Intermediate map[OwnerKind]Palette
}

// Root palette slots.
const (
	ColorBackground = 1 + iota
	ColorStatusNormal
	ColorStatusHighlight
	ColorStatusDisabled

	// Window block.
	ColorWindowFramePassive
	ColorWindowFrameActive
	ColorWindowFrameIcon
	ColorWindowText
	ColorWindowHighlight

	// Dialog block.
	ColorDialogFramePassive
	ColorDialogFrameActive
	ColorDialogFrameIcon
	ColorDialogText
	ColorDialogLabel
	ColorDialogButtonNormal
	ColorDialogButtonDefault
	ColorDialogButtonSelected
	ColorDialogButtonDisabled
	ColorDialogButtonShortcut
	ColorDialogButtonShadow

	rootPaletteSize
)

var rootSlotNames = map[string]int{
	"background":             ColorBackground,
	"status.normal":          ColorStatusNormal,
	"status.highlight":       ColorStatusHighlight,
	"status.disabled":        ColorStatusDisabled,
	"window.frame.passive":   ColorWindowFramePassive,
	"window.frame.active":    ColorWindowFrameActive,
	"window.frame.icon":      ColorWindowFrameIcon,
	"window.text":            ColorWindowText,
	"window.highlight":       ColorWindowHighlight,
	"dialog.frame.passive":   ColorDialogFramePassive,
	"dialog.frame.active":    ColorDialogFrameActive,
	"dialog.frame.icon":      ColorDialogFrameIcon,
	"dialog.text":            ColorDialogText,
	"dialog.label":           ColorDialogLabel,
	"dialog.button.normal":   ColorDialogButtonNormal,
	"dialog.button.default":  ColorDialogButtonDefault,
	"dialog.button.focused":  ColorDialogButtonSelected,
	"dialog.button.disabled": ColorDialogButtonDisabled,
	"dialog.button.shortcut": ColorDialogButtonShortcut,
	"dialog.button.shadow":   ColorDialogButtonShadow,
}

// RootSlot maps a configuration name such as "dialog.text" to its root slot.
func RootSlot(name string) (int, bool) {
	slot, ok := rootSlotNames[name]
	return slot, ok
}

// DefaultTheme returns the stock blue-desktop colour set.
func DefaultTheme() *Theme {
	root := make([]Attr, rootPaletteSize)
	root[ColorBackground] = MakeAttr(Blue, LightGray)
	root[ColorStatusNormal] = MakeAttr(Black, LightGray)
	root[ColorStatusHighlight] = MakeAttr(Red, LightGray)
	root[ColorStatusDisabled] = MakeAttr(DarkGray, LightGray)

	root[ColorWindowFramePassive] = MakeAttr(LightGray, Blue)
	root[ColorWindowFrameActive] = MakeAttr(White, Blue)
	root[ColorWindowFrameIcon] = MakeAttr(LightGreen, Blue)
	root[ColorWindowText] = MakeAttr(Yellow, Blue)
	root[ColorWindowHighlight] = MakeAttr(Blue, LightGray)

	root[ColorDialogFramePassive] = MakeAttr(White, LightGray)
	root[ColorDialogFrameActive] = MakeAttr(White, LightGray)
	root[ColorDialogFrameIcon] = MakeAttr(LightGreen, LightGray)
	root[ColorDialogText] = MakeAttr(Black, LightGray)
	root[ColorDialogLabel] = MakeAttr(Yellow, LightGray)
	root[ColorDialogButtonNormal] = MakeAttr(Black, Green)
	root[ColorDialogButtonDefault] = MakeAttr(LightCyan, Green)
	root[ColorDialogButtonSelected] = MakeAttr(White, Green)
	root[ColorDialogButtonDisabled] = MakeAttr(DarkGray, LightGray)
	root[ColorDialogButtonShortcut] = MakeAttr(Yellow, Green)
	root[ColorDialogButtonShadow] = MakeAttr(Black, LightGray)

	return &Theme{
		Root: root,
		Intermediate: map[OwnerKind]Palette{
			OwnerWindow: windowPalette,
			OwnerDialog: dialogPalette,
		},
	}
}

// Frame, text and button slots shared by windows and dialogs. Views inside a
// window or dialog use these indices in their own palettes.
const (
	SlotFramePassive = 1 + iota
	SlotFrameActive
	SlotFrameIcon
	SlotText
	SlotHighlight
	SlotLabel
	SlotButtonNormal
	SlotButtonDefault
	SlotButtonSelected
	SlotButtonDisabled
	SlotButtonShortcut
	SlotButtonShadow
)

var windowPalette = Palette{
	ColorWindowFramePassive, ColorWindowFrameActive, ColorWindowFrameIcon,
	ColorWindowText, ColorWindowHighlight, ColorWindowHighlight,
	ColorWindowText, ColorWindowHighlight, ColorWindowHighlight,
	ColorWindowFramePassive, ColorWindowHighlight, ColorWindowFramePassive,
}

var dialogPalette = Palette{
	ColorDialogFramePassive, ColorDialogFrameActive, ColorDialogFrameIcon,
	ColorDialogText, ColorDialogLabel, ColorDialogLabel,
	ColorDialogButtonNormal, ColorDialogButtonDefault, ColorDialogButtonSelected,
	ColorDialogButtonDisabled, ColorDialogButtonShortcut, ColorDialogButtonShadow,
}

// Resolve maps idx through pal, then the intermediate palette of kind (if
// any), then the root palette. A missing stage yields ErrorAttr.
func (t *Theme) Resolve(kind OwnerKind, pal Palette, idx uint8) Attr {
	if t == nil {
		t = defaultTheme
	}
	if len(pal) > 0 {
		next, ok := lookup(pal, idx)
		if !ok {
			return ErrorAttr
		}
		idx = next
	}
	if mid, ok := t.Intermediate[kind]; ok && kind != OwnerRoot {
		next, ok := lookup(mid, idx)
		if !ok {
			return ErrorAttr
		}
		idx = next
	}
	if idx == 0 || int(idx) >= len(t.Root) {
		return ErrorAttr
	}
	return t.Root[idx]
}

// WithRoot returns a copy of t with the given root slots replaced.
func (t *Theme) WithRoot(overrides map[int]Attr) *Theme {
	out := &Theme{
		Root:         append([]Attr(nil), t.Root...),
		Intermediate: make(map[OwnerKind]Palette, len(t.Intermediate)),
	}
	for k, v := range t.Intermediate {
		out.Intermediate[k] = v
	}
	for slot, attr := range overrides {
		if slot > 0 && slot < len(out.Root) {
			out.Root[slot] = attr
		}
	}
	return out
}

func lookup(p Palette, idx uint8) (uint8, bool) {
	if idx == 0 || int(idx) > len(p) {
		return 0, false
	}
	v := p[idx-1]
	return v, v != 0
}

var defaultTheme = DefaultTheme()
