// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/theme.go
// Summary: Root palette overrides from the [palette] section.

package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/framegrace/texelview/texel"
)

// Theme applies the [palette] overrides to base. Each key names a root slot
// ("dialog.text") and each value reads "<fg> on <bg>". Invalid entries are
// reported together; the valid ones still apply.
func (c Config) Theme(base *texel.Theme) (*texel.Theme, error) {
	if base == nil {
		base = texel.DefaultTheme()
	}
	section := c.Section("palette")
	if len(section) == 0 {
		return base, nil
	}
	keys := make([]string, 0, len(section))
	for k := range section {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	overrides := make(map[int]texel.Attr, len(section))
	var bad []string
	for _, key := range keys {
		slot, ok := texel.RootSlot(key)
		if !ok {
			bad = append(bad, fmt.Sprintf("unknown slot %q", key))
			continue
		}
		value, _ := section[key].(string)
		attr, err := ParseAttr(value)
		if err != nil {
			bad = append(bad, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		overrides[slot] = attr
	}
	theme := base.WithRoot(overrides)
	if len(bad) > 0 {
		return theme, fmt.Errorf("palette: %s", strings.Join(bad, "; "))
	}
	return theme, nil
}

// ParseAttr reads "<fg> on <bg>".
func ParseAttr(s string) (texel.Attr, error) {
	fgName, bgName, ok := strings.Cut(strings.ToLower(s), " on ")
	if !ok {
		return 0, fmt.Errorf("%q is not \"<fg> on <bg>\"", s)
	}
	fg, ok := texel.ParseColor(strings.TrimSpace(fgName))
	if !ok {
		return 0, fmt.Errorf("unknown colour %q", fgName)
	}
	bg, ok := texel.ParseColor(strings.TrimSpace(bgName))
	if !ok {
		return 0, fmt.Errorf("unknown colour %q", bgName)
	}
	return texel.MakeAttr(fg, bg), nil
}
