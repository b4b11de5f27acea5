// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: client/resize_windows.go
// Summary: No resize notification on Windows consoles.

//go:build windows

package client

import "os"

func notifyResize() (<-chan os.Signal, func()) {
	return nil, func() {}
}
