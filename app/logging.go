// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/logging.go
// Summary: Opt-in debug logging for the composite views.

package app

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "app: ", log.LstdFlags|log.Lmicroseconds)

// SetVerboseLogging toggles debug output for window and dialog lifecycle.
func SetVerboseLogging(enabled bool) {
	if enabled {
		debugLog.SetOutput(os.Stderr)
		return
	}
	debugLog.SetOutput(io.Discard)
}
