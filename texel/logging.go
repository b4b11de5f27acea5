// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/logging.go
// Summary: Opt-in debug logging for dispatch and modal loops.

package texel

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "texel: ", log.LstdFlags|log.Lmicroseconds)

// SetVerboseLogging toggles debug output for the view engine.
func SetVerboseLogging(enabled bool) {
	if enabled {
		debugLog.SetOutput(os.Stderr)
		return
	}
	debugLog.SetOutput(io.Discard)
}
