// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/logging.go
// Summary: Opt-in debug logging for the terminal front end.

package term

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "term: ", log.LstdFlags|log.Lmicroseconds)

// SetVerboseLogging toggles debug output for rendering and input decoding.
func SetVerboseLogging(enabled bool) {
	if enabled {
		debugLog.SetOutput(os.Stderr)
		return
	}
	debugLog.SetOutput(io.Discard)
}
