// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/tty/logging.go
// Summary: Opt-in debug logging for the local terminal backend.

package tty

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "tty: ", log.LstdFlags|log.Lmicroseconds)

// SetVerboseLogging toggles debug output. Point the standard logger at a
// file first; stderr usually shares the terminal being drawn.
func SetVerboseLogging(enabled bool) {
	if enabled {
		debugLog.SetOutput(os.Stderr)
		return
	}
	debugLog.SetOutput(io.Discard)
}
