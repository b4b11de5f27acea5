// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: server/logging.go
// Summary: Opt-in debug logging for the session server.

package server

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "server: ", log.LstdFlags)

// SetVerboseLogging toggles verbose server logging.
// When disabled (default), debug output is discarded.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}
