// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/remote/logging.go
// Summary: Opt-in debug logging for streamed sessions.

package remote

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "remote: ", log.LstdFlags|log.Lmicroseconds)

// SetVerboseLogging toggles frame level logging.
func SetVerboseLogging(enabled bool) {
	if enabled {
		debugLog.SetOutput(os.Stderr)
		return
	}
	debugLog.SetOutput(io.Discard)
}
