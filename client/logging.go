// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: client/logging.go
// Summary: Opt-in debug logging for the remote client.

package client

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "client: ", log.LstdFlags)

// SetVerboseLogging toggles verbose client logging. The client usually owns
// the terminal, so callers should point log output at a file first.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}
