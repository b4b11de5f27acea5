// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/tty/open_other.go
// Summary: Platforms without a /dev/tty style device.

//go:build windows || plan9 || js || wasip1

package tty

import "github.com/pkg/errors"

var (
	ErrNotTerminal = errors.New("tty: stdin and stdout must be a terminal")
	errUnsupported = errors.New("tty: no terminal device on this platform")
)

func Open() (*Backend, error) { return nil, errUnsupported }

func OpenDevice(string) (*Backend, error) { return nil, errUnsupported }
