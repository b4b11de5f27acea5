// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/tty/open.go
// Summary: Opening the controlling terminal.

//go:build !windows && !plan9 && !js && !wasip1

package tty

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdin or stdout is redirected.
var ErrNotTerminal = errors.New("tty: stdin and stdout must be a terminal")

// Open returns a backend on the controlling terminal.
func Open() (*Backend, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}
	t, err := tcell.NewDevTty()
	if err != nil {
		return nil, errors.Wrap(err, "open /dev/tty")
	}
	return New(t), nil
}

// OpenDevice returns a backend on the named terminal device.
func OpenDevice(path string) (*Backend, error) {
	t, err := tcell.NewDevTtyFromDev(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return New(t), nil
}
