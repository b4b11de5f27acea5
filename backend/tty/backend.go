// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/tty/backend.go
// Summary: term.Backend on a local terminal device.
// Usage: b, err := tty.Open(); t := term.New(b).
// Notes: tcell's Tty provides raw mode, resize notification and the window
//        size in cells and pixels. Encoding stays in package term; this
//        backend only moves bytes.

package tty

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/framegrace/texelview/term"
)

const (
	inputQueue = 64
	readChunk  = 4096
)

// Backend drives one terminal device.
type Backend struct {
	tty tcell.Tty

	input   chan []byte
	resized chan struct{}
	resumed chan struct{}

	out []byte

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	dead      chan struct{}
	err       error
}

// New wraps an already opened device.
func New(t tcell.Tty) *Backend {
	return &Backend{
		tty:     t,
		input:   make(chan []byte, inputQueue),
		resized: make(chan struct{}, 1),
		resumed: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		dead:    make(chan struct{}),
	}
}

// Init enters raw mode, switches to the alternate screen and enables mouse
// reporting.
func (b *Backend) Init() error {
	if err := b.tty.Start(); err != nil {
		return errors.Wrap(err, "start tty")
	}
	b.tty.NotifyResize(b.onResize)
	b.startOnce.Do(func() { go b.readLoop() })
	return b.write(term.SeqEnterAltScreen + term.SeqEnableMouse + term.SeqClearScreen)
}

// Cleanup restores the screen and the device mode and closes the device.
func (b *Backend) Cleanup() error {
	var err error
	b.stopOnce.Do(func() {
		restoreErr := b.write(term.SeqResetAttrs + term.SeqDisableMouse + term.SeqExitAltScreen + term.SeqShowCursor)
		close(b.stop)
		b.tty.NotifyResize(nil)
		if stopErr := b.tty.Stop(); stopErr != nil {
			err = errors.Wrap(stopErr, "stop tty")
			return
		}
		if closeErr := b.tty.Close(); closeErr != nil {
			err = errors.Wrap(closeErr, "close tty")
			return
		}
		err = restoreErr
	})
	return err
}

func (b *Backend) Size() (int, int, error) {
	ws, err := b.tty.WindowSize()
	if err != nil {
		return 0, 0, errors.Wrap(err, "window size")
	}
	return ws.Width, ws.Height, nil
}

// PollEvent waits up to timeout for input or a size change.
func (b *Backend) PollEvent(timeout time.Duration) (term.RawInput, bool, error) {
	if in, ok := b.ready(); ok {
		return in, true, nil
	}
	if timeout <= 0 {
		return term.RawInput{}, false, b.failure()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case p := <-b.input:
		return term.RawInput{Bytes: p}, true, nil
	case <-b.resized:
		return b.resize()
	case <-b.dead:
		if in, ok := b.ready(); ok {
			return in, true, nil
		}
		return term.RawInput{}, false, b.err
	case <-timer.C:
		return term.RawInput{}, false, nil
	}
}

func (b *Backend) ready() (term.RawInput, bool) {
	select {
	case <-b.resized:
		in, ok, _ := b.resize()
		return in, ok
	default:
	}
	select {
	case p := <-b.input:
		return term.RawInput{Bytes: p}, true
	default:
		return term.RawInput{}, false
	}
}

func (b *Backend) resize() (term.RawInput, bool, error) {
	cols, rows, err := b.Size()
	if err != nil {
		return term.RawInput{}, false, err
	}
	return term.RawInput{Resize: true, Cols: cols, Rows: rows}, true, nil
}

func (b *Backend) failure() error {
	select {
	case <-b.dead:
		return b.err
	default:
		return nil
	}
}

func (b *Backend) WriteRaw(p []byte) error {
	b.out = append(b.out, p...)
	return nil
}

// Flush writes everything buffered since the last flush in one call.
func (b *Backend) Flush() error {
	if len(b.out) == 0 {
		return nil
	}
	_, err := b.tty.Write(b.out)
	b.out = b.out[:0]
	return errors.Wrap(err, "write tty")
}

func (b *Backend) ShowCursor(x, y int) error {
	b.out = term.AppendCursorPos(b.out, x, y)
	b.out = append(b.out, term.SeqShowCursor...)
	return nil
}

func (b *Backend) HideCursor() error {
	b.out = append(b.out, term.SeqHideCursor...)
	return nil
}

func (b *Backend) Capabilities() term.Capabilities {
	return term.Capabilities{Mouse: true, Colors: 16, Unicode: utf8Locale(), AltScreen: true}
}

// CellAspectRatio uses the pixel size the terminal reports, if any.
func (b *Backend) CellAspectRatio() float64 {
	ws, err := b.tty.WindowSize()
	if err != nil {
		return 2
	}
	w, h := ws.CellDimensions()
	if w == 0 || h == 0 {
		return 2
	}
	return float64(h) / float64(w)
}

func (b *Backend) Bell() error {
	b.out = append(b.out, term.SeqBell...)
	return nil
}

func (b *Backend) ClearScreen() error {
	b.out = append(b.out, term.SeqClearScreen...)
	return nil
}

// Suspend hands the terminal back to the shell.
func (b *Backend) Suspend() error {
	if err := b.write(term.SeqResetAttrs + term.SeqDisableMouse + term.SeqExitAltScreen + term.SeqShowCursor); err != nil {
		return err
	}
	return errors.Wrap(b.tty.Stop(), "stop tty")
}

// Resume takes the terminal back after Suspend.
func (b *Backend) Resume() error {
	if err := b.tty.Start(); err != nil {
		return errors.Wrap(err, "start tty")
	}
	select {
	case b.resumed <- struct{}{}:
	default:
	}
	return b.write(term.SeqEnterAltScreen + term.SeqEnableMouse + term.SeqClearScreen)
}

func (b *Backend) write(seq string) error {
	_, err := b.tty.Write([]byte(seq))
	return errors.Wrap(err, "write tty")
}

func (b *Backend) onResize() {
	select {
	case b.resized <- struct{}{}:
	default:
	}
}

// readLoop copies device input into the queue. Stopping the device expires
// pending reads; the loop then waits for Resume or Cleanup.
func (b *Backend) readLoop() {
	buf := make([]byte, readChunk)
	for {
		n, err := b.tty.Read(buf)
		if n > 0 {
			p := append([]byte(nil), buf[:n]...)
			select {
			case b.input <- p:
			case <-b.stop:
				return
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			select {
			case <-b.stop:
				return
			case <-b.resumed:
				continue
			}
		}
		select {
		case <-b.stop:
			return
		default:
		}
		debugLog.Printf("read: %v", err)
		b.err = errors.Wrap(err, "read tty")
		close(b.dead)
		return
	}
}

func utf8Locale() bool {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(name); v != "" {
			v = strings.ToLower(v)
			return strings.Contains(v, "utf-8") || strings.Contains(v, "utf8")
		}
	}
	return false
}

var _ term.Backend = (*Backend)(nil)
