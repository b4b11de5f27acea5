// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/remote/backend.go
// Summary: term.Backend that renders to a client over the framed protocol.
// Usage: b := remote.New(protocol.NewConn(netConn), hello); t := term.New(b).
// Notes: A reader goroutine turns Input/Resize frames into RawInput and
//        answers pings. Output is buffered and sent as one frame per Flush.

package remote

import (
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/framegrace/texelview/protocol"
	"github.com/framegrace/texelview/term"
)

const inputQueue = 64

// Backend is one client's terminal seen through a connection.
type Backend struct {
	conn  *protocol.Conn
	caps  term.Capabilities
	input chan term.RawInput

	mu          sync.Mutex
	cols, rows  int
	pixelWidth  int
	pixelHeight int

	out []byte

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	dead      chan struct{}
	err       error
}

// New builds a backend for a client that introduced itself with hello.
func New(conn *protocol.Conn, hello protocol.Hello) *Backend {
	return &Backend{
		conn:  conn,
		input: make(chan term.RawInput, inputQueue),
		caps: term.Capabilities{
			Mouse:     hello.Capabilities&protocol.CapMouse != 0,
			Unicode:   hello.Capabilities&protocol.CapUnicode != 0,
			AltScreen: hello.Capabilities&protocol.CapAltScreen != 0,
			Colors:    16,
		},
		cols:        int(hello.Cols),
		rows:        int(hello.Rows),
		pixelWidth:  int(hello.PixelWidth),
		pixelHeight: int(hello.PixelHeight),
		stop:        make(chan struct{}),
		dead:        make(chan struct{}),
	}
}

// Init starts reading from the client and switches its screen into the
// states the client advertised.
func (b *Backend) Init() error {
	b.startOnce.Do(func() { go b.readLoop() })
	var seq []byte
	if b.caps.AltScreen {
		seq = append(seq, term.SeqEnterAltScreen...)
	}
	if b.caps.Mouse {
		seq = append(seq, term.SeqEnableMouse...)
	}
	seq = append(seq, term.SeqClearScreen...)
	return errors.Wrap(b.conn.SendOutput(seq), "send init sequence")
}

// Cleanup restores the client screen and says goodbye. The connection itself
// belongs to the caller.
func (b *Backend) Cleanup() error {
	var err error
	b.stopOnce.Do(func() {
		close(b.stop)
		seq := append(b.out[:0:0], term.SeqResetAttrs...)
		if b.caps.Mouse {
			seq = append(seq, term.SeqDisableMouse...)
		}
		if b.caps.AltScreen {
			seq = append(seq, term.SeqExitAltScreen...)
		}
		seq = append(seq, term.SeqShowCursor...)
		if sendErr := b.conn.SendOutput(seq); sendErr != nil {
			err = errors.Wrap(sendErr, "send cleanup sequence")
			return
		}
		err = errors.Wrap(b.conn.SendDisconnect(protocol.ReasonNormal, ""), "send disconnect")
	})
	return err
}

func (b *Backend) Size() (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cols, b.rows, nil
}

// PollEvent returns queued client input, waiting up to timeout. Once the
// connection fails, queued input is still drained before the error surfaces.
func (b *Backend) PollEvent(timeout time.Duration) (term.RawInput, bool, error) {
	select {
	case in := <-b.input:
		return in, true, nil
	default:
	}
	if timeout <= 0 {
		return term.RawInput{}, false, b.failure()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case in := <-b.input:
		return in, true, nil
	case <-b.dead:
		select {
		case in := <-b.input:
			return in, true, nil
		default:
		}
		return term.RawInput{}, false, b.err
	case <-timer.C:
		return term.RawInput{}, false, nil
	}
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

// Flush sends everything written since the last flush as one Output frame.
func (b *Backend) Flush() error {
	if len(b.out) == 0 {
		return nil
	}
	err := b.conn.SendOutput(b.out)
	b.out = b.out[:0]
	return errors.Wrap(err, "send output")
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

func (b *Backend) Capabilities() term.Capabilities { return b.caps }

// CellAspectRatio derives the cell shape from the client's pixel size when it
// reported one.
func (b *Backend) CellAspectRatio() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cols == 0 || b.rows == 0 || b.pixelWidth == 0 || b.pixelHeight == 0 {
		return 2
	}
	cellW := float64(b.pixelWidth) / float64(b.cols)
	cellH := float64(b.pixelHeight) / float64(b.rows)
	return cellH / cellW
}

func (b *Backend) Bell() error {
	b.out = append(b.out, term.SeqBell...)
	return nil
}

func (b *Backend) ClearScreen() error {
	b.out = append(b.out, term.SeqClearScreen...)
	return nil
}

// Suspend and Resume have no meaning for a remote client.
func (b *Backend) Suspend() error { return nil }
func (b *Backend) Resume() error  { return nil }

func (b *Backend) readLoop() {
	for {
		hdr, payload, err := b.conn.Receive()
		if err != nil {
			b.fail(errors.Wrap(err, "receive"))
			return
		}
		debugLog.Printf("recv %s seq=%d len=%d", hdr.Type, hdr.Sequence, len(payload))
		switch hdr.Type {
		case protocol.MsgInput:
			in, err := protocol.DecodeInput(payload)
			if err != nil {
				b.fail(errors.Wrap(err, "decode input"))
				return
			}
			if !b.push(term.RawInput{Bytes: in.Data}) {
				return
			}
		case protocol.MsgResize:
			r, err := protocol.DecodeResize(payload)
			if err != nil {
				b.fail(errors.Wrap(err, "decode resize"))
				return
			}
			b.mu.Lock()
			b.cols, b.rows = int(r.Cols), int(r.Rows)
			b.pixelWidth, b.pixelHeight = int(r.PixelWidth), int(r.PixelHeight)
			b.mu.Unlock()
			if !b.push(term.RawInput{Resize: true, Cols: int(r.Cols), Rows: int(r.Rows)}) {
				return
			}
		case protocol.MsgPing:
			if err := b.conn.Send(protocol.MsgPong, payload); err != nil {
				b.fail(errors.Wrap(err, "send pong"))
				return
			}
		case protocol.MsgDisconnect:
			d, _ := protocol.DecodeDisconnect(payload)
			debugLog.Printf("client disconnected: reason=%d %s", d.ReasonCode, d.Message)
			b.fail(io.EOF)
			return
		default:
			debugLog.Printf("ignoring %s frame", hdr.Type)
		}
	}
}

func (b *Backend) push(in term.RawInput) bool {
	select {
	case b.input <- in:
		return true
	case <-b.stop:
		return false
	}
}

func (b *Backend) fail(err error) {
	b.err = err
	close(b.dead)
}

var _ term.Backend = (*Backend)(nil)
