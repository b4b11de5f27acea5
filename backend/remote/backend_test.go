// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/remote/backend_test.go
// Summary: Remote backend against an in-process client over net.Pipe.

package remote_test

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/backend/remote"
	"github.com/framegrace/texelview/protocol"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/texel"
)

type frame struct {
	hdr     protocol.Header
	payload []byte
}

// peer is the client end: it records every frame the backend sends.
type peer struct {
	conn   *protocol.Conn
	frames chan frame
}

func newPair(t *testing.T, hello protocol.Hello) (*remote.Backend, *peer) {
	t.Helper()
	serverEnd, clientEnd := net.Pipe()
	t.Cleanup(func() {
		_ = serverEnd.Close()
		_ = clientEnd.Close()
	})
	p := &peer{conn: protocol.NewConn(clientEnd), frames: make(chan frame, 64)}
	go func() {
		defer close(p.frames)
		for {
			hdr, payload, err := p.conn.Receive()
			if err != nil {
				return
			}
			p.frames <- frame{hdr, payload}
		}
	}()
	b := remote.New(protocol.NewConn(serverEnd), hello)
	return b, p
}

func (p *peer) next(t *testing.T) frame {
	t.Helper()
	select {
	case f, ok := <-p.frames:
		require.True(t, ok, "connection closed")
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no frame from backend")
		return frame{}
	}
}

func (p *peer) output(t *testing.T) string {
	t.Helper()
	f := p.next(t)
	require.Equal(t, protocol.MsgOutput, f.hdr.Type)
	out, err := protocol.DecodeOutput(f.payload)
	require.NoError(t, err)
	return string(out.Data)
}

var fullHello = protocol.Hello{
	ClientName:   "test",
	Capabilities: protocol.CapMouse | protocol.CapAltScreen | protocol.CapUnicode,
	Cols:         80,
	Rows:         24,
	PixelWidth:   800,
	PixelHeight:  480,
}

func TestInitSwitchesClientScreen(t *testing.T) {
	b, p := newPair(t, fullHello)
	require.NoError(t, b.Init())
	assert.Equal(t, term.SeqEnterAltScreen+term.SeqEnableMouse+term.SeqClearScreen, p.output(t))

	cols, rows, err := b.Size()
	require.NoError(t, err)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24, rows)
	assert.Equal(t, term.Capabilities{Mouse: true, Colors: 16, Unicode: true, AltScreen: true}, b.Capabilities())
	assert.InDelta(t, 2.0, b.CellAspectRatio(), 0.001)
}

func TestInitWithoutCapabilities(t *testing.T) {
	b, p := newPair(t, protocol.Hello{Cols: 10, Rows: 5})
	require.NoError(t, b.Init())
	assert.Equal(t, term.SeqClearScreen, p.output(t))
	assert.Equal(t, 2.0, b.CellAspectRatio())
}

func TestInputBecomesRawInput(t *testing.T) {
	b, p := newPair(t, fullHello)
	require.NoError(t, b.Init())
	p.output(t)

	require.NoError(t, p.conn.SendInput([]byte("\x1b[A")))
	in, ok, err := b.PollEvent(2 * time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("\x1b[A"), in.Bytes)
}

func TestResizeUpdatesSize(t *testing.T) {
	b, p := newPair(t, fullHello)
	require.NoError(t, b.Init())
	p.output(t)

	require.NoError(t, p.conn.SendResize(protocol.Resize{Cols: 100, Rows: 30, PixelWidth: 1000, PixelHeight: 900}))
	in, ok, err := b.PollEvent(2 * time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, term.RawInput{Resize: true, Cols: 100, Rows: 30}, in)

	cols, rows, _ := b.Size()
	assert.Equal(t, 100, cols)
	assert.Equal(t, 30, rows)
	assert.InDelta(t, 3.0, b.CellAspectRatio(), 0.001)
}

func TestFlushSendsOneFrame(t *testing.T) {
	b, p := newPair(t, fullHello)
	require.NoError(t, b.Init())
	p.output(t)

	require.NoError(t, b.Flush(), "nothing buffered")
	require.NoError(t, b.WriteRaw([]byte("ab")))
	require.NoError(t, b.WriteRaw([]byte("c")))
	require.NoError(t, b.ShowCursor(1, 2))
	require.NoError(t, b.Bell())
	require.NoError(t, b.Flush())
	assert.Equal(t, "abc\x1b[3;2H\x1b[?25h\a", p.output(t))

	require.NoError(t, b.HideCursor())
	require.NoError(t, b.Flush())
	assert.Equal(t, term.SeqHideCursor, p.output(t))
}

func TestPingIsAnswered(t *testing.T) {
	b, p := newPair(t, fullHello)
	require.NoError(t, b.Init())
	p.output(t)

	payload, err := protocol.EncodePing(protocol.Ping{Timestamp: 99})
	require.NoError(t, err)
	require.NoError(t, p.conn.Send(protocol.MsgPing, payload))

	f := p.next(t)
	require.Equal(t, protocol.MsgPong, f.hdr.Type)
	pong, err := protocol.DecodePong(f.payload)
	require.NoError(t, err)
	assert.Equal(t, int64(99), pong.Timestamp)
}

func TestPollTimesOut(t *testing.T) {
	b, p := newPair(t, fullHello)
	require.NoError(t, b.Init())
	p.output(t)

	_, ok, err := b.PollEvent(10 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDisconnectEndsPolling(t *testing.T) {
	b, p := newPair(t, fullHello)
	require.NoError(t, b.Init())
	p.output(t)

	require.NoError(t, p.conn.SendInput([]byte("q")))
	require.NoError(t, p.conn.SendDisconnect(protocol.ReasonClientQuit, "bye"))

	in, ok, err := b.PollEvent(2 * time.Second)
	require.NoError(t, err)
	require.True(t, ok, "input queued before the disconnect is still delivered")
	assert.Equal(t, []byte("q"), in.Bytes)

	_, ok, err = b.PollEvent(2 * time.Second)
	assert.False(t, ok)
	assert.Equal(t, io.EOF, errors.Cause(err))
}

func TestCleanupRestoresClient(t *testing.T) {
	b, p := newPair(t, fullHello)
	require.NoError(t, b.Init())
	p.output(t)

	require.NoError(t, b.Cleanup())
	assert.Equal(t, term.SeqResetAttrs+term.SeqDisableMouse+term.SeqExitAltScreen+term.SeqShowCursor, p.output(t))
	f := p.next(t)
	assert.Equal(t, protocol.MsgDisconnect, f.hdr.Type)
	require.NoError(t, b.Cleanup(), "second cleanup is a no-op")
}

func TestTerminalRendersThroughRemote(t *testing.T) {
	b, p := newPair(t, protocol.Hello{Cols: 4, Rows: 1})
	tm := term.New(b)
	require.NoError(t, tm.Init())
	p.output(t)

	tm.SetCell(0, 0, texel.Cell{Ch: 'h', Attr: texel.MakeAttr(texel.Black, texel.Green)})
	tm.SetCell(1, 0, texel.Cell{Ch: 'i', Attr: texel.MakeAttr(texel.Black, texel.Green)})
	require.NoError(t, tm.Flush())
	out := p.output(t)
	assert.Contains(t, out, "\x1b[0;30;42mhi")
	assert.Contains(t, out, term.SeqHideCursor)

	require.NoError(t, p.conn.SendInput([]byte("x")))
	ev, ok, err := tm.PollEvent(2 * time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, texel.NewRune('x', 0), ev)
}
