// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: server/server_test.go
// Summary: End-to-end session over a loopback listener.

package server_test

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/protocol"
	"github.com/framegrace/texelview/server"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/texel"
)

// quitOnQ paints a marker and waits for 'q'.
func quitOnQ(ctx context.Context, t *term.Terminal) error {
	t.SetCell(0, 0, texel.Cell{Ch: 'X', Attr: texel.MakeAttr(texel.Yellow, texel.Blue)})
	if err := t.Flush(); err != nil {
		return err
	}
	for ctx.Err() == nil {
		ev, ok, err := t.PollEvent(50 * time.Millisecond)
		if err != nil {
			return err
		}
		if ok && ev.IsKey(texel.KeyRune) && ev.Key.Rune == 'q' {
			return nil
		}
	}
	return ctx.Err()
}

func startServer(t *testing.T) (*server.Server, net.Addr, context.CancelFunc, chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := server.NewServer("texelview-test", quitOnQ)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()
	return srv, ln.Addr(), cancel, done
}

func dial(t *testing.T, addr net.Addr) (*protocol.Conn, net.Conn) {
	t.Helper()
	c, err := net.Dial(addr.Network(), addr.String())
	require.NoError(t, err)
	_ = c.SetDeadline(time.Now().Add(5 * time.Second))
	conn := protocol.NewConn(c)
	require.NoError(t, conn.SendHello(protocol.Hello{ClientName: "e2e", Cols: 10, Rows: 2}))
	hdr, _, err := conn.Receive()
	require.NoError(t, err)
	require.Equal(t, protocol.MsgWelcome, hdr.Type)
	return conn, c
}

// readUntil collects output frames until one satisfies stop or a non output
// frame arrives.
func readUntil(t *testing.T, conn *protocol.Conn, stop func(string) bool) (string, protocol.MessageType) {
	t.Helper()
	var sb strings.Builder
	for {
		hdr, payload, err := conn.Receive()
		require.NoError(t, err)
		if hdr.Type != protocol.MsgOutput {
			return sb.String(), hdr.Type
		}
		out, err := protocol.DecodeOutput(payload)
		require.NoError(t, err)
		sb.Write(out.Data)
		if stop(sb.String()) {
			return sb.String(), hdr.Type
		}
	}
}

func TestSessionRunsApplication(t *testing.T) {
	srv, addr, cancel, done := startServer(t)
	defer cancel()

	conn, c := dial(t, addr)
	defer c.Close()

	out, _ := readUntil(t, conn, func(s string) bool { return strings.Contains(s, "X") })
	assert.Contains(t, out, "\x1b[0;93;44mX")
	assert.Equal(t, 1, srv.Manager().ActiveSessions())

	require.NoError(t, conn.SendInput([]byte("q")))
	_, last := readUntil(t, conn, func(string) bool { return false })
	assert.Equal(t, protocol.MsgDisconnect, last)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Zero(t, srv.Manager().ActiveSessions())
}

func TestCancelClosesSessions(t *testing.T) {
	srv, addr, cancel, done := startServer(t)
	conn, c := dial(t, addr)
	defer c.Close()
	readUntil(t, conn, func(s string) bool { return strings.Contains(s, "X") })
	require.Eventually(t, func() bool { return srv.Manager().ActiveSessions() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Zero(t, srv.Manager().ActiveSessions())
}
