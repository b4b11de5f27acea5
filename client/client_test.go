// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: client/client_test.go
// Summary: Client relay against a real server on a loopback listener.

package client_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/client"
	"github.com/framegrace/texelview/protocol"
	"github.com/framegrace/texelview/server"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/texel"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func markerApp(ctx context.Context, t *term.Terminal) error {
	w, h := t.Size()
	t.SetCell(w-1, h-1, texel.Cell{Ch: 'X', Attr: texel.MakeAttr(texel.White, texel.Red)})
	if err := t.Flush(); err != nil {
		return err
	}
	for {
		ev, ok, err := t.PollEvent(50 * time.Millisecond)
		if err != nil {
			return err
		}
		if ok && ev.IsKey(texel.KeyRune) && ev.Key.Rune == 'q' {
			return nil
		}
	}
}

type session struct {
	inW  *io.PipeWriter
	out  *syncBuffer
	done chan error
}

func connect(t *testing.T, ctx context.Context) *session {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srvCtx, stop := context.WithCancel(context.Background())
	t.Cleanup(stop)
	go func() { _ = server.NewServer("test", markerApp).Serve(srvCtx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	inR, inW := io.Pipe()
	s := &session{inW: inW, out: &syncBuffer{}, done: make(chan error, 1)}
	go func() {
		s.done <- client.Run(ctx, conn, inR, s.out, client.Options{Name: "test", Cols: 12, Rows: 3})
	}()
	require.Eventually(t, func() bool { return strings.Contains(s.out.String(), "X") }, 5*time.Second, 10*time.Millisecond)
	return s
}

func (s *session) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-s.done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("client did not return")
		return nil
	}
}

func TestRunRelaysUntilServerEnds(t *testing.T) {
	s := connect(t, context.Background())
	assert.Contains(t, s.out.String(), "\x1b[0;97;41mX", "marker drawn in the last cell")

	_, err := s.inW.Write([]byte("q"))
	require.NoError(t, err)
	require.NoError(t, s.wait(t))
	assert.Contains(t, s.out.String(), term.SeqExitAltScreen)
}

func TestInputEOFEndsSession(t *testing.T) {
	s := connect(t, context.Background())
	require.NoError(t, s.inW.Close())
	require.NoError(t, s.wait(t))
}

func TestCancelStopsClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := connect(t, ctx)
	cancel()
	assert.ErrorIs(t, s.wait(t), context.Canceled)
}

func TestHandshakeRejectsUnexpectedReply(t *testing.T) {
	clientEnd, serverEnd := net.Pipe()
	defer serverEnd.Close()
	go func() {
		pc := protocol.NewConn(serverEnd)
		if _, _, err := pc.Receive(); err != nil {
			return
		}
		_ = pc.SendOutput([]byte("too early"))
	}()
	err := client.Run(context.Background(), clientEnd, strings.NewReader(""), io.Discard, client.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handshake")
}

func TestFormatUUID(t *testing.T) {
	id := [16]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}
	assert.Equal(t, "12345678-9abc-def0-0123-456789abcdef", client.FormatUUID(id))
}
