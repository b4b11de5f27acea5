// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: server/session.go
// Summary: One connected client: its backend, terminal and application.
// Notes: Sessions share nothing; each owns its Terminal and backend.

package server

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/framegrace/texelview/backend/remote"
	"github.com/framegrace/texelview/protocol"
	"github.com/framegrace/texelview/term"
)

var (
	ErrSessionClosed = errors.New("server: session closed")
)

// Session ties a handshaken connection to the terminal an application draws on.
type Session struct {
	id      [16]byte
	hello   protocol.Hello
	started time.Time

	closer io.Closer

	mu       sync.Mutex
	terminal *term.Terminal
	closed   bool
}

func NewSession(id [16]byte, hello protocol.Hello, closer io.Closer) *Session {
	return &Session{id: id, hello: hello, closer: closer, started: time.Now()}
}

func (s *Session) ID() [16]byte {
	return s.id
}

// ClientName is the name the client gave in its Hello.
func (s *Session) ClientName() string {
	return s.hello.ClientName
}

func (s *Session) Started() time.Time {
	return s.started
}

// Terminal returns the session terminal once the application is running.
func (s *Session) Terminal() *term.Terminal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal
}

// run drives the application on a terminal backed by conn until the
// application returns or the connection fails.
func (s *Session) run(ctx context.Context, conn *protocol.Conn, factory AppFactory, opts []term.Option) error {
	tm := term.New(remote.New(conn, s.hello), opts...)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.terminal = tm
	s.mu.Unlock()

	if err := tm.Init(); err != nil {
		return err
	}
	appErr := factory(ctx, tm)
	if err := tm.Close(); err != nil && appErr == nil {
		debugLog.Printf("session %x cleanup: %v", s.id[:4], err)
	}
	return appErr
}

// Close drops the connection, which unblocks the application's event loop.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
