// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: server/server.go
// Summary: Accept loop hosting one application per connected client.
// Usage: srv := server.NewServer("texelview", factory); srv.ListenAndServe(ctx, "unix", path).
// Notes: Cancelling the context closes the listener and every session.

package server

import (
	"context"
	"log"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/texelview/protocol"
	"github.com/framegrace/texelview/term"
)

const handshakeTimeout = 10 * time.Second

// AppFactory runs an application on a session's terminal and returns when
// the application ends. The terminal is initialised and closed by the server.
type AppFactory func(ctx context.Context, t *term.Terminal) error

// Server hosts remote sessions.
type Server struct {
	name     string
	manager  *Manager
	factory  AppFactory
	termOpts []term.Option
}

// NewServer builds a server whose sessions run factory. opts are applied to
// every session terminal.
func NewServer(name string, factory AppFactory, opts ...term.Option) *Server {
	return &Server{name: name, manager: NewManager(), factory: factory, termOpts: opts}
}

func (s *Server) Manager() *Manager {
	return s.manager
}

// ListenAndServe listens on network/addr and serves until ctx ends. A stale
// unix socket file is removed first.
func (s *Server) ListenAndServe(ctx context.Context, network, addr string) error {
	if network == "unix" {
		if err := os.RemoveAll(addr); err != nil {
			return errors.Wrap(err, "remove stale socket")
		}
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, network, addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s %s", network, addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or accepting fails.
// Session failures are logged and never stop the server.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		_ = ln.Close()
		s.manager.CloseAll()
		return nil
	})
	g.Go(func() error {
		for {
			c, err := ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return errors.Wrap(err, "accept")
			}
			g.Go(func() error {
				s.serveConn(gctx, c)
				return nil
			})
		}
	})
	return g.Wait()
}

func (s *Server) serveConn(ctx context.Context, c net.Conn) {
	defer c.Close()
	conn := protocol.NewConn(c)

	_ = c.SetDeadline(time.Now().Add(handshakeTimeout))
	session, err := handleHandshake(conn, c, s.manager, s.name)
	if err != nil {
		log.Printf("server: handshake from %s failed: %v", c.RemoteAddr(), err)
		return
	}
	_ = c.SetDeadline(time.Time{})
	defer s.manager.Close(session.ID())

	id := session.ID()
	debugLog.Printf("session %x started for %q", id[:4], session.ClientName())
	if err := session.run(ctx, conn, s.factory, s.termOpts); err != nil && !session.Closed() {
		log.Printf("server: session %x ended with error: %v", id[:4], err)
		return
	}
	debugLog.Printf("session %x ended", id[:4])
}
