// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: server/handshake.go
// Summary: Hello/Welcome negotiation that opens a session.

package server

import (
	"errors"
	"io"

	"github.com/framegrace/texelview/protocol"
)

var (
	errUnexpectedMessage = errors.New("server: unexpected message type")
	errEmptyTerminal     = errors.New("server: client reported an empty terminal")
)

// handleHandshake reads the client's Hello, registers a session and answers
// with Welcome. Frames sent afterwards carry the session id.
func handleHandshake(conn *protocol.Conn, closer io.Closer, mgr *Manager, name string) (*Session, error) {
	hdr, payload, err := conn.Receive()
	if err != nil {
		return nil, err
	}
	if hdr.Type != protocol.MsgHello {
		return nil, errUnexpectedMessage
	}
	hello, err := protocol.DecodeHello(payload)
	if err != nil {
		return nil, err
	}
	if hello.Cols == 0 || hello.Rows == 0 {
		return nil, errEmptyTerminal
	}

	session, err := mgr.NewSession(hello, closer)
	if err != nil {
		return nil, err
	}
	conn.SetSession(session.ID())
	if err := conn.SendWelcome(protocol.Welcome{SessionID: session.ID(), ServerName: name}); err != nil {
		mgr.Close(session.ID())
		return nil, err
	}
	return session, nil
}
