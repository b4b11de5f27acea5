// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/conn.go
// Summary: Sequenced frame reader/writer bound to one session.
// Usage: Shared by the server, the remote backend and the client.

package protocol

import (
	"io"
	"sync"
)

// Conn frames messages over a byte stream. Send is safe for concurrent use;
// Receive must be called from a single goroutine.
type Conn struct {
	rw io.ReadWriter

	writeMu  sync.Mutex
	session  [16]byte
	sequence uint64
}

// NewConn wraps rw. The session id starts zeroed until the handshake sets it.
func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{rw: rw}
}

// SetSession stamps subsequent frames with id.
func (c *Conn) SetSession(id [16]byte) {
	c.writeMu.Lock()
	c.session = id
	c.writeMu.Unlock()
}

// Session returns the id frames are stamped with.
func (c *Conn) Session() [16]byte {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.session
}

// Send writes one checksummed frame with the next sequence number.
func (c *Conn) Send(t MessageType, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.sequence++
	hdr := Header{
		Version:   Version,
		Type:      t,
		Flags:     FlagChecksum,
		SessionID: c.session,
		Sequence:  c.sequence,
	}
	return WriteMessage(c.rw, hdr, payload)
}

// Receive reads the next frame.
func (c *Conn) Receive() (Header, []byte, error) {
	return ReadMessage(c.rw)
}

// SendHello encodes and sends h.
func (c *Conn) SendHello(h Hello) error {
	payload, err := EncodeHello(h)
	if err != nil {
		return err
	}
	return c.Send(MsgHello, payload)
}

// SendWelcome encodes and sends w.
func (c *Conn) SendWelcome(w Welcome) error {
	payload, err := EncodeWelcome(w)
	if err != nil {
		return err
	}
	return c.Send(MsgWelcome, payload)
}

// SendInput sends raw terminal input.
func (c *Conn) SendInput(data []byte) error {
	payload, err := EncodeInput(Input{Data: data})
	if err != nil {
		return err
	}
	return c.Send(MsgInput, payload)
}

// SendOutput sends encoded terminal output.
func (c *Conn) SendOutput(data []byte) error {
	payload, err := EncodeOutput(Output{Data: data})
	if err != nil {
		return err
	}
	return c.Send(MsgOutput, payload)
}

// SendResize reports a new terminal size.
func (c *Conn) SendResize(r Resize) error {
	payload, err := EncodeResize(r)
	if err != nil {
		return err
	}
	return c.Send(MsgResize, payload)
}

// SendDisconnect tells the peer the session is ending.
func (c *Conn) SendDisconnect(reason uint16, message string) error {
	payload, err := EncodeDisconnect(Disconnect{ReasonCode: reason, Message: message})
	if err != nil {
		return err
	}
	return c.Send(MsgDisconnect, payload)
}
