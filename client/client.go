// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: client/client.go
// Summary: Thin remote client: forwards raw input and resizes, writes output.
// Usage: client.Run(ctx, conn, os.Stdin, os.Stdout, client.Options{Name: "texelview"}).
// Notes: All rendering happens on the server; the client only relays bytes.

package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"log"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/framegrace/texelview/protocol"
)

var (
	errUnexpectedMessage = errors.New("client: unexpected message type")
	errDisconnected      = errors.New("client: server disconnected")
)

// ServerError is returned when the server reports a protocol error.
type ServerError struct {
	Code    uint16
	Message string
}

func (e *ServerError) Error() string {
	return "client: server error: " + e.Message
}

// Options tune a client run.
type Options struct {
	Name string
	// Cols and Rows are reported when out is not a terminal.
	Cols, Rows   int
	PingInterval time.Duration
}

const (
	defaultCols         = 80
	defaultRows         = 24
	defaultPingInterval = 5 * time.Second
	readChunk           = 4096
)

// Run performs the handshake on conn and relays until the server ends the
// session or ctx is cancelled. When in is a terminal it is switched to raw
// mode for the duration. conn is closed on return.
func Run(ctx context.Context, conn net.Conn, in io.Reader, out io.Writer, opts Options) error {
	defer conn.Close()
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}

	if fd, ok := terminalFd(in); ok {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return errors.Wrap(err, "raw mode")
		}
		defer func() { _ = term.Restore(fd, state) }()
	}

	pc := protocol.NewConn(conn)
	if err := handshake(pc, opts, out); err != nil {
		return errors.Wrap(err, "handshake")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return outputPump(pc, out) })
	g.Go(func() error { return pingLoop(gctx, pc, opts.PingInterval) })
	g.Go(func() error {
		<-gctx.Done()
		_ = conn.Close()
		return nil
	})
	if fd, ok := terminalFd(out); ok {
		g.Go(func() error { return resizePump(gctx, pc, fd) })
	}
	// Reads from in cannot be interrupted, so the input pump is not waited on.
	go inputPump(pc, in)

	err := g.Wait()
	switch {
	case errors.Is(err, errDisconnected):
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return err
}

func handshake(pc *protocol.Conn, opts Options, out io.Writer) error {
	cols, rows := opts.Cols, opts.Rows
	if fd, ok := terminalFd(out); ok {
		if w, h, err := term.GetSize(fd); err == nil {
			cols, rows = w, h
		}
	}
	if cols <= 0 || rows <= 0 {
		cols, rows = defaultCols, defaultRows
	}
	hello := protocol.Hello{
		ClientName:   opts.Name,
		Capabilities: protocol.CapMouse | protocol.CapUnicode | protocol.CapAltScreen | protocol.CapColor16,
		Cols:         uint16(cols),
		Rows:         uint16(rows),
	}
	if err := pc.SendHello(hello); err != nil {
		return err
	}
	hdr, payload, err := pc.Receive()
	if err != nil {
		return err
	}
	if hdr.Type != protocol.MsgWelcome {
		return errUnexpectedMessage
	}
	welcome, err := protocol.DecodeWelcome(payload)
	if err != nil {
		return err
	}
	pc.SetSession(welcome.SessionID)
	debugLog.Printf("joined %s session %s", welcome.ServerName, FormatUUID(welcome.SessionID))
	return nil
}

func outputPump(pc *protocol.Conn, out io.Writer) error {
	for {
		hdr, payload, err := pc.Receive()
		if err != nil {
			return errors.Wrap(err, "receive")
		}
		switch hdr.Type {
		case protocol.MsgOutput:
			o, err := protocol.DecodeOutput(payload)
			if err != nil {
				return errors.Wrap(err, "decode output")
			}
			if _, err := out.Write(o.Data); err != nil {
				return errors.Wrap(err, "write output")
			}
		case protocol.MsgDisconnect:
			d, _ := protocol.DecodeDisconnect(payload)
			debugLog.Printf("server closed session: reason=%d %s", d.ReasonCode, d.Message)
			return errDisconnected
		case protocol.MsgError:
			e, err := protocol.DecodeErrorFrame(payload)
			if err != nil {
				return errors.Wrap(err, "decode error frame")
			}
			return &ServerError{Code: e.Code, Message: e.Message}
		case protocol.MsgPong:
		default:
			debugLog.Printf("ignoring %s frame", hdr.Type)
		}
	}
}

func inputPump(pc *protocol.Conn, in io.Reader) {
	buf := make([]byte, readChunk)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if sendErr := pc.SendInput(buf[:n]); sendErr != nil {
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				_ = pc.SendDisconnect(protocol.ReasonClientQuit, "input closed")
			} else {
				log.Printf("client: read input: %v", err)
			}
			return
		}
	}
}

func pingLoop(ctx context.Context, pc *protocol.Conn, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			payload, err := protocol.EncodePing(protocol.Ping{Timestamp: time.Now().UnixNano()})
			if err != nil {
				return err
			}
			if err := pc.Send(protocol.MsgPing, payload); err != nil {
				return errors.Wrap(err, "send ping")
			}
		}
	}
}

func resizePump(ctx context.Context, pc *protocol.Conn, fd int) error {
	changes, stop := notifyResize()
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			cols, rows, err := term.GetSize(fd)
			if err != nil || cols <= 0 || rows <= 0 {
				continue
			}
			if err := pc.SendResize(protocol.Resize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
				return errors.Wrap(err, "send resize")
			}
		}
	}
}

func terminalFd(v any) (int, bool) {
	f, ok := v.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// FormatUUID returns the session ID as a human readable string.
func FormatUUID(id [16]byte) string {
	var buf bytes.Buffer
	for i, b := range id {
		buf.WriteString(hex.EncodeToString([]byte{b}))
		switch i {
		case 3, 5, 7, 9:
			buf.WriteByte('-')
		}
	}
	return buf.String()
}
