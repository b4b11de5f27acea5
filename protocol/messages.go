// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/messages.go
// Summary: Payload encoders and decoders for the session messages.
// Notes: All integers are little endian; strings carry a uint16 length prefix
//        and byte blobs a uint32 one.

package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var (
	errStringTooLong = errors.New("protocol: string exceeds 64KB limit")
	errPayloadShort  = errors.New("protocol: payload too short")
	errExtraBytes    = errors.New("protocol: payload has trailing data")
)

// Capability bits advertised by the client in Hello.
const (
	CapMouse uint32 = 1 << iota
	CapUnicode
	CapAltScreen
	CapColor16
)

// Hello initiates the handshake from client to server.
type Hello struct {
	ClientID     [16]byte
	ClientName   string
	Capabilities uint32
	Cols         uint16
	Rows         uint16
	PixelWidth   uint16
	PixelHeight  uint16
}

// Welcome is returned by the server acknowledging the handshake.
type Welcome struct {
	SessionID  [16]byte
	ServerName string
}

// Input carries raw bytes typed on the client terminal.
type Input struct {
	Data []byte
}

// Output carries encoded terminal output for the client to write verbatim.
type Output struct {
	Data []byte
}

// Resize reports a new client terminal size.
type Resize struct {
	Cols        uint16
	Rows        uint16
	PixelWidth  uint16
	PixelHeight uint16
}

// Disconnect informs the peer that the session is closing.
type Disconnect struct {
	ReasonCode uint16
	Message    string
}

// Disconnect reasons.
const (
	ReasonNormal uint16 = iota
	ReasonShutdown
	ReasonProtocolError
	ReasonClientQuit
)

// Ping/Pong keep the connection alive.
type Ping struct {
	Timestamp int64
}

type Pong struct {
	Timestamp int64
}

// ErrorFrame communicates protocol-level errors.
type ErrorFrame struct {
	Code    uint16
	Message string
}

func encodeString(buf *bytes.Buffer, value string) error {
	if len(value) > 0xFFFF {
		return errStringTooLong
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(len(value))); err != nil {
		return err
	}
	if len(value) > 0 {
		if _, err := buf.WriteString(value); err != nil {
			return err
		}
	}
	return nil
}

func decodeString(b []byte) (string, []byte, error) {
	if len(b) < 2 {
		return "", nil, errPayloadShort
	}
	length := int(binary.LittleEndian.Uint16(b[:2]))
	b = b[2:]
	if len(b) < length {
		return "", nil, errPayloadShort
	}
	return string(b[:length]), b[length:], nil
}

func encodeBlob(buf *bytes.Buffer, data []byte) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(data)))
	buf.Write(n[:])
	buf.Write(data)
}

func decodeBlob(b []byte) ([]byte, []byte, error) {
	if len(b) < 4 {
		return nil, nil, errPayloadShort
	}
	length := binary.LittleEndian.Uint32(b[:4])
	b = b[4:]
	if uint64(len(b)) < uint64(length) {
		return nil, nil, errPayloadShort
	}
	out := make([]byte, length)
	copy(out, b[:length])
	return out, b[length:], nil
}

func noTrailing(rest []byte) error {
	if len(rest) != 0 {
		return errExtraBytes
	}
	return nil
}

func EncodeHello(h Hello) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 32+len(h.ClientName)))
	buf.Write(h.ClientID[:])
	if err := encodeString(buf, h.ClientName); err != nil {
		return nil, err
	}
	fields := []any{h.Capabilities, h.Cols, h.Rows, h.PixelWidth, h.PixelHeight}
	for _, f := range fields {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func DecodeHello(b []byte) (Hello, error) {
	var h Hello
	if len(b) < 16 {
		return h, errPayloadShort
	}
	copy(h.ClientID[:], b[:16])
	name, rest, err := decodeString(b[16:])
	if err != nil {
		return h, err
	}
	h.ClientName = name
	if len(rest) < 12 {
		return h, errPayloadShort
	}
	h.Capabilities = binary.LittleEndian.Uint32(rest[0:4])
	h.Cols = binary.LittleEndian.Uint16(rest[4:6])
	h.Rows = binary.LittleEndian.Uint16(rest[6:8])
	h.PixelWidth = binary.LittleEndian.Uint16(rest[8:10])
	h.PixelHeight = binary.LittleEndian.Uint16(rest[10:12])
	return h, noTrailing(rest[12:])
}

func EncodeWelcome(w Welcome) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 32+len(w.ServerName)))
	buf.Write(w.SessionID[:])
	if err := encodeString(buf, w.ServerName); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeWelcome(b []byte) (Welcome, error) {
	var w Welcome
	if len(b) < 16 {
		return w, errPayloadShort
	}
	copy(w.SessionID[:], b[:16])
	name, rest, err := decodeString(b[16:])
	if err != nil {
		return w, err
	}
	w.ServerName = name
	return w, noTrailing(rest)
}

func EncodeInput(in Input) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4+len(in.Data)))
	encodeBlob(buf, in.Data)
	return buf.Bytes(), nil
}

func DecodeInput(b []byte) (Input, error) {
	data, rest, err := decodeBlob(b)
	if err != nil {
		return Input{}, err
	}
	return Input{Data: data}, noTrailing(rest)
}

func EncodeOutput(out Output) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4+len(out.Data)))
	encodeBlob(buf, out.Data)
	return buf.Bytes(), nil
}

func DecodeOutput(b []byte) (Output, error) {
	data, rest, err := decodeBlob(b)
	if err != nil {
		return Output{}, err
	}
	return Output{Data: data}, noTrailing(rest)
}

func EncodeResize(r Resize) ([]byte, error) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:2], r.Cols)
	binary.LittleEndian.PutUint16(buf[2:4], r.Rows)
	binary.LittleEndian.PutUint16(buf[4:6], r.PixelWidth)
	binary.LittleEndian.PutUint16(buf[6:8], r.PixelHeight)
	return buf, nil
}

func DecodeResize(b []byte) (Resize, error) {
	var r Resize
	if len(b) < 8 {
		return r, errPayloadShort
	}
	r.Cols = binary.LittleEndian.Uint16(b[0:2])
	r.Rows = binary.LittleEndian.Uint16(b[2:4])
	r.PixelWidth = binary.LittleEndian.Uint16(b[4:6])
	r.PixelHeight = binary.LittleEndian.Uint16(b[6:8])
	return r, noTrailing(b[8:])
}

func EncodeDisconnect(d Disconnect) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4+len(d.Message)))
	if err := binary.Write(buf, binary.LittleEndian, d.ReasonCode); err != nil {
		return nil, err
	}
	if err := encodeString(buf, d.Message); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeDisconnect(b []byte) (Disconnect, error) {
	var d Disconnect
	if len(b) < 2 {
		return d, errPayloadShort
	}
	d.ReasonCode = binary.LittleEndian.Uint16(b[:2])
	msg, rest, err := decodeString(b[2:])
	if err != nil {
		return d, err
	}
	d.Message = msg
	return d, noTrailing(rest)
}

func EncodePing(p Ping) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 8))
	if err := binary.Write(buf, binary.LittleEndian, p.Timestamp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodePing(b []byte) (Ping, error) {
	var p Ping
	if len(b) < 8 {
		return p, errPayloadShort
	}
	p.Timestamp = int64(binary.LittleEndian.Uint64(b[:8]))
	return p, nil
}

func EncodePong(p Pong) ([]byte, error) {
	return EncodePing(Ping{Timestamp: p.Timestamp})
}

func DecodePong(b []byte) (Pong, error) {
	ping, err := DecodePing(b)
	if err != nil {
		return Pong{}, err
	}
	return Pong{Timestamp: ping.Timestamp}, nil
}

func EncodeErrorFrame(e ErrorFrame) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4+len(e.Message)))
	if err := binary.Write(buf, binary.LittleEndian, e.Code); err != nil {
		return nil, err
	}
	if err := encodeString(buf, e.Message); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeErrorFrame(b []byte) (ErrorFrame, error) {
	var e ErrorFrame
	if len(b) < 2 {
		return e, errPayloadShort
	}
	e.Code = binary.LittleEndian.Uint16(b[:2])
	msg, _, err := decodeString(b[2:])
	if err != nil {
		return e, err
	}
	e.Message = msg
	return e, nil
}
