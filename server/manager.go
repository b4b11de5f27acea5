// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: server/manager.go
// Summary: Registry of active sessions.

package server

import (
	"crypto/rand"
	"errors"
	"io"
	"sync"

	"github.com/framegrace/texelview/protocol"
)

var (
	ErrSessionNotFound = errors.New("server: session not found")
)

// Manager tracks active sessions and coordinates creation/lookup.
type Manager struct {
	mu       sync.RWMutex
	sessions map[[16]byte]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[[16]byte]*Session)}
}

// NewSession registers a session for a client; closer is closed when the
// session is.
func (m *Manager) NewSession(hello protocol.Hello, closer io.Closer) (*Session, error) {
	var id [16]byte
	if _, err := rand.Read(id[:]); err != nil {
		return nil, err
	}
	session := NewSession(id, hello, closer)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = session
	return session, nil
}

func (m *Manager) Lookup(id [16]byte) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *Manager) Close(id [16]byte) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		session.Close()
	}
}

// CloseAll ends every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[[16]byte]*Session)
	m.mu.Unlock()
	for _, session := range sessions {
		session.Close()
	}
}

func (m *Manager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
