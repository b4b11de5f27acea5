// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/health.go
// Summary: Dialling and liveness checks against a session server.

package main

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
)

const defaultHealthTimeout = 2 * time.Second

func dial(ctx context.Context, network, address string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s %s", network, address)
	}
	return conn, nil
}

// checkServer reports whether something accepts connections at address
// within timeout. It does not start a session.
func checkServer(ctx context.Context, network, address string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn, err := dial(ctx, network, address)
	if err != nil {
		return err
	}
	return conn.Close()
}
