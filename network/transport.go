package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"

	"github.com/gorilla/websocket"
)

// Dial establishes a link to cfg.Address
// tcp:// frames over TCP (TLS when cfg.TLS is set), ws:// and wss:// use websocket
func Dial(ctx context.Context, cfg *Config) (Link, error) {
	u, err := url.Parse(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("dial %q: %w", cfg.Address, err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	switch u.Scheme {
	case "tcp", "tls":
		conn, err := dialStream(ctx, u.Host, u.Scheme == "tls", cfg)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", u.Host, err)
		}
		return NewStreamLink(conn, cfg.ReadBufferSize), nil

	case "ws", "wss":
		dialer := websocket.Dialer{
			HandshakeTimeout: cfg.ConnectTimeout,
			ReadBufferSize:   cfg.ReadBufferSize,
			WriteBufferSize:  cfg.WriteBufferSize,
			TLSClientConfig:  cfg.TLS,
		}
		conn, _, err := dialer.DialContext(ctx, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", u.String(), err)
		}
		return NewWebSocketLink(conn), nil

	default:
		return nil, fmt.Errorf("dial %q: unsupported scheme %q", cfg.Address, u.Scheme)
	}
}

// dialStream establishes a stream connection with optional TLS
func dialStream(ctx context.Context, addr string, forceTLS bool, cfg *Config) (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout: cfg.ConnectTimeout,
	}

	if cfg.TLS != nil || forceTLS {
		tlsCfg := cfg.TLS
		if tlsCfg == nil {
			tlsCfg = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		td := &tls.Dialer{NetDialer: dialer, Config: tlsCfg}
		return td.DialContext(ctx, "tcp", addr)
	}
	return dialer.DialContext(ctx, "tcp", addr)
}
