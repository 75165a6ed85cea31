package network

import (
	"crypto/tls"
	"time"

	"github.com/lixenwraith/blob-arena/config"
)

// Config holds network configuration
type Config struct {
	// Address is tcp://host:port, ws://host/path or wss://host/path
	Address string

	// Token is presented in the hello message; empty for anonymous sessions
	Token string

	// TLS configuration (nil = plaintext for tcp://, system roots for wss://)
	TLS *tls.Config

	// Timing
	ConnectTimeout    time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
	RecvQueueSize   int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:           "tcp://127.0.0.1:7777",
		ConnectTimeout:    5 * time.Second,
		WriteTimeout:      5 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		ReadBufferSize:    64 * 1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     256,
		RecvQueueSize:     256,
	}
}

// FromConfig maps the [network] section over the defaults
func FromConfig(n config.Network) *Config {
	cfg := DefaultConfig()
	if n.Address != "" {
		cfg.Address = n.Address
	}
	cfg.Token = n.Token
	if n.TLS {
		cfg.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if n.ConnectTimeoutMs > 0 {
		cfg.ConnectTimeout = time.Duration(n.ConnectTimeoutMs) * time.Millisecond
	}
	if n.WriteTimeoutMs > 0 {
		cfg.WriteTimeout = time.Duration(n.WriteTimeoutMs) * time.Millisecond
	}
	if n.HeartbeatMs > 0 {
		cfg.HeartbeatInterval = time.Duration(n.HeartbeatMs) * time.Millisecond
	}
	if n.SendQueueSize > 0 {
		cfg.SendQueueSize = n.SendQueueSize
	}
	if n.RecvQueueSize > 0 {
		cfg.RecvQueueSize = n.RecvQueueSize
	}
	return cfg
}
