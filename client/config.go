package client

import "fmt"

// DefaultRPCPort is the port a Tendermint node serves RPC on unless told
// otherwise.
const DefaultRPCPort = 26657

// Config holds the connection parameters for a node. It is immutable once the
// client has been constructed from it.
type Config struct {
	// Scheme is "http" or "https". Defaults to "http".
	Scheme string

	// Host is the node's address, without port. Defaults to "127.0.0.1".
	Host string

	// Port is the node's RPC port. Defaults to DefaultRPCPort.
	Port int
}

// DefaultConfig targets a node running on the local machine with the standard
// RPC port.
func DefaultConfig() Config {
	return Config{
		Scheme: "http",
		Host:   "127.0.0.1",
		Port:   DefaultRPCPort,
	}
}

// Remote renders the config as a remote address usable by New.
func (c Config) Remote() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	host := c.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := c.Port
	if port == 0 {
		port = DefaultRPCPort
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}
