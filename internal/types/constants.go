package types

import (
	"errors"
	"time"
)

const (
	// ServerName is the MCP implementation name advertised to clients
	ServerName = "HelpTemplateServer"

	// Version is the server and client version
	Version = "1.0.0"

	// DefaultAddr is the default listen address for the HTTP transport
	DefaultAddr = "0.0.0.0:3333"

	// DefaultServerURL is where the analyzer looks for a running server
	DefaultServerURL = "http://localhost:3333"

	// MCPPath is the streamable HTTP endpoint path
	MCPPath = "/mcp"

	// HealthPath is the liveness endpoint path
	HealthPath = "/healthz"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP transport
	DefaultShutdownTimeout = 10 * time.Second

	// UserAgent is the user agent string
	UserAgent = "finhelp-go/1.0.0"
)

// Transport errors
var (
	// ErrRateLimited is returned when rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout is returned on timeout
	ErrTimeout = errors.New("request timeout")

	// ErrNotFound is returned when resource not found
	ErrNotFound = errors.New("resource not found")

	// ErrServerError is returned for server errors
	ErrServerError = errors.New("server error")
)
