package server

import (
	"fmt"
	"time"
)

// Config defines configuration options for the HTTP server.
type Config struct {
	// HideErrorDetails is a flag to hide error trace and details in the response.
	HideErrorDetails bool `yaml:"hide_error_details"`

	// Host address to bind the server to (required).
	Host string `yaml:"host" validate:"required"`

	// Port number to listen on (required).
	Port int `yaml:"port" validate:"required"`

	// ReadTimeout is a maximum duration for reading request headers and buffered bodies. Default is 5 seconds.
	// Streamed upload bodies are not bound by it.
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"required" default:"5s"`

	// WriteTimeout is a maximum duration before timing out writes of the response.
	// It must cover the longest upload, since the response is written after the body is consumed.
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"required" default:"1h"`

	// IdleTimeout is a maximum amount of time to wait for the next request. Default is 120 seconds.
	IdleTimeout time.Duration `yaml:"idle_timeout" validate:"required" default:"120s"`

	// HandleTimeout is a maximum duration for handling a single non-upload request. Default is 10 minutes,
	// which leaves room for folder renames over many keys.
	HandleTimeout time.Duration `yaml:"request_timeout" validate:"required" default:"10m"`

	// BodyLimit is the maximum size in bytes of a buffered request body. Default is 4MB.
	// Larger bodies are streamed to the handler.
	BodyLimit int `yaml:"body_limit" validate:"required" default:"4194304"`

	// CORSAllowOrigins is a comma separated list of origins allowed to call the API. Default allows all.
	CORSAllowOrigins string `yaml:"cors_allow_origins" default:"*"`
}

// Address returns the server's listen address in the form "host:port".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
