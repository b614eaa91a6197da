package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Env is the deployment environment (development, production).
	Env string `mapstructure:"env" default:"development"`
	// BodyLimitMB caps request bodies, image uploads included.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"8"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// BodyLimit returns the request body cap in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// ShutdownTimeout returns the graceful shutdown deadline.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
