// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines
// the settings it reads: listen port, environment, body limit and the
// graceful shutdown deadline.
package server
