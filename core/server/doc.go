// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines the
// settings it needs (listen port, API key, farm name).
package server
