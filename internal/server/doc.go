// Package server runs the miniforum HTTP server and the background workers.
//
// It owns their lifecycle: startup, signal handling, and graceful shutdown
// bounded by the configured shutdown timeout.
package server
