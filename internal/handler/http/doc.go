// Package http implements the HTTP transport layer of the miniforum server.
//
// It exposes route wiring, request handlers, and middleware used by the JSON
// API. Cross-cutting concerns such as request tracing, access logging,
// metrics, compression, and session resolution are handled in this package
// before requests are delegated to the service layer.
package http
