// Package httpserver builds the process HTTP server with the timeouts every
// endpoint in this service should run under.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server for the given address and handler. The write
// timeout leaves headroom for the geolocation upstream's 10s budget.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
