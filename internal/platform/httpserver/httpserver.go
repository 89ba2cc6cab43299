// Package httpserver builds the registry's HTTP server with its standard
// timeouts.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server for the registry API. The badge verify endpoint is
// hit by embedding sites, so slow-header clients are cut off early and idle
// keep-alive connections are bounded.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
