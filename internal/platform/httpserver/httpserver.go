// Package httpserver builds the process's http.Server.
package httpserver

import (
	"net/http"
	"time"
)

// New returns the server serving the docshelf API. Header reads and idle
// keep-alives are bounded; no overall read or write timeout is set because
// document uploads and downloads stream at client speed.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
