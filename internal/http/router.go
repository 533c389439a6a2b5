// Package http assembles the service's routes.
package http

import (
	nethttp "net/http"

	"mlb-splits-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/v1/messages", handler.Messages)
	return mux
}
