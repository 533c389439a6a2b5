package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"mlb-splits-service/internal/http/middleware"
	"mlb-splits-service/internal/logging"
)

// envelopeResponse is the reply shape on the messages endpoint.
type envelopeResponse struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, data any, logger *slog.Logger) {
	writeJSON(w, http.StatusOK, envelopeResponse{OK: true, Data: data}, logger)
}

// writeEnvelopeError answers 200: the error travels inside the envelope, the
// way a message bus reports failures.
func writeEnvelopeError(w http.ResponseWriter, code string, logger *slog.Logger) {
	writeJSON(w, http.StatusOK, envelopeResponse{OK: false, Error: code}, logger)
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method != method {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
		return false
	}
	return true
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
