// Package handlers maps the message envelope and probe endpoints onto the
// resolution and splits services.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mlb-splits-service/internal/app/resolver"
	"mlb-splits-service/internal/app/splits"
	"mlb-splits-service/internal/cache"
	"mlb-splits-service/internal/domain"
	"mlb-splits-service/internal/logging"
)

// Message types accepted on the envelope endpoint.
const (
	MessageFetchSplits      = "fetchSplits"
	MessageClearPlayerCache = "clearPlayerCache"
	MessageClearAllCache    = "clearAllCache"
)

// Envelope error strings. Callers branch on these, so they are part of the
// wire contract.
const (
	ErrCodeNotFound    = "id_not_found"
	ErrCodeUnknownType = "unknown_message_type"
	ErrCodeMissingName = "missing_player_name"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the domain services.
type Handler struct {
	resolver *resolver.Resolver
	splits   *splits.Service
	store    cache.Store
	logger   *slog.Logger
	now      nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(res *resolver.Resolver, svc *splits.Service, store cache.Store, logger *slog.Logger) *Handler {
	return &Handler{
		resolver: res,
		splits:   svc,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// envelope is the request shape on the messages endpoint.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// playerPayload covers fetchSplits and clearPlayerCache payloads.
type playerPayload struct {
	ExternalID string `json:"externalId"`
	FullName   string `json:"fullName"`
	TeamAbbr   string `json:"teamAbbr"`
	Season     int    `json:"season"`
}

// Messages dispatches one message envelope. Every well-formed envelope is
// answered 200 with ok carrying success or failure; HTTP status codes are
// reserved for transport-level problems.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid message body", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	switch env.Type {
	case MessageFetchSplits:
		h.fetchSplits(w, r, env.Payload, logger)
	case MessageClearPlayerCache:
		h.clearPlayerCache(w, r, env.Payload, logger)
	case MessageClearAllCache:
		h.clearAllCache(w, r, logger)
	default:
		logging.Warn(logger, "unknown message type", slog.String("type", env.Type))
		writeEnvelopeError(w, ErrCodeUnknownType, logger)
	}
}

func (h *Handler) fetchSplits(w http.ResponseWriter, r *http.Request, raw json.RawMessage, logger *slog.Logger) {
	var payload playerPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid payload", h.logger)
			return
		}
	}
	if strings.TrimSpace(payload.FullName) == "" {
		writeEnvelopeError(w, ErrCodeMissingName, logger)
		return
	}

	ref := domain.PlayerReference{
		ExternalID: strings.TrimSpace(payload.ExternalID),
		FullName:   strings.TrimSpace(payload.FullName),
		TeamAbbr:   strings.TrimSpace(payload.TeamAbbr),
	}
	season := payload.Season
	if season == 0 {
		season = h.now().Year()
	}

	personID, err := h.resolver.Resolve(r.Context(), ref)
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			logging.Info(logger, "player not resolved",
				slog.String(logging.FieldPlayer, ref.FullName),
				slog.String(logging.FieldTeam, ref.TeamAbbr),
			)
			writeEnvelopeError(w, ErrCodeNotFound, logger)
			return
		}
		logging.Error(logger, "resolution failed", err, slog.String(logging.FieldPlayer, ref.FullName))
		writeEnvelopeError(w, err.Error(), logger)
		return
	}

	bundle, err := h.splits.Fetch(r.Context(), personID, season)
	if err != nil {
		logging.Error(logger, "splits fetch failed", err,
			slog.Int(logging.FieldPersonID, personID),
			slog.Int(logging.FieldSeason, season),
		)
		writeEnvelopeError(w, err.Error(), logger)
		return
	}

	logging.Info(logger, "splits served",
		slog.String(logging.FieldPlayer, ref.FullName),
		slog.Int(logging.FieldPersonID, personID),
		slog.Int(logging.FieldSeason, season),
	)
	writeEnvelope(w, bundle, logger)
}

// clearPlayerCache drops the identity mappings for one player so the next
// lookup resolves from scratch. Split data keys are left alone; they expire
// on their own and carry no identity risk.
func (h *Handler) clearPlayerCache(w http.ResponseWriter, r *http.Request, raw json.RawMessage, logger *slog.Logger) {
	var payload playerPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid payload", h.logger)
			return
		}
	}

	ctx := r.Context()
	if id := strings.TrimSpace(payload.ExternalID); id != "" {
		if err := h.store.Delete(ctx, cache.ExternalIDKey(id)); err != nil {
			logging.Warn(logger, "external id key delete failed", slog.Any("err", err))
		}
	}
	if name := strings.TrimSpace(payload.FullName); name != "" {
		if err := h.store.Delete(ctx, cache.NameTeamKey(name, payload.TeamAbbr)); err != nil {
			logging.Warn(logger, "name key delete failed", slog.Any("err", err))
		}
	}

	logging.Info(logger, "player cache cleared",
		slog.String(logging.FieldPlayer, payload.FullName),
		slog.String(logging.FieldTeam, payload.TeamAbbr),
	)
	writeEnvelope(w, nil, logger)
}

func (h *Handler) clearAllCache(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	if err := h.store.Clear(r.Context()); err != nil {
		logging.Error(logger, "cache clear failed", err)
		writeEnvelopeError(w, err.Error(), logger)
		return
	}
	logging.Info(logger, "cache cleared")
	writeJSON(w, http.StatusOK, envelopeResponse{OK: true, Message: "cache cleared"}, logger)
}
