package alerts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"stockwatch/internal/cache"
)

// Handlers contains the HTTP handlers for the alert management API
type Handlers struct {
	store ConditionStore
	cache cache.Cache
	log   zerolog.Logger
}

// NewHandlers creates a new alert handlers instance
func NewHandlers(store ConditionStore, c cache.Cache, log zerolog.Logger) *Handlers {
	return &Handlers{
		store: store,
		cache: c,
		log:   log.With().Str("handler", "alerts").Logger(),
	}
}

// RegisterRoutes mounts the alert API on a router
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleHealth)
	r.Get("/alerts", h.HandleListTriggered)
	r.Get("/alert", h.HandleListConditions)
	r.Post("/alert", h.HandleCreateCondition)
	r.Delete("/alert", h.HandleDeleteCondition)
}

// HandleHealth confirms the service is running
// GET /
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Alert Management Service Running"))
}

// HandleListTriggered returns every live triggered alert from the cache.
// An entry expiring between enumeration and fetch is silently omitted.
// GET /alerts
func (h *Handlers) HandleListTriggered(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	keys, err := h.cache.Keys(ctx, cache.AlertPattern())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to enumerate triggered alerts")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	triggered := make([]TriggeredAlert, 0, len(keys))
	for _, key := range keys {
		payload, ok, err := h.cache.Get(ctx, key)
		if err != nil {
			h.log.Error().Err(err).Str("key", key).Msg("Failed to fetch triggered alert")
			h.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !ok {
			// Expired between Keys and Get
			continue
		}

		var alert TriggeredAlert
		if err := json.Unmarshal(payload, &alert); err != nil {
			h.log.Warn().Err(err).Str("key", key).Msg("Skipping undecodable cache entry")
			continue
		}
		triggered = append(triggered, alert)
	}

	h.log.Info().Int("count", len(triggered)).Msg("Retrieved triggered alerts")
	h.writeJSON(w, http.StatusOK, triggered)
}

// HandleListConditions returns every stored alert condition
// GET /alert
func (h *Handlers) HandleListConditions(w http.ResponseWriter, r *http.Request) {
	conditions, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list alert conditions")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Int("count", len(conditions)).Msg("Retrieved alert conditions")
	h.writeJSON(w, http.StatusOK, conditions)
}

// HandleCreateCondition stores a new alert condition
// POST /alert
func (h *Handlers) HandleCreateCondition(w http.ResponseWriter, r *http.Request) {
	var cond AlertCondition
	if err := json.NewDecoder(r.Body).Decode(&cond); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := cond.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Put(r.Context(), cond); err != nil {
		h.log.Error().Err(err).Str("alert_id", cond.AlertID).Msg("Failed to create alert condition")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Str("alert_id", cond.AlertID).Str("symbol", cond.StockSymbol).Msg("Created alert condition")
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Alert condition created",
		"alert":   cond,
	})
}

// HandleDeleteCondition removes an alert condition by alert_id
// DELETE /alert?alert_id=<id>
func (h *Handlers) HandleDeleteCondition(w http.ResponseWriter, r *http.Request) {
	alertID := r.URL.Query().Get("alert_id")
	if alertID == "" {
		h.log.Error().Msg("DELETE /alert called without alert_id")
		h.writeError(w, http.StatusBadRequest, "alert_id is required")
		return
	}

	if err := h.store.Delete(r.Context(), alertID); err != nil {
		h.log.Error().Err(err).Str("alert_id", alertID).Msg("Failed to delete alert condition")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Str("alert_id", alertID).Msg("Deleted alert condition")
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Alert condition deleted"})
}

// writeJSON writes a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes a JSON error response
func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
