package portfolio

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains the HTTP handlers for the portfolio API
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new portfolio handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// RegisterRoutes mounts the portfolio API on a router
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleHealth)
	r.Get("/portfolio", h.HandleList)
	r.Post("/portfolio", h.HandleCreate)
	r.Put("/portfolio/{portfolioID}", h.HandleUpdate)
	r.Delete("/portfolio/{portfolioID}", h.HandleDelete)
}

// HandleHealth confirms the service is running
// GET /
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Portfolio Management Service Running"))
}

// HandleList returns portfolio items with current prices, optionally
// filtered by user
// GET /portfolio?user_id=<id>
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	items, err := h.service.ListWithPrices(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list portfolios")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Int("count", len(items)).Str("user_id", userID).Msg("Retrieved portfolios")
	h.writeJSON(w, http.StatusOK, items)
}

// HandleCreate adds a new portfolio item with a generated portfolio_id
// POST /portfolio
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := item.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), item)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create portfolio item")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Portfolio item added",
		"portfolio": created,
	})
}

// HandleUpdate applies a partial update to a portfolio item
// PUT /portfolio/{portfolioID}
func (h *Handlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "portfolioID")

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := h.service.Update(r.Context(), portfolioID, fields); err != nil {
		h.log.Error().Err(err).Str("portfolio_id", portfolioID).Msg("Failed to update portfolio item")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Str("portfolio_id", portfolioID).Msg("Updated portfolio item")
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Portfolio item updated"})
}

// HandleDelete removes a portfolio item
// DELETE /portfolio/{portfolioID}
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "portfolioID")

	if err := h.service.Delete(r.Context(), portfolioID); err != nil {
		h.log.Error().Err(err).Str("portfolio_id", portfolioID).Msg("Failed to delete portfolio item")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Str("portfolio_id", portfolioID).Msg("Deleted portfolio item")
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Portfolio item deleted"})
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
