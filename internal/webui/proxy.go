// Package webui is a thin request-forwarding layer in front of the
// portfolio and alert services. It adds CORS and parameter presence checks
// and otherwise passes responses through untouched.
package webui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Proxy forwards browser requests to the backend services.
type Proxy struct {
	client       *http.Client
	portfolioURL string
	alertsURL    string
	log          zerolog.Logger
}

// New creates a proxy over the two backend base URLs
func New(portfolioURL, alertsURL string, log zerolog.Logger) *Proxy {
	return &Proxy{
		client:       &http.Client{Timeout: 10 * time.Second},
		portfolioURL: portfolioURL,
		alertsURL:    alertsURL,
		log:          log.With().Str("component", "proxy").Logger(),
	}
}

// RegisterRoutes mounts the proxy API on a router
func (p *Proxy) RegisterRoutes(r chi.Router) {
	r.Get("/", p.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", p.handlePortfolio)
		r.Post("/portfolio", p.handlePortfolio)
		r.Put("/portfolio", p.handlePortfolioByID)
		r.Delete("/portfolio", p.handlePortfolioByID)

		r.Get("/alerts", p.handleAlerts)

		r.Get("/alert", p.handleAlert)
		r.Post("/alert", p.handleAlert)
		r.Delete("/alert", p.handleAlertDelete)
	})
}

// handleIndex confirms the service is running
// GET /
func (p *Proxy) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Web UI Running"))
}

// handlePortfolio forwards portfolio list/create requests
// GET|POST /api/portfolio
func (p *Proxy) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	p.forward(w, r, p.portfolioURL+"/portfolio", r.URL.RawQuery)
}

// handlePortfolioByID forwards update/delete requests; the portfolio_id
// query parameter selects the item
// PUT|DELETE /api/portfolio?portfolio_id=<id>
func (p *Proxy) handlePortfolioByID(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolio_id")
	if portfolioID == "" {
		p.writeError(w, http.StatusBadRequest, "portfolio_id is required")
		return
	}
	p.forward(w, r, p.portfolioURL+"/portfolio/"+url.PathEscape(portfolioID), "")
}

// handleAlerts forwards the triggered-alert listing
// GET /api/alerts
func (p *Proxy) handleAlerts(w http.ResponseWriter, r *http.Request) {
	p.forward(w, r, p.alertsURL+"/alerts", "")
}

// handleAlert forwards condition list/create requests
// GET|POST /api/alert
func (p *Proxy) handleAlert(w http.ResponseWriter, r *http.Request) {
	p.forward(w, r, p.alertsURL+"/alert", "")
}

// handleAlertDelete forwards condition deletion; alert_id is required
// DELETE /api/alert?alert_id=<id>
func (p *Proxy) handleAlertDelete(w http.ResponseWriter, r *http.Request) {
	alertID := r.URL.Query().Get("alert_id")
	if alertID == "" {
		p.writeError(w, http.StatusBadRequest, "alert_id is required")
		return
	}
	p.forward(w, r, p.alertsURL+"/alert", "alert_id="+url.QueryEscape(alertID))
}

// forward relays the request to a backend URL and copies the response back
func (p *Proxy) forward(w http.ResponseWriter, r *http.Request, target, rawQuery string) {
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		p.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error().Err(err).Str("target", target).Msg("Backend request failed")
		p.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		p.log.Error().Err(err).Str("target", target).Msg("Failed to relay response body")
	}
}

// writeError writes a JSON error response
func (p *Proxy) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
