package stockdata

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the stock data service's health endpoint
func RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Stock Data Service Running"))
	})
}
