package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/point-service/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса баллов.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/point", func(r chi.Router) {
		r.Get("/{id}", h.GetPoint)
		r.Get("/{id}/histories", h.GetHistories)

		r.Patch("/{id}/charge", h.Charge)
		r.Patch("/{id}/use", h.Use)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
