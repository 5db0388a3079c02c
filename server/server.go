// Package server exposes the dosing engine over HTTP. It is a thin JSON
// adapter: parsing and presence checks happen here, clinical invariants in
// pk, rendering in pk/report.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/pkdose/pkdose/pk"
)

// New builds the HTTP handler around a configured engine.
func New(engine *pk.Engine, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/ranges", rangesHandler(engine))
		api.Post("/evaluate", evaluateHandler(engine, log))
	})

	return r
}
