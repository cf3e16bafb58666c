package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	accountHandler "github.com/lux2ube/Customer-service-sub002/internal/http/account"
	clientHandler "github.com/lux2ube/Customer-service-sub002/internal/http/client"
	ingestHandler "github.com/lux2ube/Customer-service-sub002/internal/http/ingest"
	ledgerHandler "github.com/lux2ube/Customer-service-sub002/internal/http/ledger"
	periodHandler "github.com/lux2ube/Customer-service-sub002/internal/http/period"
	recordHandler "github.com/lux2ube/Customer-service-sub002/internal/http/record"
	"github.com/lux2ube/Customer-service-sub002/internal/obs"
)

func New(
	accountsV1 *accountHandler.Handler,
	entriesV1 *ledgerHandler.Handler,
	recordsV1 *recordHandler.Handler,
	clientsV1 *clientHandler.Handler,
	ingestV1 *ingestHandler.Handler,
	periodV1 *periodHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(obs.Instrument)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Method(http.MethodGet, "/metrics", obs.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			accountsV1.Routes(r)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.Routes(r)
		})

		r.Route("/records", func(r chi.Router) {
			recordsV1.Routes(r)
		})

		r.Route("/clients", func(r chi.Router) {
			clientsV1.Routes(r)
		})

		r.Route("/ingest", ingestV1.Routes)

		r.Route("/period", func(r chi.Router) {
			periodV1.Routes(r)
		})
	})

	return router
}
