// Package http mounts the service's endpoints on a chi router.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mjza/mra-core-sub001/internal/dataaccess"
	"github.com/mjza/mra-core-sub001/internal/platform/middleware"
	ratelimitservice "github.com/mjza/mra-core-sub001/internal/ratelimit/service"
)

type Server struct {
	facade   *dataaccess.Facade
	limiter  *ratelimitservice.Service
	resolver middleware.PrincipalResolver
	logger   *slog.Logger
}

func NewServer(facade *dataaccess.Facade, limiter *ratelimitservice.Service, resolver middleware.PrincipalResolver, logger *slog.Logger) *Server {
	return &Server{
		facade:   facade,
		limiter:  limiter,
		resolver: resolver,
		logger:   logger,
	}
}

// Router builds the full route tree. Every route family shares one rate
// limit scope, so GET/POST/PUT on the same resource draw from one budget.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.ClientMetadata)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.resolver, s.logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.limiter, "reference", s.logger))
			r.Get("/gender-types", s.handleGetGenderTypes)
			r.Get("/ticket-categories", s.handleGetTicketCategories)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.limiter, "geo", s.logger))
			r.Get("/countries", s.handleGetCountries)
			r.Get("/location", s.handleGetLocationData)
			r.Get("/address", s.handleGetAddressData)
			r.Get("/countries/{countryId}/states", s.handleGetStatesByCountry)
			r.Get("/countries/{countryId}/states/{stateId}/cities", s.handleGetCitiesByState)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.limiter, "user-details", s.logger))
			r.Get("/user-details/{userId}", s.handleGetUserDetails)
			r.Post("/user-details/{userId}", s.handleCreateUserDetails)
			r.Put("/user-details/{userId}", s.handleUpdateUserDetails)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.limiter, "audit-logs", s.logger))
			r.Get("/audit-logs", s.handleListAuditLogs)
			r.Post("/audit-logs", s.handleInsertAuditLog)
			r.Put("/audit-logs/{logId}", s.handleUpdateAuditLog)
			r.Delete("/audit-logs/{logId}", s.handleDeleteAuditLog)
		})
	})

	return r
}
