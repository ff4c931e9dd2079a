package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/platform/httputil"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

// handleGetCountries handles GET /v1/countries.
func (s *Server) handleGetCountries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	where, err := filterFrom(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := s.facade.GetCountries(ctx, where, paginationFrom(r))
	if err != nil {
		s.logger.ErrorContext(ctx, "listing countries failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rows)
}

// handleGetLocationData handles GET /v1/location.
func (s *Server) handleGetLocationData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lon, lat := coordinatesFrom(r)

	location, err := s.facade.GetLocationData(ctx, lon, lat)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, location)
}

// handleGetAddressData handles GET /v1/address.
func (s *Server) handleGetAddressData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lon, lat := coordinatesFrom(r)

	addresses, err := s.facade.GetAddressData(ctx, lon, lat)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, addresses)
}

// handleGetStatesByCountry handles GET /v1/countries/{countryId}/states.
// The segment is either a numeric id or an ISO code.
func (s *Server) handleGetStatesByCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	country := chi.URLParam(r, "countryId")

	var err error
	var states any
	if id, numErr := strconv.ParseInt(country, 10, 64); numErr == nil {
		states, err = s.facade.GetStatesByCountryID(ctx, id)
	} else {
		states, err = s.facade.GetStatesByCountryCode(ctx, country)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, states)
}

// handleGetCitiesByState handles GET /v1/countries/{countryId}/states/{stateId}/cities.
func (s *Server) handleGetCitiesByState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	countryID, err := strconv.ParseInt(chi.URLParam(r, "countryId"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Country id must be a number."))
		return
	}
	stateID, err := strconv.ParseInt(chi.URLParam(r, "stateId"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "State id must be a number."))
		return
	}

	cities, err := s.facade.GetCitiesByState(ctx, countryID, stateID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cities)
}
