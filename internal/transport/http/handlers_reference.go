package http

import (
	"net/http"

	"github.com/mjza/mra-core-sub001/pkg/platform/httputil"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

// handleGetGenderTypes handles GET /v1/gender-types.
func (s *Server) handleGetGenderTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	where, err := filterFrom(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := s.facade.GetGenderTypes(ctx, where, paginationFrom(r))
	if err != nil {
		s.logger.ErrorContext(ctx, "listing gender types failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rows)
}

// handleGetTicketCategories handles GET /v1/ticket-categories.
func (s *Server) handleGetTicketCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	where, err := filterFrom(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := s.facade.GetTicketCategories(ctx, where, paginationFrom(r))
	if err != nil {
		s.logger.ErrorContext(ctx, "listing ticket categories failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rows)
}
