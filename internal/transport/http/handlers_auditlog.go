package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	auditservice "github.com/mjza/mra-core-sub001/internal/auditlog/service"
	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/platform/httputil"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

type insertAuditLogRequest struct {
	MethodRoute string          `json:"method_route"`
	Comments    string          `json:"comments"`
	Body        json.RawMessage `json:"body"`
}

type updateAuditLogRequest struct {
	Comments string `json:"comments"`
}

func logIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "logId"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, "Log id must be a number.")
	}
	return id, nil
}

// handleInsertAuditLog handles POST /v1/audit-logs.
func (s *Server) handleInsertAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[insertAuditLogRequest](w, r, s.logger)
	if !ok {
		return
	}

	entry, err := s.facade.InsertAuditLog(ctx, auditservice.InsertRequest{
		MethodRoute: req.MethodRoute,
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.RawQuery,
		Body:        []byte(req.Body),
		Comments:    req.Comments,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "inserting audit log failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// handleListAuditLogs handles GET /v1/audit-logs. created_atAfter and
// created_atBefore narrow the acting user's trail to a date range.
func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	entries, err := s.facade.ListAuditLogs(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "listing audit logs failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

// handleUpdateAuditLog handles PUT /v1/audit-logs/{logId}.
func (s *Server) handleUpdateAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	logID, err := logIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.Decode[updateAuditLogRequest](w, r, s.logger)
	if !ok {
		return
	}

	entry, err := s.facade.UpdateAuditLog(ctx, logID, req.Comments)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

// handleDeleteAuditLog handles DELETE /v1/audit-logs/{logId}.
func (s *Server) handleDeleteAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	logID, err := logIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := s.facade.DeleteAuditLog(ctx, logID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
