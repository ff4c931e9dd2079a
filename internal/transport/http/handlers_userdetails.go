package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	udmodels "github.com/mjza/mra-core-sub001/internal/userdetails/models"
	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/platform/httputil"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, "User id must be a number.")
	}
	return id, nil
}

// handleGetUserDetails handles GET /v1/user-details/{userId}. A user with
// no profile row still gets 200 with an identity-only body.
func (s *Server) handleGetUserDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	details, err := s.facade.GetUserDetails(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, details)
}

// handleCreateUserDetails handles POST /v1/user-details/{userId}.
func (s *Server) handleCreateUserDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	input, ok := httputil.Decode[udmodels.Input](w, r, s.logger)
	if !ok {
		return
	}

	details, err := s.facade.CreateUserDetails(ctx, userID, input)
	if err != nil {
		s.logger.WarnContext(ctx, "creating user details failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, details)
}

// handleUpdateUserDetails handles PUT /v1/user-details/{userId}.
func (s *Server) handleUpdateUserDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	input, ok := httputil.Decode[udmodels.Input](w, r, s.logger)
	if !ok {
		return
	}

	details, err := s.facade.UpdateUserDetails(ctx, userID, input)
	if err != nil {
		s.logger.WarnContext(ctx, "updating user details failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, details)
}
