package handlers

import (
	"context"
	"net/http"
	"time"

	"siakad/internal/apperrors"
	"siakad/internal/http/middleware"
	"siakad/internal/service"
	"siakad/internal/util/response"
)

type UserHandler struct {
	Auth *service.AuthService
}

// Profile returns the authenticated user's own profile. The password hash
// is never serialized.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.WriteError(w, apperrors.Unauthorized("missing bearer token"))
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		response.WriteError(w, apperrors.Unauthorized("invalid token"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Auth.Profile(ctx, userID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	_ = response.WriteJSON(w, http.StatusOK, u)
}
