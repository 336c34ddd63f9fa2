// Package handlers contains one handler struct per resource. Handlers
// decode and validate the payload, call into the service layer, and write
// the JSON response; all domain rules live below them.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"siakad/internal/apperrors"
	"siakad/internal/service"
	"siakad/internal/util/response"
)

var validate = validator.New()

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.WriteError(w, apperrors.InvalidFormat("invalid json body"))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			_ = response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
			return false
		}
		response.WriteError(w, apperrors.InvalidFormat("invalid payload"))
		return false
	}
	return true
}

type AuthHandler struct {
	Auth *service.AuthService
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Auth.Register(ctx, req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	slog.Info("user registered", slog.Int64("id", res.User.ID))
	_ = response.WriteJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Auth.Login(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	_ = response.WriteJSON(w, http.StatusOK, res)
}
