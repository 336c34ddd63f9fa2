package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"siakad/internal/apperrors"
	"siakad/internal/service"
	"siakad/internal/util/response"
)

type ProdiHandler struct {
	Prodi *service.ProdiService
}

type prodiReq struct {
	Nama string `json:"nama" validate:"required"`
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteError(w, apperrors.InvalidFormat("id must be an integer"))
		return 0, false
	}
	return id, true
}

func (h *ProdiHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req prodiReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Prodi.Create(ctx, req.Nama)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	_ = response.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProdiHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Prodi.GetAll(ctx)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	_ = response.WriteJSON(w, http.StatusOK, out)
}

func (h *ProdiHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Prodi.Get(ctx, id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	_ = response.WriteJSON(w, http.StatusOK, p)
}

func (h *ProdiHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req prodiReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Prodi.Update(ctx, id, req.Nama)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	_ = response.WriteJSON(w, http.StatusOK, p)
}

func (h *ProdiHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Prodi.Delete(ctx, id); err != nil {
		response.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
