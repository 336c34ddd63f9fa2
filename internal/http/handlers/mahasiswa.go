package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"siakad/internal/apperrors"
	"siakad/internal/blob"
	"siakad/internal/service"
	"siakad/internal/util/imgutil"
	"siakad/internal/util/response"
)

type MahasiswaHandler struct {
	Mahasiswa *service.MahasiswaService
	Photos    blob.Store
}

func (h *MahasiswaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMahasiswaInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	m, err := h.Mahasiswa.Create(ctx, req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	slog.Info("mahasiswa created", slog.Int64("id", m.ID), slog.String("nim", m.NIM))
	_ = response.WriteJSON(w, http.StatusCreated, m)
}

func (h *MahasiswaHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := service.ListMahasiswaQuery{
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if v := q.Get("prodi_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.WriteError(w, apperrors.InvalidFormat("prodi_id must be an integer"))
			return
		}
		query.ProdiID = &id
	}
	if v := q.Get("page"); v != "" {
		query.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		query.Limit, _ = strconv.Atoi(v)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, err := h.Mahasiswa.List(ctx, query)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	_ = response.WriteJSON(w, http.StatusOK, page)
}

func (h *MahasiswaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	m, err := h.Mahasiswa.Get(ctx, id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	_ = response.WriteJSON(w, http.StatusOK, m)
}

func (h *MahasiswaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.UpdateMahasiswaInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	m, err := h.Mahasiswa.Update(ctx, id, req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	slog.Info("mahasiswa updated", slog.Int64("id", id))
	_ = response.WriteJSON(w, http.StatusOK, m)
}

func (h *MahasiswaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	m, err := h.Mahasiswa.Delete(ctx, id)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	// blob cleanup is best effort; the record is already gone
	if m.Foto != nil {
		if err := h.Photos.Delete(ctx, *m.Foto); err != nil {
			slog.Warn("failed to delete photo blob", slog.String("error", err.Error()))
		}
	}

	slog.Info("mahasiswa deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

type fotoReq struct {
	Foto string `json:"foto" validate:"required"`
}

// UpdateFoto runs the photo pipeline: normalize the uploaded image, store
// the new blob, delete the previous one, then persist the new URL.
func (h *MahasiswaHandler) UpdateFoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req fotoReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	current, err := h.Mahasiswa.Get(ctx, id)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	data, err := imgutil.NormalizeBase64(req.Foto)
	if err != nil {
		response.WriteError(w, apperrors.InvalidFormat("foto must be a base64-encoded image"))
		return
	}

	url, err := h.Photos.Save(ctx, data)
	if err != nil {
		response.WriteError(w, apperrors.Internal(err, "failed to store foto"))
		return
	}

	// old blob goes away before the DB write, per the replace contract
	if current.Foto != nil {
		if err := h.Photos.Delete(ctx, *current.Foto); err != nil {
			slog.Warn("failed to delete old photo blob", slog.String("error", err.Error()))
		}
	}

	m, err := h.Mahasiswa.UpdateFoto(ctx, id, url)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	slog.Info("mahasiswa foto updated", slog.Int64("id", id))
	_ = response.WriteJSON(w, http.StatusOK, m)
}
