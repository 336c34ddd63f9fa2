package service

import (
	"context"
	"errors"
	"strings"

	"siakad/internal/apperrors"
	"siakad/internal/models"
	"siakad/internal/repo"
)

// MahasiswaService coordinates the multi-entity student writes. Every
// create/update/delete runs validation first, then a unit of work that
// commits all rows or none, then a re-read of the committed aggregate so
// callers always get a consistent hydrated view.
type MahasiswaService struct {
	Mahasiswa MahasiswaStore
	Prodi     ProdiStore
}

func NewMahasiswaService(mhs MahasiswaStore, prodi ProdiStore) *MahasiswaService {
	return &MahasiswaService{Mahasiswa: mhs, Prodi: prodi}
}

type AlamatCreateInput struct {
	Jalan    string `json:"jalan"`
	Kota     string `json:"kota"`
	Provinsi string `json:"provinsi"`
	KodePos  string `json:"kode_pos"`
}

type CreateMahasiswaInput struct {
	NIM     string            `json:"nim" validate:"required"`
	Nama    string            `json:"nama" validate:"required"`
	ProdiID int64             `json:"prodi_id" validate:"required"`
	Alamat  AlamatCreateInput `json:"alamat"`
}

// AlamatPatchInput merges field-wise into an existing address: absent
// fields survive, present fields overwrite (null clears to empty).
type AlamatPatchInput struct {
	Jalan    models.Optional[string] `json:"jalan"`
	Kota     models.Optional[string] `json:"kota"`
	Provinsi models.Optional[string] `json:"provinsi"`
	KodePos  models.Optional[string] `json:"kode_pos"`
}

// UpdateMahasiswaInput carries tri-state fields: an absent field is left
// untouched, an explicit null detaches or deletes, a value re-attaches or
// merges.
type UpdateMahasiswaInput struct {
	NIM     models.Optional[string]           `json:"nim"`
	Nama    models.Optional[string]           `json:"nama"`
	Foto    models.Optional[string]           `json:"foto"`
	ProdiID models.Optional[int64]            `json:"prodi_id"`
	Alamat  models.Optional[AlamatPatchInput] `json:"alamat"`
}

func mapMahasiswaWriteErr(err error) error {
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		return ae
	}
	if repo.IsUniqueViolation(err) {
		return apperrors.DuplicateKey("NIM is already in use")
	}
	if repo.IsForeignKeyViolation(err) {
		return apperrors.NotFound("referenced prodi not found")
	}
	return apperrors.Internal(err, "failed to persist mahasiswa")
}

func (s *MahasiswaService) Get(ctx context.Context, id int64) (*models.Mahasiswa, error) {
	m, err := s.Mahasiswa.GetByID(ctx, id)
	if err != nil {
		return nil, asAppError(err, "failed to load mahasiswa")
	}
	return m, nil
}

func (s *MahasiswaService) Create(ctx context.Context, in CreateMahasiswaInput) (*models.Mahasiswa, error) {
	kodePos, err := ValidateKodePos(in.Alamat.KodePos)
	if err != nil {
		return nil, err
	}

	taken, err := s.Mahasiswa.NIMTaken(ctx, in.NIM, 0)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to check NIM uniqueness")
	}
	if taken {
		return nil, apperrors.DuplicateKey("NIM %q is already in use", in.NIM)
	}

	prodi, err := s.Prodi.GetByID(ctx, in.ProdiID)
	if err != nil {
		return nil, asAppError(err, "failed to resolve prodi")
	}

	uow, err := s.Mahasiswa.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to begin transaction")
	}
	defer uow.Rollback() // no-op once committed

	m := &models.Mahasiswa{
		NIM:     in.NIM,
		Nama:    NormalizeNama(in.Nama),
		ProdiID: &prodi.ID,
	}
	if err := uow.InsertMahasiswa(ctx, m); err != nil {
		return nil, mapMahasiswaWriteErr(err)
	}

	alamat := &models.Alamat{
		Jalan:    in.Alamat.Jalan,
		Kota:     in.Alamat.Kota,
		Provinsi: in.Alamat.Provinsi,
		KodePos:  kodePos,
	}
	if err := uow.InsertAlamat(ctx, m.ID, alamat); err != nil {
		return nil, mapMahasiswaWriteErr(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, mapMahasiswaWriteErr(err)
	}

	// Re-read so the caller sees the committed aggregate, not the
	// in-memory graph.
	return s.Get(ctx, m.ID)
}

func (s *MahasiswaService) Update(ctx context.Context, id int64, in UpdateMahasiswaInput) (*models.Mahasiswa, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.NIM.Set && !in.NIM.Valid {
		return nil, apperrors.InvalidFormat("nim cannot be null")
	}
	if in.Nama.Set && !in.Nama.Valid {
		return nil, apperrors.InvalidFormat("nama cannot be null")
	}

	if in.NIM.Set && in.NIM.Value != existing.NIM {
		taken, err := s.Mahasiswa.NIMTaken(ctx, in.NIM.Value, id)
		if err != nil {
			return nil, apperrors.Internal(err, "failed to check NIM uniqueness")
		}
		if taken {
			return nil, apperrors.DuplicateKey("NIM %q is already in use", in.NIM.Value)
		}
	}

	var kodePos string
	if in.Alamat.Set && in.Alamat.Valid {
		p := in.Alamat.Value
		if p.KodePos.Set && p.KodePos.Valid {
			kodePos, err = ValidateKodePos(p.KodePos.Value)
			if err != nil {
				return nil, err
			}
		}
	}

	// Merge scalar fields onto a copy of the loaded aggregate.
	m := *existing
	if in.NIM.Set {
		m.NIM = in.NIM.Value
	}
	if in.Nama.Set {
		m.Nama = NormalizeNama(in.Nama.Value)
	}
	if in.Foto.Set {
		if in.Foto.Valid {
			foto := in.Foto.Value
			m.Foto = &foto
		} else {
			m.Foto = nil
		}
	}

	// Program reference: null detaches, a value must resolve.
	if in.ProdiID.Set {
		if in.ProdiID.Valid {
			prodi, err := s.Prodi.GetByID(ctx, in.ProdiID.Value)
			if err != nil {
				return nil, asAppError(err, "failed to resolve prodi")
			}
			m.ProdiID = &prodi.ID
			m.Prodi = prodi
		} else {
			m.ProdiID = nil
			m.Prodi = nil
		}
	}

	uow, err := s.Mahasiswa.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	if err := uow.UpdateMahasiswa(ctx, &m); err != nil {
		return nil, mapMahasiswaWriteErr(err)
	}

	// Owned address: null deletes the row, an object merges or creates.
	if in.Alamat.Set {
		switch {
		case !in.Alamat.Valid:
			if existing.Alamat != nil {
				if err := uow.DeleteAlamat(ctx, id); err != nil {
					return nil, mapMahasiswaWriteErr(err)
				}
			}
		case existing.Alamat != nil:
			merged := *existing.Alamat
			applyAlamatPatch(&merged, in.Alamat.Value, kodePos)
			if err := uow.UpdateAlamat(ctx, &merged); err != nil {
				return nil, mapMahasiswaWriteErr(err)
			}
		default:
			alamat := &models.Alamat{}
			applyAlamatPatch(alamat, in.Alamat.Value, kodePos)
			if err := uow.InsertAlamat(ctx, id, alamat); err != nil {
				return nil, mapMahasiswaWriteErr(err)
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, mapMahasiswaWriteErr(err)
	}

	return s.Get(ctx, id)
}

func applyAlamatPatch(a *models.Alamat, p AlamatPatchInput, kodePos string) {
	if p.Jalan.Set {
		a.Jalan = p.Jalan.Value
	}
	if p.Kota.Set {
		a.Kota = p.Kota.Value
	}
	if p.Provinsi.Set {
		a.Provinsi = p.Provinsi.Value
	}
	if p.KodePos.Set {
		a.KodePos = kodePos // already validated and stripped; "" on null
	}
}

// Delete removes the student and its owned address in one transaction.
// The address delete is an explicit statement, not a storage cascade.
// The removed aggregate is returned so the caller can clean up the photo
// blob.
func (s *MahasiswaService) Delete(ctx context.Context, id int64) (*models.Mahasiswa, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	uow, err := s.Mahasiswa.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	if err := uow.DeleteAlamat(ctx, id); err != nil {
		return nil, mapMahasiswaWriteErr(err)
	}
	n, err := uow.DeleteMahasiswa(ctx, id)
	if err != nil {
		return nil, mapMahasiswaWriteErr(err)
	}
	if n == 0 {
		return nil, apperrors.NotFound("mahasiswa with id %d not found", id)
	}

	if err := uow.Commit(); err != nil {
		return nil, mapMahasiswaWriteErr(err)
	}
	return m, nil
}

// UpdateFoto is the narrow photo write. Deleting the previous blob is the
// caller's responsibility and happens before this call.
func (s *MahasiswaService) UpdateFoto(ctx context.Context, id int64, fotoURL string) (*models.Mahasiswa, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Mahasiswa.UpdateFoto(ctx, id, &fotoURL); err != nil {
		return nil, asAppError(err, "failed to update foto")
	}
	return s.Get(ctx, id)
}

type ListMahasiswaQuery struct {
	Search    string
	ProdiID   *int64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type MahasiswaPage struct {
	Data        []models.Mahasiswa `json:"data"`
	Count       int64              `json:"count"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
}

var validSortBy = map[string]bool{"nama": true, "nim": true, "id": true}

func (s *MahasiswaService) List(ctx context.Context, q ListMahasiswaQuery) (*MahasiswaPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if !validSortBy[q.SortBy] {
		q.SortBy = "nama"
	}
	order := "ASC"
	if strings.EqualFold(q.SortOrder, "DESC") {
		order = "DESC"
	}

	data, count, err := s.Mahasiswa.List(ctx, repo.ListFilter{
		Search:    q.Search,
		ProdiID:   q.ProdiID,
		SortBy:    q.SortBy,
		SortOrder: order,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list mahasiswa")
	}

	totalPages := int((count + int64(q.Limit) - 1) / int64(q.Limit))
	return &MahasiswaPage{
		Data:        data,
		Count:       count,
		CurrentPage: q.Page,
		TotalPages:  totalPages,
	}, nil
}
