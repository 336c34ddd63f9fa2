package service

import (
	"context"
	"strings"

	"siakad/internal/apperrors"
	"siakad/internal/models"
	"siakad/internal/repo"
)

type ProdiService struct {
	Prodi ProdiStore
}

func NewProdiService(prodi ProdiStore) *ProdiService {
	return &ProdiService{Prodi: prodi}
}

func (s *ProdiService) Create(ctx context.Context, nama string) (*models.Prodi, error) {
	p := &models.Prodi{Nama: strings.TrimSpace(nama)}
	if err := s.Prodi.Create(ctx, p); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, apperrors.DuplicateKey("prodi name %q already exists", p.Nama)
		}
		return nil, asAppError(err, "failed to create prodi")
	}
	return p, nil
}

func (s *ProdiService) GetAll(ctx context.Context) ([]models.Prodi, error) {
	out, err := s.Prodi.GetAll(ctx)
	if err != nil {
		return nil, asAppError(err, "failed to list prodi")
	}
	return out, nil
}

func (s *ProdiService) Get(ctx context.Context, id int64) (*models.Prodi, error) {
	p, err := s.Prodi.GetByID(ctx, id)
	if err != nil {
		return nil, asAppError(err, "failed to load prodi")
	}
	return p, nil
}

func (s *ProdiService) Update(ctx context.Context, id int64, nama string) (*models.Prodi, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Nama = strings.TrimSpace(nama)
	if err := s.Prodi.Update(ctx, p); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, apperrors.DuplicateKey("prodi name %q already exists", p.Nama)
		}
		return nil, asAppError(err, "failed to update prodi")
	}
	return p, nil
}

// Delete is restricted while students still reference the program. The
// pre-check gives the precise count; the FK constraint backstops races.
func (s *ProdiService) Delete(ctx context.Context, id int64) error {
	n, err := s.Prodi.CountMahasiswa(ctx, id)
	if err != nil {
		return asAppError(err, "failed to count referencing mahasiswa")
	}
	if n > 0 {
		return apperrors.Conflict("prodi with id %d is still referenced by %d mahasiswa", id, n)
	}
	if err := s.Prodi.Delete(ctx, id); err != nil {
		if repo.IsForeignKeyViolation(err) {
			return apperrors.Conflict("prodi with id %d is still referenced by mahasiswa", id)
		}
		return asAppError(err, "failed to delete prodi")
	}
	return nil
}
