// Package service holds the application core: the transactional student
// orchestrator, program CRUD, credential/identity handling, and the
// validators they share. Storage is consumed through narrow interfaces so
// the repo package stays swappable in tests.
package service

import (
	"context"
	"errors"

	"siakad/internal/apperrors"
	"siakad/internal/models"
	"siakad/internal/repo"
)

// MahasiswaStore is the persistence surface the student orchestrator needs.
type MahasiswaStore interface {
	BeginTx(ctx context.Context) (repo.UnitOfWork, error)
	GetByID(ctx context.Context, id int64) (*models.Mahasiswa, error)
	NIMTaken(ctx context.Context, nim string, excludeID int64) (bool, error)
	UpdateFoto(ctx context.Context, id int64, foto *string) error
	List(ctx context.Context, f repo.ListFilter) ([]models.Mahasiswa, int64, error)
}

type ProdiStore interface {
	Create(ctx context.Context, p *models.Prodi) error
	GetAll(ctx context.Context) ([]models.Prodi, error)
	GetByID(ctx context.Context, id int64) (*models.Prodi, error)
	Update(ctx context.Context, p *models.Prodi) error
	Delete(ctx context.Context, id int64) error
	CountMahasiswa(ctx context.Context, id int64) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// asAppError passes recognized domain errors through and hides everything
// else behind an internal failure with a safe message.
func asAppError(err error, message string) error {
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		return ae
	}
	return apperrors.Internal(err, message)
}
