package repo

import (
	"context"
	"database/sql"

	"siakad/internal/apperrors"
	"siakad/internal/models"
)

type ProdiRepo struct{ DB *sql.DB }

func NewProdiRepo(db *sql.DB) *ProdiRepo { return &ProdiRepo{DB: db} }

func (r *ProdiRepo) Create(ctx context.Context, p *models.Prodi) error {
	q := `INSERT INTO prodi (nama) VALUES ($1) RETURNING id;`
	return r.DB.QueryRowContext(ctx, q, p.Nama).Scan(&p.ID)
}

func (r *ProdiRepo) GetAll(ctx context.Context) ([]models.Prodi, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, nama FROM prodi ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Prodi{}
	for rows.Next() {
		var p models.Prodi
		if err := rows.Scan(&p.ID, &p.Nama); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProdiRepo) GetByID(ctx context.Context, id int64) (*models.Prodi, error) {
	var p models.Prodi
	err := r.DB.QueryRowContext(ctx, `SELECT id, nama FROM prodi WHERE id=$1;`, id).
		Scan(&p.ID, &p.Nama)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("prodi with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProdiRepo) Update(ctx context.Context, p *models.Prodi) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE prodi SET nama=$2 WHERE id=$1;`, p.ID, p.Nama)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("prodi with id %d not found", p.ID)
	}
	return nil
}

func (r *ProdiRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM prodi WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("prodi with id %d not found", id)
	}
	return nil
}

// CountMahasiswa returns how many students reference the program.
func (r *ProdiRepo) CountMahasiswa(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM mahasiswa WHERE prodi_id=$1;`, id).Scan(&n)
	return n, err
}
