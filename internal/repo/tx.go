package repo

import (
	"context"

	"database/sql"

	"siakad/internal/models"
)

// UnitOfWork groups the writes of one logical student operation into a
// single atomic commit. Rollback after Commit is a no-op, so callers can
// unconditionally defer it to guarantee release on every exit path.
type UnitOfWork interface {
	InsertMahasiswa(ctx context.Context, m *models.Mahasiswa) error
	UpdateMahasiswa(ctx context.Context, m *models.Mahasiswa) error
	DeleteMahasiswa(ctx context.Context, id int64) (int64, error)
	InsertAlamat(ctx context.Context, mahasiswaID int64, a *models.Alamat) error
	UpdateAlamat(ctx context.Context, a *models.Alamat) error
	DeleteAlamat(ctx context.Context, mahasiswaID int64) error
	Commit() error
	Rollback() error
}

// Tx implements UnitOfWork over *sql.Tx.
type Tx struct{ tx *sql.Tx }

func (t *Tx) Commit() error { return t.tx.Commit() }

func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

func (t *Tx) InsertMahasiswa(ctx context.Context, m *models.Mahasiswa) error {
	q := `INSERT INTO mahasiswa (nim, nama, foto, prodi_id)
	      VALUES ($1,$2,$3,$4)
	      RETURNING id;`
	return t.tx.QueryRowContext(ctx, q, m.NIM, m.Nama, m.Foto, m.ProdiID).Scan(&m.ID)
}

func (t *Tx) UpdateMahasiswa(ctx context.Context, m *models.Mahasiswa) error {
	q := `UPDATE mahasiswa SET nim=$2, nama=$3, foto=$4, prodi_id=$5 WHERE id=$1;`
	_, err := t.tx.ExecContext(ctx, q, m.ID, m.NIM, m.Nama, m.Foto, m.ProdiID)
	return err
}

func (t *Tx) DeleteMahasiswa(ctx context.Context, id int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM mahasiswa WHERE id=$1;`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *Tx) InsertAlamat(ctx context.Context, mahasiswaID int64, a *models.Alamat) error {
	q := `INSERT INTO alamat (mahasiswa_id, jalan, kota, provinsi, kode_pos)
	      VALUES ($1,$2,$3,$4,$5)
	      RETURNING id;`
	return t.tx.QueryRowContext(ctx, q, mahasiswaID, a.Jalan, a.Kota, a.Provinsi, a.KodePos).Scan(&a.ID)
}

func (t *Tx) UpdateAlamat(ctx context.Context, a *models.Alamat) error {
	q := `UPDATE alamat SET jalan=$2, kota=$3, provinsi=$4, kode_pos=$5 WHERE id=$1;`
	_, err := t.tx.ExecContext(ctx, q, a.ID, a.Jalan, a.Kota, a.Provinsi, a.KodePos)
	return err
}

func (t *Tx) DeleteAlamat(ctx context.Context, mahasiswaID int64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM alamat WHERE mahasiswa_id=$1;`, mahasiswaID)
	return err
}
