package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"siakad/internal/apperrors"
	"siakad/internal/models"
)

type MahasiswaRepo struct{ DB *sql.DB }

func NewMahasiswaRepo(db *sql.DB) *MahasiswaRepo { return &MahasiswaRepo{DB: db} }

// BeginTx starts the unit of work for multi-row student writes.
func (r *MahasiswaRepo) BeginTx(ctx context.Context) (UnitOfWork, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

const mahasiswaJoin = `
	FROM mahasiswa m
	LEFT JOIN prodi p ON p.id = m.prodi_id
	LEFT JOIN alamat a ON a.mahasiswa_id = m.id`

const mahasiswaColumns = `m.id, m.nim, m.nama, m.foto, m.prodi_id,
	p.id, p.nama,
	a.id, a.jalan, a.kota, a.provinsi, a.kode_pos`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMahasiswa(row rowScanner) (*models.Mahasiswa, error) {
	var (
		m           models.Mahasiswa
		prodiID     sql.NullInt64
		prodiNama   sql.NullString
		alamatID    sql.NullInt64
		jalan, kota sql.NullString
		provinsi    sql.NullString
		kodePos     sql.NullString
	)
	err := row.Scan(&m.ID, &m.NIM, &m.Nama, &m.Foto, &m.ProdiID,
		&prodiID, &prodiNama,
		&alamatID, &jalan, &kota, &provinsi, &kodePos)
	if err != nil {
		return nil, err
	}
	if prodiID.Valid {
		m.Prodi = &models.Prodi{ID: prodiID.Int64, Nama: prodiNama.String}
	}
	if alamatID.Valid {
		m.Alamat = &models.Alamat{
			ID:       alamatID.Int64,
			Jalan:    jalan.String,
			Kota:     kota.String,
			Provinsi: provinsi.String,
			KodePos:  kodePos.String,
		}
	}
	return &m, nil
}

// GetByID returns the student hydrated with its program and address.
func (r *MahasiswaRepo) GetByID(ctx context.Context, id int64) (*models.Mahasiswa, error) {
	q := `SELECT ` + mahasiswaColumns + mahasiswaJoin + ` WHERE m.id = $1;`
	m, err := scanMahasiswa(r.DB.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("mahasiswa with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// NIMTaken reports whether another student (excluding excludeID) already
// holds the NIM. Advisory only; the unique index is the real guard.
func (r *MahasiswaRepo) NIMTaken(ctx context.Context, nim string, excludeID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM mahasiswa WHERE nim=$1 AND id<>$2);`,
		nim, excludeID).Scan(&exists)
	return exists, err
}

// UpdateFoto is the narrow single-field photo write; no transaction needed.
func (r *MahasiswaRepo) UpdateFoto(ctx context.Context, id int64, foto *string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE mahasiswa SET foto=$2 WHERE id=$1;`, id, foto)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("mahasiswa with id %d not found", id)
	}
	return nil
}

// ListFilter describes the listing predicate. SortBy must already be
// whitelisted by the caller.
type ListFilter struct {
	Search    string
	ProdiID   *int64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

var sortColumns = map[string]string{
	"nama": "m.nama",
	"nim":  "m.nim",
	"id":   "m.id",
}

// buildListQuery renders the data and count statements from one shared
// predicate so the returned count always reflects the filtered set. The
// last two args (limit, offset) belong to the data query only.
func buildListQuery(f ListFilter) (dataSQL, countSQL string, args []any) {
	var where []string
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(m.nama ILIKE $%d OR m.nim ILIKE $%d)", len(args), len(args)))
	}
	if f.ProdiID != nil {
		args = append(args, *f.ProdiID)
		where = append(where, fmt.Sprintf("m.prodi_id = $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	countSQL = `SELECT COUNT(*) FROM mahasiswa m` + whereSQL + `;`

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "m.nama"
	}
	dir := "ASC"
	if strings.EqualFold(f.SortOrder, "DESC") {
		dir = "DESC"
	}
	orderSQL := fmt.Sprintf(" ORDER BY %s %s", col, dir)
	if col != "m.id" {
		// stable tie-break by primary key
		orderSQL += ", m.id ASC"
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	dataSQL = `SELECT ` + mahasiswaColumns + mahasiswaJoin + whereSQL + orderSQL +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d;", len(args)-1, len(args))
	return dataSQL, countSQL, args
}

// List returns the filtered page and the total count of the filtered set.
func (r *MahasiswaRepo) List(ctx context.Context, f ListFilter) ([]models.Mahasiswa, int64, error) {
	dataSQL, countSQL, args := buildListQuery(f)

	var count int64
	if err := r.DB.QueryRowContext(ctx, countSQL, args[:len(args)-2]...).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Mahasiswa{}
	for rows.Next() {
		m, err := scanMahasiswa(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	return out, count, rows.Err()
}
