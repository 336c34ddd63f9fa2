package db

import (
	"context"
	"database/sql"
	"fmt"
)

// alamat.mahasiswa_id deliberately has no ON DELETE CASCADE: the student
// service deletes the owned address explicitly inside the same transaction
// as the student row.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(50) UNIQUE NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    role VARCHAR(50) NOT NULL DEFAULT 'user',
    profile_picture TEXT,
    bio TEXT,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_username ON users (username);
CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);

CREATE TABLE IF NOT EXISTS prodi (
    id SERIAL PRIMARY KEY,
    nama VARCHAR(100) UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS mahasiswa (
    id SERIAL PRIMARY KEY,
    nim VARCHAR(20) UNIQUE NOT NULL,
    nama VARCHAR(100) NOT NULL,
    foto TEXT,
    prodi_id INTEGER REFERENCES prodi (id)
);
CREATE INDEX IF NOT EXISTS idx_mahasiswa_prodi_id ON mahasiswa (prodi_id);

CREATE TABLE IF NOT EXISTS alamat (
    id SERIAL PRIMARY KEY,
    mahasiswa_id INTEGER UNIQUE NOT NULL REFERENCES mahasiswa (id),
    jalan TEXT NOT NULL DEFAULT '',
    kota TEXT NOT NULL DEFAULT '',
    provinsi TEXT NOT NULL DEFAULT '',
    kode_pos VARCHAR(10) NOT NULL DEFAULT ''
);
`

// Migrate creates the schema. Idempotent, safe to run at every boot.
func Migrate(ctx context.Context, sqlDB *sql.DB) error {
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
