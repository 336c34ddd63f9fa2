// Package models holds the persisted entities shared across repo, service
// and handler packages.
package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Prodi is a study program. Nama is unique.
type Prodi struct {
	ID   int64  `json:"id"`
	Nama string `json:"nama"`
}

// Alamat is owned by exactly one Mahasiswa and has no independent
// lifecycle: it is created, updated and removed only through student
// mutations.
type Alamat struct {
	ID       int64  `json:"id"`
	Jalan    string `json:"jalan"`
	Kota     string `json:"kota"`
	Provinsi string `json:"provinsi"`
	KodePos  string `json:"kode_pos"`
}

// Mahasiswa is the aggregate root. ProdiID is a nullable reference,
// Alamat is the owned 1:1 address.
type Mahasiswa struct {
	ID      int64   `json:"id"`
	NIM     string  `json:"nim"`
	Nama    string  `json:"nama"`
	Foto    *string `json:"foto"`
	ProdiID *int64  `json:"prodi_id"`
	Prodi   *Prodi  `json:"prodi"`
	Alamat  *Alamat `json:"alamat"`
}
