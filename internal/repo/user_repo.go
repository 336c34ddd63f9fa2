package repo

import (
	"context"
	"database/sql"

	"siakad/internal/apperrors"
	"siakad/internal/models"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, username, email, password_hash, role, profile_picture, bio, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.ProfilePicture, &u.Bio, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the user and fills in the generated id and timestamps.
// A unique violation surfaces as the raw driver error; the caller maps it.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	q := `INSERT INTO users (username, email, password_hash, role, profile_picture, bio)
	      VALUES ($1,$2,$3,$4,$5,$6)
	      RETURNING id, created_at, updated_at;`
	return r.DB.QueryRowContext(ctx, q, u.Username, u.Email, u.PasswordHash, u.Role, u.ProfilePicture, u.Bio).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id=$1;`
	return scanUser(r.DB.QueryRowContext(ctx, q, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email=$1;`
	return scanUser(r.DB.QueryRowContext(ctx, q, email))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username=$1;`
	return scanUser(r.DB.QueryRowContext(ctx, q, username))
}
