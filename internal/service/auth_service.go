package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"siakad/internal/apperrors"
	"siakad/internal/models"
	"siakad/internal/repo"
)

// TokenIssuer signs an access token for the user.
type TokenIssuer interface {
	Sign(u *models.User) (token string, expiresAt time.Time, err error)
}

type AuthService struct {
	Users  UserStore
	Tokens TokenIssuer

	// AllowRoleElevation gates whether registration may request a role
	// above "user". Off for open signup.
	AllowRoleElevation bool
}

func NewAuthService(users UserStore, tokens TokenIssuer, allowRoleElevation bool) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, AllowRoleElevation: allowRoleElevation}
}

type RegisterInput struct {
	Username       string  `json:"username" validate:"required,min=3"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	Role           string  `json:"role" validate:"omitempty,oneof=user admin"`
	ProfilePicture *string `json:"profile_picture"`
	Bio            *string `json:"bio"`
}

type AuthResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

// Identical for unknown email and wrong password so the response never
// reveals which one was wrong.
const genericLoginMessage = "email or password is incorrect"

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && !s.AllowRoleElevation {
		return nil, apperrors.Unauthorized("requesting an elevated role at registration is not allowed")
	}

	// Advisory pre-checks for a precise message; the unique indexes are
	// the authoritative guard under concurrent registration.
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.Conflict("email %q is already registered", in.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, asAppError(err, "failed to check email")
	}
	if _, err := s.Users.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperrors.Conflict("username %q is already registered", in.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, asAppError(err, "failed to check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to hash password")
	}

	u := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Role:           role,
		ProfilePicture: in.ProfilePicture,
		Bio:            in.Bio,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("email or username is already registered")
		}
		return nil, asAppError(err, "failed to create user")
	}

	return s.issue(u)
}

// ValidateCredentials returns the user when the email exists and the
// password matches its bcrypt hash, and an indistinguishable Unauthorized
// otherwise.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Unauthorized(genericLoginMessage)
	}
	if err != nil {
		return nil, asAppError(err, "failed to load user")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthorized(genericLoginMessage)
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) Profile(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, asAppError(err, "failed to load user")
	}
	return u, nil
}

func (s *AuthService) issue(u *models.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.Sign(u)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to sign token")
	}
	return &AuthResult{AccessToken: token, ExpiresAt: exp, User: u}, nil
}
