package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siakad/internal/models"
)

func TestTokenSigner_RoundTrip(t *testing.T) {
	signer := NewTokenSigner("super-secret", time.Hour)
	u := &models.User{ID: 42, Username: "budi", Role: models.RoleAdmin}

	token, exp, err := signer.Sign(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestTokenSigner_WrongSecret(t *testing.T) {
	signer := NewTokenSigner("super-secret", time.Hour)
	token, _, err := signer.Sign(&models.User{ID: 1, Username: "budi", Role: models.RoleUser})
	require.NoError(t, err)

	other := NewTokenSigner("different-secret", time.Hour)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenSigner_Expired(t *testing.T) {
	signer := NewTokenSigner("super-secret", -time.Minute)
	token, _, err := signer.Sign(&models.User{ID: 1, Username: "budi", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = signer.Parse(token)
	assert.Error(t, err)
}

func TestTokenSigner_Garbage(t *testing.T) {
	signer := NewTokenSigner("super-secret", time.Hour)
	_, err := signer.Parse("not-a-token")
	assert.Error(t, err)
}
