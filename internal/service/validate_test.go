package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siakad/internal/apperrors"
)

func TestValidateKodePos(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "five digits", in: "12345", want: "12345"},
		{name: "empty is allowed", in: "", want: ""},
		{name: "inner whitespace stripped", in: "123 45", want: "12345"},
		{name: "surrounding whitespace stripped", in: " 12345\t", want: "12345"},
		{name: "too short", in: "1234", wantErr: true},
		{name: "too long", in: "123456", wantErr: true},
		{name: "letters", in: "abcde", wantErr: true},
		{name: "mixed", in: "12a45", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateKodePos(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeNama(t *testing.T) {
	assert.Equal(t, "Budi Santoso", NormalizeNama("budi santoso"))
	assert.Equal(t, "Budi Santoso", NormalizeNama("  BUDI SANTOSO  "))
	assert.Equal(t, "Siti Nur Aisyah", NormalizeNama("siti nur aisyah"))
	assert.Equal(t, "", NormalizeNama("   "))
}
