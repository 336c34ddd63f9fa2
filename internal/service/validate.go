package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"siakad/internal/apperrors"
)

// NormalizeNama trims the name and normalizes it to title case before it
// is persisted. A cases.Caser is not safe for concurrent use, so one is
// built per call.
func NormalizeNama(nama string) string {
	return cases.Title(language.Indonesian).String(strings.TrimSpace(nama))
}

// ValidateKodePos checks a postal code: after stripping all whitespace it
// must be exactly five decimal digits. Empty input means "not provided"
// and is valid. Returns the stripped form to persist.
func ValidateKodePos(kodePos string) (string, error) {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, kodePos)

	if stripped == "" {
		return "", nil
	}
	if len(stripped) != 5 {
		return "", apperrors.InvalidFormat("kode pos must be exactly 5 digits")
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return "", apperrors.InvalidFormat("kode pos must be exactly 5 digits")
		}
	}
	return stripped, nil
}
