package adminauth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials identify the single site administrator.
type Credentials struct {
	Email string
	// PasswordHash is a bcrypt hash.
	PasswordHash string
}

// Configured reports whether sign-in is possible at all.
func (c Credentials) Configured() bool {
	return strings.TrimSpace(c.Email) != "" && strings.TrimSpace(c.PasswordHash) != ""
}

// Match reports whether email and password identify the administrator. The
// password hash is always compared so both failure modes cost the same.
func (c Credentials) Match(email string, password string) bool {
	if !c.Configured() {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(email)), []byte(normalizeEmail(c.Email))) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(c.PasswordHash)), []byte(password)) == nil
	return emailOK && passwordOK
}

// HashPassword returns a bcrypt hash for password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
