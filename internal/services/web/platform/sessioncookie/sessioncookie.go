// Package sessioncookie issues and verifies the signed admin session cookie.
package sessioncookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/louisbranch/portfolio/internal/services/web/platform/requestmeta"
)

// Name is the admin session cookie name.
const Name = "portfolio_session"

// Issuer is stamped into every session token.
const Issuer = "portfolio"

// MinSecretLength is the shortest accepted HMAC secret, in bytes.
const MinSecretLength = 32

var (
	// ErrMissing means the request carried no session cookie.
	ErrMissing = errors.New("session cookie missing")
	// ErrInvalid means the token failed signature or claim checks.
	ErrInvalid = errors.New("session token invalid")
	// ErrExpired means the token was valid but has expired.
	ErrExpired = errors.New("session token expired")
)

// Session is a verified admin session.
type Session struct {
	ID        string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Config builds a Manager.
type Config struct {
	Secret string
	TTL    time.Duration
	Policy requestmeta.SchemePolicy
	Now    func() time.Time
}

// Manager signs session tokens with HS256 and stores them in a cookie.
type Manager struct {
	secret []byte
	ttl    time.Duration
	policy requestmeta.SchemePolicy
	now    func() time.Time
}

// NewManager validates cfg.
func NewManager(cfg Config) (*Manager, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{secret: []byte(secret), ttl: cfg.TTL, policy: cfg.Policy, now: now}, nil
}

// Issue signs a new token for email.
func (m *Manager) Issue(email string) (string, Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", Session{}, errors.New("session subject is required")
	}
	now := m.now().UTC().Truncate(time.Second)
	session := Session{
		ID:        uuid.NewString(),
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   session.Email,
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		NotBefore: jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session: %w", err)
	}
	return token, session, nil
}

// Verify parses token and checks signature, issuer and lifetime.
func (m *Manager) Verify(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrMissing
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrExpired
		}
		return Session{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return Session{}, ErrInvalid
	}
	session := Session{ID: claims.ID, Email: claims.Subject, ExpiresAt: claims.ExpiresAt.Time.UTC()}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return session, nil
}

// Start issues a token for email and sets it on w.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, email string) (Session, error) {
	token, session, err := m.Issue(email)
	if err != nil {
		return Session{}, err
	}
	http.SetCookie(w, m.cookie(r, token, int(m.ttl/time.Second)))
	return session, nil
}

// Read verifies the session cookie carried by r.
func (m *Manager) Read(r *http.Request) (Session, error) {
	if r == nil {
		return Session{}, ErrMissing
	}
	c, err := r.Cookie(Name)
	if err != nil {
		return Session{}, ErrMissing
	}
	return m.Verify(c.Value)
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, m.cookie(r, "", -1))
}

func (m *Manager) cookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, m.policy),
		SameSite: http.SameSiteLaxMode,
	}
}

// HasCookie reports whether r carries a non-empty session cookie, without
// verifying it.
func HasCookie(r *http.Request) bool {
	if r == nil {
		return false
	}
	c, err := r.Cookie(Name)
	return err == nil && strings.TrimSpace(c.Value) != ""
}
