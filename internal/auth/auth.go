// Package auth verifies the admin credentials and issues and checks the
// signed session tokens that guard the admin API.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the session cookie set on login.
const CookieName = "admin_token"

// SessionTTL is how long an issued token stays valid. There is no refresh.
const SessionTTL = 7 * 24 * time.Hour

// RoleAdmin is the only role ever issued.
const RoleAdmin = "admin"

// ErrUnauthorized covers every reason a request is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ─── Credential verification ────────────────────────────────────────────────

// Verifier checks a username/password pair against the single configured
// admin identity.
type Verifier struct {
	username     string
	passwordHash []byte
	devPassword  bool
}

// NewVerifier builds a Verifier from the admin settings. With no hash
// configured it accepts config.DevPassword.
func NewVerifier(cfg config.Config) *Verifier {
	return &Verifier{
		username:     cfg.AdminUsername,
		passwordHash: []byte(cfg.AdminPasswordHash),
		devPassword:  cfg.UsesDevPassword(),
	}
}

// Verify reports whether the credentials match. It has no side effects.
func (v *Verifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1

	var passOK bool
	if v.devPassword {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(config.DevPassword)) == 1
	} else {
		passOK = bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
	}
	return userOK && passOK
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// ─── Session tokens ─────────────────────────────────────────────────────────

// Claims is the payload of a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and validates HS256 session tokens.
type Sessions struct {
	secret []byte
	now    func() time.Time
}

// NewSessions constructs Sessions signing with secret.
func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret), now: time.Now}
}

// Issue signs a fresh admin token and returns it with its expiry.
func (s *Sessions) Issue() (string, time.Time, error) {
	now := s.now()
	exp := now.Add(SessionTTL)
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Validate returns ErrUnauthorized unless token is a well-formed, correctly
// signed, unexpired admin token.
func (s *Sessions) Validate(token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Role != RoleAdmin {
		return fmt.Errorf("%w: role %q", ErrUnauthorized, claims.Role)
	}
	return nil
}

// ─── Transport ──────────────────────────────────────────────────────────────

// TokenFromRequest extracts the session token. A bearer Authorization header
// takes precedence over the cookie; any other scheme is ignored.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Authenticate validates the token carried by r.
func (s *Sessions) Authenticate(r *http.Request) error {
	return s.Validate(TokenFromRequest(r))
}

// SetCookie writes the session cookie.
func SetCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie tells the browser to drop the session cookie. The token itself
// stays valid until it expires.
func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
