package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifierDevFallback(t *testing.T) {
	v := NewVerifier(config.Config{AdminUsername: "admin"})

	assert.True(t, v.Verify("admin", config.DevPassword))
	assert.False(t, v.Verify("admin", "wrong"))
	assert.False(t, v.Verify("Admin", config.DevPassword), "username match is exact")
}

func TestVerifierBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	v := NewVerifier(config.Config{AdminUsername: "couple", AdminPasswordHash: string(hash)})

	assert.True(t, v.Verify("couple", "s3cret!"))
	assert.False(t, v.Verify("couple", config.DevPassword), "dev password is off once a hash is set")
	assert.False(t, v.Verify("admin", "s3cret!"))
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	v := NewVerifier(config.Config{AdminUsername: "admin", AdminPasswordHash: hash})
	assert.True(t, v.Verify("admin", "hunter2"))
}

func TestSessionsIssueAndValidate(t *testing.T) {
	s := NewSessions("secret")
	token, exp, err := s.Issue()
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(SessionTTL), exp, time.Minute)
	assert.NoError(t, s.Validate(token))
}

func TestSessionsRejects(t *testing.T) {
	s := NewSessions("secret")
	valid, _, err := s.Issue()
	require.NoError(t, err)

	expired := NewSessions("secret")
	expired.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	old, _, err := expired.Issue()
	require.NoError(t, err)

	otherKey, _, err := NewSessions("other").Issue()
	require.NoError(t, err)

	wrongRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "guest",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: RoleAdmin}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":      "",
		"garbage":    "not-a-token",
		"expired":    old,
		"other key":  otherKey,
		"wrong role": wrongRole,
		"alg none":   unsigned,
		"no expiry":  noExpiry,
		"tampered":   valid + "A",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Validate(token), ErrUnauthorized)
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", TokenFromRequest(r), "header wins over cookie")

	r.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "from-cookie", TokenFromRequest(r), "non-bearer schemes fall through to the cookie")
}

func TestCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	SetCookie(rec, "tok", true)
	c := rec.Result().Cookies()[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 7*24*60*60, c.MaxAge)

	rec = httptest.NewRecorder()
	ClearCookie(rec, false)
	c = rec.Result().Cookies()[0]
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}
