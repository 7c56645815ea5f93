package util

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(clock *fakeClock) *TokenService {
	return NewTokenService("test-secret", "payroll-test", time.Hour, WithClock(clock.Now))
}

func TestTokenService_IssueVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, err := svc.Issue(Identity{Email: "u1@x.com", Role: "user"})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.True(t, clock.t.Add(time.Hour).Equal(claims.ExpiresAt.Time))
}

func TestTokenService_ValidityWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, err := svc.Issue(Identity{Email: "u1@x.com", Role: "admin"})
	require.NoError(t, err)

	for _, d := range []time.Duration{time.Minute, 30 * time.Minute, 59 * time.Minute} {
		clock.t = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC).Add(d)
		_, err := svc.Verify(token)
		assert.NoError(t, err, "at +%s", d)
	}

	clock.Advance(2 * time.Minute) // +61m
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenService_TamperedToken(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(clock)

	token, err := svc.Issue(Identity{Email: "u1@x.com", Role: "user"})
	require.NoError(t, err)

	// any change to the signed part must be rejected
	signedLen := strings.LastIndex(token, ".")
	for i := 0; i < signedLen; i++ {
		if token[i] == '.' {
			continue
		}
		b := []byte(token)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := svc.Verify(string(b))
		assert.ErrorIs(t, err, ErrInvalidToken, "tampered byte %d", i)
	}

	// truncated signature
	_, err = svc.Verify(token[:len(token)-4])
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Rejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(clock)

	otherSecret := NewTokenService("other-secret", "payroll-test", time.Hour, WithClock(clock.Now))
	forged, err := otherSecret.Issue(Identity{Email: "evil@x.com", Role: "admin"})
	require.NoError(t, err)

	otherIssuer := NewTokenService("test-secret", "someone-else", time.Hour, WithClock(clock.Now))
	wrongIss, err := otherIssuer.Issue(Identity{Email: "u1@x.com", Role: "user"})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Identity: Identity{Email: "u1@x.com", Role: "admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "payroll-test",
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Identity:         Identity{Email: "u1@x.com"},
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "payroll-test"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"other secret": forged,
		"other issuer": wrongIss,
		"alg none":     unsigned,
		"no expiry":    noExp,
		"garbage":      "not-a-token",
		"empty":        "",
		"two segments": "abc.def",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("s", "", 0)
	assert.Equal(t, time.Hour, svc.TTL())
}
