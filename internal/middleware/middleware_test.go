package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payroll-directory/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func newEngine(tokens *util.TokenService, log *zap.Logger, reached *bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/protected", AuthMiddleware(tokens, log), func(c *gin.Context) {
		*reached = true
		id, ok := CurrentIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, id)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	clock := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens := util.NewTokenService("secret", "payroll", time.Hour, util.WithClock(clock.Now))

	valid, err := tokens.Issue(util.Identity{Email: "u1@x.com", Role: "user"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		advance    time.Duration
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "no header", header: "", wantStatus: http.StatusForbidden},
		{name: "raw token without scheme", header: valid, wantStatus: http.StatusForbidden},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusForbidden},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusForbidden},
		{name: "garbage token", header: "Bearer nope", wantStatus: http.StatusForbidden},
		{name: "expired token", header: "Bearer " + valid, advance: 2 * time.Hour, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.t = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(tt.advance)

			var reached bool
			r := newEngine(tokens, zap.NewNop(), &reached)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"email":"u1@x.com","role":"user"}`, w.Body.String())
			} else {
				assert.Equal(t, "Forbidden", w.Body.String())
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	tokens := util.NewTokenService("secret", "payroll", time.Hour)

	token, err := tokens.Issue(util.Identity{Email: "u1@x.com", Role: "user"})
	require.NoError(t, err)

	var reached bool
	r := newEngine(tokens, log, &reached)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/protected", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "u1@x.com", fields["user"])
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/protected", nil))
	denied := logs.FilterMessage("request").All()
	require.Len(t, denied, 2)
	assert.Equal(t, zapcore.WarnLevel, denied[1].Level)
	assert.NotContains(t, denied[1].ContextMap(), "user")
}
