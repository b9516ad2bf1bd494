package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-list-api/internal/logging"
	"github.com/yukikurage/task-list-api/internal/token"
)

func newProtectedRouter(t *testing.T, provider *token.Provider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Recovery(logging.Discard()))
	r.GET("/protected", RequireAuth(provider, logging.Discard()), func(c *gin.Context) {
		email, ok := GetUserEmail(c)
		require.True(t, ok)
		c.String(http.StatusOK, email)
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func doRequest(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	provider, err := token.NewProvider("secret")
	require.NoError(t, err)
	r := newProtectedRouter(t, provider)

	tok, err := provider.Issue("alice@x.com")
	require.NoError(t, err)

	w := doRequest(r, "/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@x.com", w.Body.String())

	w = doRequest(r, "/protected", "bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_Rejects(t *testing.T) {
	provider, err := token.NewProvider("secret")
	require.NoError(t, err)
	r := newProtectedRouter(t, provider)

	tok, err := provider.Issue("alice@x.com")
	require.NoError(t, err)

	headers := map[string]string{
		"missing":      "",
		"wrong scheme": "Basic " + tok,
		"no token":     "Bearer ",
		"garbage":      "Bearer not-a-token",
		"tampered":     "Bearer " + tok + "x",
	}
	for name, header := range headers {
		w := doRequest(r, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED", name)
	}
}

func TestRequireAuth_Expired(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	issuer, err := token.NewProvider("secret", token.WithClock(func() time.Time { return past }))
	require.NoError(t, err)
	verifier, err := token.NewProvider("secret")
	require.NoError(t, err)
	r := newProtectedRouter(t, verifier)

	tok, err := issuer.Issue("alice@x.com")
	require.NoError(t, err)

	w := doRequest(r, "/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRecovery_HidesPanic(t *testing.T) {
	provider, err := token.NewProvider("secret")
	require.NoError(t, err)
	r := newProtectedRouter(t, provider)

	w := doRequest(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("Bearer")
	assert.False(t, ok)

	_, ok = bearerToken("Token abc")
	assert.False(t, ok)
}
