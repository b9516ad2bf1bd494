package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-list-api/internal/dto"
	apierrors "github.com/yukikurage/task-list-api/internal/errors"
	"github.com/yukikurage/task-list-api/internal/services"
)

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    "bob@x.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[dto.AuthResponse](t, w)
	assert.Equal(t, "bob@x.com", resp.Email)

	subject, err := env.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", subject)

	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	env := setupTestEnv(t, nil)
	body := map[string]string{"email": "bob@x.com", "password": "secret1"}

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/auth/register", body, "").Code)

	w := env.do(t, http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierrors.ErrCodeAlreadyExists, decode[apierrors.APIError](t, w).Code)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	env := setupTestEnv(t, nil)

	tests := []struct {
		name string
		body any
	}{
		{"malformed email", map[string]string{"email": "not-an-email", "password": "secret1"}},
		{"short password", map[string]string{"email": "bob@x.com", "password": "123"}},
		{"missing password", map[string]string{"email": "bob@x.com"}},
		{"not json", "just a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/auth/register", tt.body, "")
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apierrors.ErrCodeInvalidInput, decode[apierrors.APIError](t, w).Code)
		})
	}
}

func TestAuthHandler_Register_MissingFieldsListed(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/auth/register", map[string]string{}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[apierrors.APIError](t, w)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, body.Code)
	assert.Equal(t, map[string]any{"email": "required", "password": "required"}, body.Details)
}

func TestAuthHandler_Register_NotJSONHasNoDetails(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/auth/register", "just a string", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, decode[apierrors.APIError](t, w).Details)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t, nil)

	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "alice@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@x.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.AuthResponse](t, w)
	assert.Equal(t, "alice@x.com", resp.Email)
	subject, err := env.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", subject)
}

func TestAuthHandler_Login_SameResponseForUnknownEmailAndWrongPassword(t *testing.T) {
	env := setupTestEnv(t, nil)

	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "alice@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	wrongPassword := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@x.com",
		"password": "wrong-password",
	}, "")
	unknownEmail := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t, nil)

	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "alice@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	tok, err := env.tokens.Issue("alice@x.com")
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/auth/me", nil, tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@x.com", decode[dto.UserDTO](t, w).Email)

	w = env.do(t, http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ghost, err := env.tokens.Issue("ghost@x.com")
	require.NoError(t, err)
	w = env.do(t, http.MethodGet, "/auth/me", nil, ghost)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type failingIssuer struct{}

func (failingIssuer) Issue(string) (string, error) { return "", errors.New("hsm offline") }

func TestAuthHandler_TokenFailureIsGeneric(t *testing.T) {
	env := setupTestEnv(t, nil)
	handler := NewAuthHandler(env.authService, failingIssuer{}, discardLogger())

	w, c := newJSONContext(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    "bob@x.com",
		"password": "secret1",
	})
	handler.Register(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hsm offline")
}
