package http_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/users-api/internal/application/dto"
)

func registerBody(name, email string) map[string]string {
	return map[string]string{"name": name, "email": email, "password": testPassword}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /users
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_201SoloNameEmail(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)

	resp := doJSON(t, env.app, http.MethodPost, "/users", registerBody("Maria", "maria@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, map[string]any{"name": "Maria", "email": "maria@example.com"}, body,
		"la respuesta no incluye id, token, password ni hash")
}

func TestCreate_EmailDuplicado_409(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)

	first := doJSON(t, env.app, http.MethodPost, "/users", registerBody("Maria", "maria@example.com"))
	first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	resp := doJSON(t, env.app, http.MethodPost, "/users", registerBody("Otra", "maria@example.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "EMAIL_EXISTS", body.Code)
	assert.Equal(t, "email already registered", body.Message)
}

func TestCreate_Validacion_400(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	cases := []struct {
		name string
		body map[string]string
	}{
		{"nombre corto", registerBody("ab", "maria@example.com")},
		{"nombre largo", registerBody(strings.Repeat("a", 16), "maria@example.com")},
		{"email inválido", registerBody("Maria", "maria.example.com")},
		{"password débil", map[string]string{"name": "Maria", "email": "maria@example.com", "password": "abcdefgh"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, env.app, http.MethodPost, "/users", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
		})
	}

	list, err := env.repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "la validación no toca el almacenamiento")
}

func TestCreate_CuerpoInvalido_400(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	resp := doJSON(t, env.app, http.MethodPost, "/users", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /users/session
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_200ConToken(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	doJSON(t, env.app, http.MethodPost, "/users", registerBody("Maria", "maria@example.com")).Body.Close()

	resp := doJSON(t, env.app, http.MethodPost, "/users/session",
		map[string]string{"email": "maria@example.com", "password": testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw := decode[map[string]any](t, resp)
	assert.ElementsMatch(t, []string{"id", "name", "email", "token"}, keys(raw),
		"sin password ni created_at")

	claims, err := env.tokens.Parse(raw["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, raw["id"], claims.Subject)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, 10*time.Second)
}

func TestSession_401MensajesDistintos(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	doJSON(t, env.app, http.MethodPost, "/users", registerBody("Maria", "maria@example.com")).Body.Close()

	unknown := doJSON(t, env.app, http.MethodPost, "/users/session",
		map[string]string{"email": "nadie@example.com", "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, "user does not exist", decode[dto.ErrorResponse](t, unknown).Message)

	wrong := doJSON(t, env.app, http.MethodPost, "/users/session",
		map[string]string{"email": "maria@example.com", "password": "Wrong123!"})
	assert.Equal(t, http.StatusUnauthorized, wrong.StatusCode)
	assert.Equal(t, "incorrect password", decode[dto.ErrorResponse](t, wrong).Message)
}

func TestSession_SinSecret_500Configuracion(t *testing.T) {
	env := buildTestApp(t, "")
	doJSON(t, env.app, http.MethodPost, "/users", registerBody("Maria", "maria@example.com")).Body.Close()

	resp := doJSON(t, env.app, http.MethodPost, "/users/session",
		map[string]string{"email": "maria@example.com", "password": testPassword})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "CONFIGURATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSession_Validacion_400(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	resp := doJSON(t, env.app, http.MethodPost, "/users/session",
		map[string]string{"email": "maria", "password": testPassword})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /users y GET /users/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestList_VacioDevuelveArray(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	resp := doJSON(t, env.app, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", rawBody(t, resp))
}

func TestList_SinCamposDePassword(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	doJSON(t, env.app, http.MethodPost, "/users", registerBody("Maria", "maria@example.com")).Body.Close()
	doJSON(t, env.app, http.MethodPost, "/users", registerBody("Pedro", "pedro@example.com")).Body.Close()

	resp := doJSON(t, env.app, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decode[[]map[string]any](t, resp)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.ElementsMatch(t, []string{"id", "name", "email", "created_at"}, keys(item))
	}
}

func TestGetByID(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	doJSON(t, env.app, http.MethodPost, "/users", registerBody("Maria", "maria@example.com")).Body.Close()
	stored, err := env.repo.FindByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)

	resp := doJSON(t, env.app, http.MethodGet, "/users/"+stored.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.UserResponse](t, resp)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "Maria", got.Name)

	missing := doJSON(t, env.app, http.MethodGet, "/users/00000000-0000-0000-0000-000000000099", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, missing).Code)

	blank := doJSON(t, env.app, http.MethodGet, "/users/%20", nil)
	assert.Equal(t, http.StatusBadRequest, blank.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /users/me (AuthMiddleware)
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_ConToken(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	doJSON(t, env.app, http.MethodPost, "/users", registerBody("Maria", "maria@example.com")).Body.Close()
	session := decode[dto.SessionResponse](t, doJSON(t, env.app, http.MethodPost, "/users/session",
		map[string]string{"email": "maria@example.com", "password": testPassword}))

	resp := doJSON(t, env.app, http.MethodGet, "/users/me", nil, "Authorization", "Bearer "+session.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.UserResponse](t, resp)
	assert.Equal(t, session.ID, got.ID)
}

func TestMe_TokenDeUsuarioInexistente_404(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	tok, err := env.tokens.Generate("00000000-0000-0000-0000-000000000099", "X", "x@example.com")
	require.NoError(t, err)

	resp := doJSON(t, env.app, http.MethodGet, "/users/me", nil, "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMe_SinToken_401(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	cases := map[string]string{
		"sin header":     "",
		"sin Bearer":     "Token abc",
		"token vacío":    "Bearer   ",
		"token inválido": "Bearer token.invalido.aqui",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			var resp *http.Response
			if header == "" {
				resp = doJSON(t, env.app, http.MethodGet, "/users/me", nil)
			} else {
				resp = doJSON(t, env.app, http.MethodGet, "/users/me", nil, "Authorization", header)
			}
			resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Otros
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	resp := doJSON(t, env.app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]any](t, resp)["status"])
}

func TestRutaInexistente_404JSON(t *testing.T) {
	env := buildTestApp(t, testJWTSecret)
	resp := doJSON(t, env.app, http.MethodGet, "/nada", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
