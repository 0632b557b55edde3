package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/users-api/internal/application/account"
	infracrypto "github.com/jhoicas/users-api/internal/infrastructure/crypto"
	"github.com/jhoicas/users-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/users-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/users-api/pkg/jwt"
	"github.com/jhoicas/users-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "users-api-test"
	testPassword  = "Abcdef1!"
)

type testEnv struct {
	app    *fiber.App
	repo   *memory.UserRepo
	tokens *pkgjwt.Issuer
}

// buildTestApp construye la aplicación completa sobre el repositorio en memoria.
func buildTestApp(t *testing.T, secret string) testEnv {
	t.Helper()
	repo := memory.NewUserRepository()
	tokens := pkgjwt.NewIssuer(secret, testIssuer, 0)
	uc := account.NewAccountUseCase(repo, infracrypto.NewBcryptHasher(bcrypt.MinCost), tokens)
	app := apphttp.NewApp(apphttp.RouterDeps{
		AppName:   "users-api-test",
		AccountUC: uc,
		Tokens:    tokens,
		Logger:    logger.Nop(),
	})
	return testEnv{app: app, repo: repo, tokens: tokens}
}

// doJSON lanza una petición con cuerpo JSON (body nil = sin cuerpo).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func rawBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
