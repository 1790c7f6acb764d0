package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/logisticsfuture/identity/internal/identity/notify"
	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/internal/identity/store/drivers/sqlite"
	"github.com/logisticsfuture/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "identity.db") +
		"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec("test-signing-secret", time.Minute, time.Hour, nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter("test", st, logger)
	router.AuthService = &service.AuthService{
		Store:        st,
		Codec:        codec,
		Notifier:     notify.NewLogNotifier(logger),
		ResetTTL:     time.Hour,
		ResetURLBase: "http://localhost:8080/reset-password",
	}
	router.ApplyRoutes()
	return router
}

func doJSON(t *testing.T, router *Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"email":           email,
		"password":        "Secret123!",
		"confirmPassword": "Secret123!",
		"firstName":       "Alice",
		"lastName":        "Smith",
		"termsAgreed":     true,
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("creates a user", func(t *testing.T) {
		rec := doJSON(t, router, "/v1/auth/register", registerBody("a@x.com"))
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			ID        string `json:"id"`
			Email     string `json:"email"`
			FirstName string `json:"firstName"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.NotEmpty(t, got.ID)
		require.Equal(t, "a@x.com", got.Email)
		require.Equal(t, "Alice", got.FirstName)
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := doJSON(t, router, "/v1/auth/register", registerBody("a@x.com"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"message":"Email is already in use"}`, rec.Body.String())
	})

	t.Run("password mismatch", func(t *testing.T) {
		body := registerBody("b@x.com")
		body["confirmPassword"] = "Other123!"
		rec := doJSON(t, router, "/v1/auth/register", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"message":"Passwords do not match"}`, rec.Body.String())
	})

	t.Run("validation errors are per-field", func(t *testing.T) {
		body := registerBody("not-an-email")
		rec := doJSON(t, router, "/v1/auth/register", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var got struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Contains(t, got.Errors, "email")
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader([]byte("{broken")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginAndSessionEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "/v1/auth/register", registerBody("a@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("wrong credentials", func(t *testing.T) {
		rec := doJSON(t, router, "/v1/auth/login", map[string]any{
			"email": "a@x.com", "password": "Wrong123!",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())
	})

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	t.Run("login returns token pair", func(t *testing.T) {
		rec := doJSON(t, router, "/v1/auth/login", map[string]any{
			"email": "a@x.com", "password": "Secret123!",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("refresh rotates the token", func(t *testing.T) {
		rec := doJSON(t, router, "/v1/auth/refresh", map[string]any{"refreshToken": pair.RefreshToken})
		require.Equal(t, http.StatusOK, rec.Code)

		var next struct {
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
		require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

		// The original token is now invalid.
		rec = doJSON(t, router, "/v1/auth/refresh", map[string]any{"refreshToken": pair.RefreshToken})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"message":"Invalid or expired token"}`, rec.Body.String())

		pair.RefreshToken = next.RefreshToken
	})

	t.Run("logout invalidates the token once", func(t *testing.T) {
		rec := doJSON(t, router, "/v1/auth/logout", map[string]any{"refreshToken": pair.RefreshToken})
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"message":"Logged out successfully"}`, rec.Body.String())

		rec = doJSON(t, router, "/v1/auth/logout", map[string]any{"refreshToken": pair.RefreshToken})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestForgotPasswordEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "/v1/auth/register", registerBody("a@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	// Known and unknown emails produce the identical response.
	known := doJSON(t, router, "/v1/auth/forgot-password", map[string]any{"email": "a@x.com"})
	unknown := doJSON(t, router, "/v1/auth/forgot-password", map[string]any{"email": "nobody@x.com"})

	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)
	require.JSONEq(t, known.Body.String(), unknown.Body.String())
	require.JSONEq(t, `{"message":"If the email exists, a reset link has been sent"}`, known.Body.String())
}

func TestResetPasswordEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unknown token", func(t *testing.T) {
		rec := doJSON(t, router, "/v1/auth/reset-password", map[string]any{
			"token":           "never-issued",
			"password":        "NewSecret456!",
			"confirmPassword": "NewSecret456!",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("password mismatch", func(t *testing.T) {
		rec := doJSON(t, router, "/v1/auth/reset-password", map[string]any{
			"token":           "whatever",
			"password":        "NewSecret456!",
			"confirmPassword": "Other456!",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"message":"Passwords do not match"}`, rec.Body.String())
	})
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("livez", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "ok", got.Status)
		require.Equal(t, "test", got.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "ok", got.Status)
		require.Equal(t, "ok", got.Database)
	})
}
