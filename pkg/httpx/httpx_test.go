package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/logisticsfuture/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrdering(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}

func TestReadJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `json:"email"`
	}

	newReq := func(body, contentType string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if contentType != "" {
			r.Header.Set("Content-Type", contentType)
		}
		return r
	}

	t.Run("decodes valid body", func(t *testing.T) {
		var p payload
		err := ReadJSON(httptest.NewRecorder(), newReq(`{"email":"a@x.com"}`, "application/json"), &p)
		require.NoError(t, err)
		require.Equal(t, "a@x.com", p.Email)
	})

	t.Run("rejects wrong content type", func(t *testing.T) {
		var p payload
		err := ReadJSON(httptest.NewRecorder(), newReq(`{"email":"a@x.com"}`, "text/plain"), &p)
		require.ErrorIs(t, err, ErrInvalidJSONBody)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		var p payload
		err := ReadJSON(httptest.NewRecorder(), newReq(`{"email":`, "application/json"), &p)
		require.ErrorIs(t, err, ErrInvalidJSONBody)
	})

	t.Run("rejects trailing garbage", func(t *testing.T) {
		var p payload
		err := ReadJSON(httptest.NewRecorder(), newReq(`{"email":"a@x.com"}{"again":true}`, "application/json"), &p)
		require.ErrorIs(t, err, ErrInvalidJSONBody)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	codec, err := jwtx.NewCodec("secret", time.Minute, time.Hour, nil)
	require.NoError(t, err)

	var gotUserID, gotEmail string
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotEmail = EmailFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), AuthnMiddleware(codec))

	t.Run("valid token passes claims through", func(t *testing.T) {
		token, err := codec.IssueAccessToken("user-1", "a@x.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "user-1", gotUserID)
		require.Equal(t, "a@x.com", gotEmail)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
