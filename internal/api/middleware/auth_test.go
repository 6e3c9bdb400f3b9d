package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common/security"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

func newAuthTestServer(t *testing.T, ta *security.TokenAuth) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(ta.JWTAuth))
	r.Use(Authenticator(nil))

	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		role, ok := GetUserRoleFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(userID + ":" + string(role)))
	})

	r.Group(func(prof chi.Router) {
		prof.Use(ProfessorOnly)
		prof.Get("/staff", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator(t *testing.T) {
	ta := security.NewTokenAuth([]byte("test-secret"), time.Hour)
	srv := newAuthTestServer(t, ta)

	t.Run("valid token", func(t *testing.T) {
		token, err := ta.GenerateToken("user-1", string(model.RoleStudent))
		require.NoError(t, err)

		rec := doRequest(t, srv, "/whoami", token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1:student", rec.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(t, srv, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(t, srv, "/whoami", "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := security.NewTokenAuth([]byte("other-secret"), time.Hour)
		token, err := other.GenerateToken("user-1", string(model.RoleStudent))
		require.NoError(t, err)

		rec := doRequest(t, srv, "/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown role claim", func(t *testing.T) {
		token, err := ta.GenerateToken("user-1", "admin")
		require.NoError(t, err)

		rec := doRequest(t, srv, "/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProfessorOnly(t *testing.T) {
	ta := security.NewTokenAuth([]byte("test-secret"), time.Hour)
	srv := newAuthTestServer(t, ta)

	t.Run("professor allowed", func(t *testing.T) {
		token, err := ta.GenerateToken("prof-1", string(model.RoleProfessor))
		require.NoError(t, err)

		rec := doRequest(t, srv, "/staff", token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("student rejected", func(t *testing.T) {
		token, err := ta.GenerateToken("student-1", string(model.RoleStudent))
		require.NoError(t, err)

		rec := doRequest(t, srv, "/staff", token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
