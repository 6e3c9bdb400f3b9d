package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common/security"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/platform/redisstore"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UserRoleCtxKey contextKey = "userRole"
	TokenIDCtxKey  contextKey = "tokenID"
)

// Authenticator validates the verified token's claims, rejects denylisted
// (logged-out) tokens and stashes the user identity in the context. It runs
// after jwtauth.Verifier, which parses the Authorization header.
func Authenticator(denylist *redisstore.TokenDenylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if strings.Contains(err.Error(), "token not found") || token == nil {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}
			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			roleStr, err := security.GetUserRoleFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			role, err := model.ParseRole(roleStr)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}

			jti, _ := security.GetTokenIDFromClaims(claims)
			if jti != "" && denylist != nil {
				revoked, err := denylist.IsRevoked(r.Context(), jti)
				if err != nil {
					common.RespondWithError(w, http.StatusInternalServerError, "Failed to validate token")
					return
				}
				if revoked {
					common.RespondWithError(w, http.StatusUnauthorized, "Token has been revoked")
					return
				}
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			ctx = context.WithValue(ctx, UserRoleCtxKey, role)
			ctx = context.WithValue(ctx, TokenIDCtxKey, jti)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ProfessorOnly gates professor-scoped routes. Ownership checks, where they
// apply, live in the services.
func ProfessorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleCtxKey).(model.Role)
		if !ok || role != model.RoleProfessor {
			common.RespondWithError(w, http.StatusForbidden, "Professor access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

func GetUserRoleFromContext(ctx context.Context) (model.Role, bool) {
	role, ok := ctx.Value(UserRoleCtxKey).(model.Role)
	return role, ok
}

func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	jti, ok := ctx.Value(TokenIDCtxKey).(string)
	return jti, ok
}
