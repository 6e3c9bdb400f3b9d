package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenAuth wraps the jwtauth keyset together with the token lifetime so it
// can be injected where needed instead of living in package state.
type TokenAuth struct {
	JWTAuth *jwtauth.JWTAuth
	exp     time.Duration
}

func NewTokenAuth(key []byte, exp time.Duration) *TokenAuth {
	return &TokenAuth{
		JWTAuth: jwtauth.New("HS256", key, nil),
		exp:     exp,
	}
}

// GenerateToken issues an HS256 bearer token for the given user. The jti
// claim identifies the token in the logout denylist.
func (t *TokenAuth) GenerateToken(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"jti":     uuid.NewString(),
		"exp":     now.Add(t.exp).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := t.JWTAuth.Encode(claims)
	return tokenString, err
}

func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims map[string]interface{}) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

func GetTokenIDFromClaims(claims map[string]interface{}) (string, error) {
	jti, ok := claims["jti"].(string)
	if !ok {
		return "", errors.New("jti claim is missing or not a string")
	}
	return jti, nil
}

// GetExpiryFromClaims returns the exp claim as a time. jwtauth decodes
// numeric claims either as time.Time or as float64 depending on the path.
func GetExpiryFromClaims(claims map[string]interface{}) (time.Time, error) {
	switch v := claims["exp"].(type) {
	case time.Time:
		return v, nil
	case float64:
		return time.Unix(int64(v), 0), nil
	default:
		return time.Time{}, errors.New("exp claim is missing or malformed")
	}
}
