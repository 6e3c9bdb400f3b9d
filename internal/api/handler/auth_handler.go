package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/middleware"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common/security"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
}

func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	jti, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok || jti == "" {
		common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Logged out"})
		return
	}
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	expiry, err := security.GetExpiryFromClaims(claims)
	if err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
		return
	}
	if err := h.authService.Logout(r.Context(), jti, expiry); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Logged out"})
}
