package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/auth"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/middleware"
)

// UserVerifier checks operator credentials.
// Satisfied by *auth.Users; narrow interface for testability.
type UserVerifier interface {
	Verify(username, password string) (*auth.User, error)
}

// AuthHandler handles operator login and logout.
type AuthHandler struct {
	users     UserVerifier
	jwtSecret string

	// secureCookie marks the session cookie Secure; off for local dev.
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users UserVerifier, jwtSecret string, secureCookie bool) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret, secureCookie: secureCookie}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success       bool   `json:"success"`
	Username      string `json:"username"`
	CanViewConfig bool   `json:"can_view_config"`
}

// Login checks credentials against the user file and sets the session
// cookie. The browser carries the cookie; the token is not in the body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	user, err := h.users.Verify(req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.Username, user.CanViewConfig)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(12 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{
		Success:       true,
		Username:      user.Username,
		CanViewConfig: user.CanViewConfig,
	})
}

// Logout expires the session cookie. Always succeeds, token or not; the
// client falls back to the login surface regardless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
