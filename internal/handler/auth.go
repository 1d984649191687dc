package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/qrcounter/internal/auth"
	"github.com/kiwari-pos/qrcounter/internal/middleware"
)

// AuthHandler exchanges the operator PIN for a session token.
type AuthHandler struct {
	pinHash   string
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler. An empty pinHash disables login.
func NewAuthHandler(pinHash, jwtSecret string) *AuthHandler {
	return &AuthHandler{pinHash: pinHash, jwtSecret: jwtSecret}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login checks form field pin against the configured bcrypt hash.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.pinHash == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "operator login is not enabled"})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	pin := strings.TrimSpace(r.PostForm.Get("pin"))
	if pin == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pin is required"})
		return
	}
	if !auth.CheckPIN(h.pinHash, pin) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateOperatorToken(h.jwtSecret)
	if err != nil {
		log.Printf("ERROR: generate operator token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, ExpiresIn: int(auth.TokenTTL.Seconds())})
}
