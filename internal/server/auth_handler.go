package server

import (
	"encoding/json"
	"net/http"

	"github.com/tempsuisse/platform/internal/config"
)

// AuthHandler authenticates the single admin credential and issues tokens.
type AuthHandler struct {
	passwordHash string
	password     *config.PasswordConfig
	jwtService   *JWTService
}

// NewAuthHandler creates an AuthHandler. passwordHash is the bcrypt hash of
// the admin password, produced by the hash-password command.
func NewAuthHandler(passwordHash string, password *config.PasswordConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		passwordHash: passwordHash,
		password:     password,
		jwtService:   jwtService,
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued admin token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login verifies the admin password and returns a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		http.Error(w, "password is required", http.StatusBadRequest)
		return
	}

	if h.passwordHash == "" || !h.password.VerifyPassword(req.Password, h.passwordHash) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtService.GenerateAdminToken()
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(LoginResponse{Token: token}); err != nil {
		return
	}
}
