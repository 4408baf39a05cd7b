package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/BhautikKhunt0/resin-store/internal/auth"
)

// AuthHandler authenticates the single store operator. Credentials come
// from configuration, not the database; there is no admin user table.
type AuthHandler struct {
	manager       *auth.Manager
	adminEmail    string
	adminPassHash string
}

func NewAuthHandler(manager *auth.Manager, adminEmail, adminPassHash string) *AuthHandler {
	return &AuthHandler{
		manager:       manager,
		adminEmail:    adminEmail,
		adminPassHash: adminPassHash,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.adminEmail)) == 1
	if !emailMatch || !auth.CheckPassword(h.adminPassHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	token, err := h.manager.IssueToken(req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponseDTO{Token: token})
}
