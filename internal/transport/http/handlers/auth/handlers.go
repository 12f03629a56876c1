package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"payhub/internal/auth"
	"payhub/internal/transport/http/api"
	"payhub/internal/transport/http/middleware"
	"payhub/internal/transport/http/shared"
)

type Handler struct {
	DB     *pgxpool.Pool
	Secret string
}

func NewHandler(db *pgxpool.Pool, secret string) *Handler {
	return &Handler{DB: db, Secret: secret}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type credentialsRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewUsername     string `json:"new_username"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if detail := shared.ValidationDetail(payload); detail != "" {
		api.Fail(w, http.StatusBadRequest, detail)
		return
	}

	var hash string
	err := h.DB.QueryRow(r.Context(), "SELECT password_hash FROM admins WHERE username = $1", payload.Username).Scan(&hash)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := auth.GenerateToken(h.Secret, payload.Username, auth.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	api.Success(w, loginResponse{Token: token, Username: payload.Username})
}

// HandleUpdateCredentials changes the admin username and/or password. A key
// left out of the payload (or empty) means no change for that credential.
func (h *Handler) HandleUpdateCredentials(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	var payload credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if detail := shared.ValidationDetail(payload); detail != "" {
		api.Fail(w, http.StatusBadRequest, detail)
		return
	}

	var hash string
	err := h.DB.QueryRow(r.Context(), "SELECT password_hash FROM admins WHERE username = $1", username).Scan(&hash)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}
	if err := auth.CheckPassword(hash, payload.CurrentPassword); err != nil {
		api.Fail(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	newUsername := strings.TrimSpace(payload.NewUsername)
	newPassword := payload.NewPassword
	if newUsername == "" && newPassword == "" {
		api.Success(w, map[string]string{"message": "No changes requested"})
		return
	}

	if newPassword != "" {
		newHash, err := auth.HashPassword(newPassword)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "Failed to update credentials")
			return
		}
		hash = newHash
	}
	target := username
	if newUsername != "" {
		target = newUsername
	}

	if _, err := h.DB.Exec(r.Context(), `
    UPDATE admins SET username = $1, password_hash = $2 WHERE username = $3
  `, target, hash, username); err != nil {
		api.Fail(w, http.StatusInternalServerError, "Failed to update credentials")
		return
	}

	api.Success(w, map[string]string{"message": "Credentials updated successfully"})
}
