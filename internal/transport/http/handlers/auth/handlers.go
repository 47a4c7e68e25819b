package authhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rti/internal/domain/auth"
	"rti/internal/transport/http/api"
)

const tokenTTL = 8 * time.Hour

// UserFinder is the slice of the auth store the login handler needs.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (auth.User, error)
}

type Handler struct {
	Store     UserFinder
	JWTSecret string
}

func NewHandler(store UserFinder, jwtSecret string) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.Store.FindUserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{UserID: user.ID, Role: user.Role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	api.Success(w, loginResponse{Token: token, ExpiresIn: int(tokenTTL.Seconds())})
}
