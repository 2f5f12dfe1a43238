package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/canstudy/tracker/internal/config"
	"github.com/canstudy/tracker/internal/ctxkeys"
	"github.com/canstudy/tracker/internal/service"
)

type authHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: authService,
		cfg:         cfg,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message           string `json:"message"`
	UserID            string `json:"userId"`
	VerificationToken string `json:"verificationToken,omitempty"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.authService.Register(input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := registerResponse{
		Message: "User created successfully",
		UserID:  user.ID,
	}
	// No mail transport: development hands the token back directly.
	if h.cfg.IsDevelopment() {
		resp.VerificationToken = token
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *authHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Verification token required"})
		return
	}

	user, err := h.authService.VerifyEmail(token)
	if err != nil {
		slog.Warn("email verification failed", "error", err)
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email verified successfully",
		"user":    user,
	})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	expiresAt := time.Now().Add(h.authService.JWTExpiry())
	h.authService.SetJWTCookie(w, token, expiresAt)

	slog.Info("user logged in", "user_id", user.ID)
	// Cookie clients echo csrfToken in X-CSRF-Token on writes.
	writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"expiresAt": expiresAt,
		"user":      user,
		"csrfToken": ctxkeys.CSRFToken(r.Context()),
	})
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me returns the signed-in user with their profile.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"user":      ctxkeys.User(r.Context()),
		"profile":   ctxkeys.Profile(r.Context()),
		"csrfToken": ctxkeys.CSRFToken(r.Context()),
	})
}
