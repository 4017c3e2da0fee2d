// Package service implements the HTTP API: input validation, business rules,
// and translation of storage outcomes to response codes.
package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmzou/contactbook/internal/auth"
	"github.com/mmzou/contactbook/internal/errs"
	"github.com/mmzou/contactbook/internal/httputil"
)

// AuthService handles registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
		logger:        logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	Token   string `json:"token"`
}

// HandleRegister creates a new account and its default group atomically.
// POST /api/register
func (s *AuthService) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	email := strings.TrimSpace(req.Email)

	if username == "" || password == "" {
		httputil.BadRequest(w, "username and password are required")
		return
	}

	user, err := s.authenticator.Register(r.Context(), username, email, password)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			httputil.BadRequest(w, "username already exists")
			return
		}
		s.logger.Error("registration failed", "username", username, "error", err)
		httputil.InternalError(w, "registration failed")
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("failed to generate token", "user_id", user.ID, "error", err)
		httputil.InternalError(w, "registration failed")
		return
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	httputil.WriteJSON(w, http.StatusCreated, registerResponse{
		Message: "registration successful",
		UserID:  user.ID,
		Token:   token,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message  string `json:"message"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// HandleLogin verifies credentials and issues a session token.
// POST /api/login
func (s *AuthService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)

	user, err := s.authenticator.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httputil.Unauthorized(w, "invalid username or password")
			return
		}
		s.logger.Error("login failed", "username", username, "error", err)
		httputil.InternalError(w, "login failed")
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("failed to generate token", "user_id", user.ID, "error", err)
		httputil.InternalError(w, "login failed")
		return
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		Message:  "login successful",
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
	})
}
