package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sakif/collabspace/internal/auth"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
	"github.com/sakif/collabspace/internal/service"
)

// AuthHandler serves registration, login, logout and the user directory.
//
// The session token travels only in the HttpOnly "session" cookie; it is
// never included in a response body.
type AuthHandler struct {
	auth         *service.AuthService
	sessionTTL   time.Duration
	secureCookie bool
	logger       *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, tokens *auth.TokenService, secureCookie bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:         svc,
		sessionTTL:   tokens.TTL(),
		secureCookie: secureCookie,
		logger:       logger,
	}
}

type registerRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Role     model.UserRole `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// HandleRegister creates an account and signs it in.
//
// HTTP: POST /api/auth/register → 201 {"message": ..., "user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.setSession(w, res.Token)
	writeJSON(w, http.StatusCreated, authResponse{Message: "User registered successfully", User: res.User})
}

// HandleLogin checks credentials and sets the session cookie.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.setSession(w, res.Token)
	writeJSON(w, http.StatusOK, authResponse{Message: "Logged in successfully", User: res.User})
}

// HandleLogout expires the session cookie. Tokens are stateless, so there is
// nothing to revoke on the server.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookie)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

// HandleMe returns the signed-in user.
//
// HTTP: GET /api/me (RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	user, err := h.auth.Me(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleListUsers returns users sorted by name.
//
// HTTP: GET /api/users?limit=&offset=
func (h *AuthHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	users, err := h.auth.ListUsers(r.Context(), repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleSearchUsers backs the "add member" picker.
//
// HTTP: GET /api/users/search?q= (RequireAuth)
func (h *AuthHandler) HandleSearchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.SearchUsers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	auth.SetSessionCookie(w, token, h.sessionTTL, h.secureCookie)
}
