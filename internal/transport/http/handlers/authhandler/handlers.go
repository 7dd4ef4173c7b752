package authhandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hradmin/internal/domain/auth"
	"hradmin/internal/requestctx"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/shared"
)

const (
	msgInvalidCredentials = "These credentials do not match our records."
	msgUnauthenticated    = "Unauthenticated."
	msgLoggedIn           = "Logged in successfully."
)

// Handler serves token login. Login attempts are throttled by the
// server-wide sensitive rate limiter.
type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Get("/me", h.handleMe)
	})
}

var messages = shared.Messages{
	"email.required":    "Email is required.",
	"password.required": "Password is required.",
}

type userResource struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type tokenResource struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	User      userResource `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	in, err := shared.DecodeInput(r)
	if err != nil {
		shared.WriteError(w, r, err, msgInvalidCredentials)
		return
	}
	v := shared.NewValidator(r.Context(), in, messages)
	email := v.Email("email", 255, true)
	password := v.String("password", 0, true)
	if err := v.Err(); err != nil {
		shared.WriteError(w, r, err, msgInvalidCredentials)
		return
	}

	token, user, err := h.Service.Login(r.Context(), email.Or(""), password.Or(""))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		requestctx.Logger(r.Context()).Info("login rejected", zap.String("email", email.Or("")))
		api.Fail(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		shared.WriteError(w, r, err, msgInvalidCredentials)
		return
	}
	api.Updated(w, msgLoggedIn, tokenResource{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.Service.TTL / time.Second),
		User:      userResource{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}
	api.Success(w, userResource{ID: user.UserID, Name: user.Name, Email: user.Email, Role: user.Role})
}
