package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/actor"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/httputil"
	"minar/pkg/requestcontext"
)

// Handler exposes actor registration and authentication endpoints.
type Handler struct {
	service *actor.Service
	logger  *slog.Logger
}

func New(service *actor.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/actors/register", h.register)
	r.Post("/actors/login", h.login)
}

// RegisterAuthenticated mounts routes that require a valid token.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Get("/actors/me", h.me)
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

func (req *registerRequest) Validate() error {
	if req.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if req.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "password is required")
	}
	if req.Role == "" {
		req.Role = string(actor.RoleUser)
	}
	if _, err := actor.ParseRole(req.Role); err != nil {
		return err
	}
	return nil
}

type actorResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func toActorResponse(a *actor.Actor) actorResponse {
	return actorResponse{
		ID:          a.ID.String(),
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Role:        string(a.Role),
		CreatedAt:   a.CreatedAt,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[registerRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	created, err := h.service.Register(ctx, req.Email, req.DisplayName, req.Password, actor.Role(req.Role))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toActorResponse(created))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *loginRequest) Validate() error {
	if req.Email == "" || req.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	return nil
}

type loginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	Actor       actorResponse `json:"actor"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[loginRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	token, authenticated, err := h.service.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		Actor:       toActorResponse(authenticated),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := requestcontext.ActorID(ctx)
	if actorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	found, err := h.service.Get(ctx, actorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toActorResponse(found))
}
