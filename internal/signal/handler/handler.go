package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/actor"
	"minar/internal/signal"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/httputil"
	"minar/pkg/requestcontext"
)

type Handler struct {
	service *signal.Service
	logger  *slog.Logger
}

func New(service *signal.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the per-masjid signal listing.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/masjids/{masjidID}/signals", h.list)
}

// RegisterAuthenticated mounts signal creation. The reporting actor comes
// from the token, never the body.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/masjids/{masjidID}/signals", h.create)
}

type createRequest struct {
	Type        string `json:"type"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

func (req *createRequest) Validate() error {
	if req.Type == "" {
		return dErrors.New(dErrors.CodeBadRequest, "signal type is required")
	}
	if req.Source == "" {
		req.Source = string(signal.SourceUser)
	}
	return nil
}

type signalResponse struct {
	ID          string    `json:"id"`
	MasjidID    string    `json:"masjid_id"`
	ActorID     string    `json:"actor_id,omitempty"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(sig *signal.Signal) signalResponse {
	resp := signalResponse{
		ID:          sig.ID.String(),
		MasjidID:    sig.MasjidID.String(),
		Type:        string(sig.Type),
		Source:      string(sig.Source),
		Description: sig.Description,
		CreatedAt:   sig.CreatedAt,
	}
	if sig.ActorID != nil {
		resp.ActorID = sig.ActorID.String()
	}
	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[createRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	sigType, err := signal.ParseType(req.Type)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	source, err := signal.ParseSource(req.Source)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// Only staff and admins may submit non-USER sources.
	if source != signal.SourceUser && actor.Role(requestcontext.ActorRole(ctx)) == actor.RoleUser {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "only admins may submit admin or system signals"))
		return
	}

	var actorID *id.ActorID
	if aid := requestcontext.ActorID(ctx); !aid.IsNil() {
		actorID = &aid
	}

	sig, err := h.service.Create(ctx, masjidID, actorID, sigType, source, req.Description)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(sig))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	signals, err := h.service.ListByMasjid(r.Context(), masjidID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]signalResponse, 0, len(signals))
	for _, sig := range signals {
		out = append(out, toResponse(sig))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"signals": out})
}
