package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/adminlink"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/httputil"
	"minar/pkg/requestcontext"
)

type Handler struct {
	service *adminlink.Service
	logger  *slog.Logger
}

func New(service *adminlink.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterStaff mounts link management; only staff wire actors to masjids.
func (h *Handler) RegisterStaff(r chi.Router) {
	r.Post("/masjids/{masjidID}/admins", h.create)
	r.Get("/masjids/{masjidID}/admins", h.list)
}

type createRequest struct {
	ActorID string `json:"actor_id"`
}

func (req *createRequest) Validate() error {
	if req.ActorID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "actor_id is required")
	}
	return nil
}

type linkResponse struct {
	ID               string     `json:"id"`
	ActorID          string     `json:"actor_id"`
	MasjidID         string     `json:"masjid_id"`
	VerifiedIdentity bool       `json:"verified_identity"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toResponse(link *adminlink.Link) linkResponse {
	return linkResponse{
		ID:               link.ID.String(),
		ActorID:          link.ActorID.String(),
		MasjidID:         link.MasjidID.String(),
		VerifiedIdentity: link.VerifiedIdentity,
		VerifiedAt:       link.VerifiedAt,
		CreatedAt:        link.CreatedAt,
	}
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

	actorID, err := id.ParseActorID(req.ActorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	link, err := h.service.Create(ctx, actorID, masjidID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(link))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	links, err := h.service.ListByMasjid(r.Context(), masjidID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]linkResponse, 0, len(links))
	for _, link := range links {
		out = append(out, toResponse(link))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"admin_links": out})
}
