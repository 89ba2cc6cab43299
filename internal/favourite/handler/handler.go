package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/favourite"
	id "minar/pkg/domain"
	"minar/pkg/platform/httputil"
	"minar/pkg/requestcontext"
)

type Handler struct {
	service *favourite.Service
	logger  *slog.Logger
}

func New(service *favourite.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAuthenticated mounts the actor's favourite list. The actor always
// comes from the token.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Get("/me/favourites", h.list)
	r.Put("/me/favourites/{masjidID}", h.add)
	r.Delete("/me/favourites/{masjidID}", h.remove)
}

type favouriteResponse struct {
	MasjidID  string    `json:"masjid_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	favs, err := h.service.ListByActor(ctx, requestcontext.ActorID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]favouriteResponse, 0, len(favs))
	for _, fav := range favs {
		out = append(out, favouriteResponse{
			MasjidID:  fav.MasjidID.String(),
			CreatedAt: fav.CreatedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"favourites": out})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Add(ctx, requestcontext.ActorID(ctx), masjidID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Remove(ctx, requestcontext.ActorID(ctx), masjidID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
