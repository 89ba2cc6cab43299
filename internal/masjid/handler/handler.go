package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/masjid"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/httputil"
	"minar/pkg/requestcontext"
)

type Handler struct {
	service *masjid.Service
	logger  *slog.Logger
}

func New(service *masjid.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts directory read endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/masjids", h.list)
	r.Get("/masjids/{masjidID}", h.get)
}

// RegisterAuthenticated mounts write endpoints for masjid admins.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/masjids", h.create)
	r.Put("/masjids/{masjidID}", h.update)
	r.Post("/masjids/{masjidID}/deactivate", h.deactivate)
}

// RegisterStaff mounts destructive endpoints.
func (h *Handler) RegisterStaff(r chi.Router) {
	r.Delete("/masjids/{masjidID}", h.delete)
}

type locationPayload struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	CountryCode string  `json:"country_code"`
	Region      string  `json:"region"`
}

type masjidRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    locationPayload `json:"location"`
}

func (req *masjidRequest) Validate() error {
	if req.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	return nil
}

type masjidResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    locationPayload `json:"location"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toResponse(m *masjid.Masjid) masjidResponse {
	return masjidResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Location: locationPayload{
			Latitude:    m.Location.Latitude,
			Longitude:   m.Location.Longitude,
			City:        m.Location.City,
			CountryCode: m.Location.CountryCode,
			Region:      m.Location.Region,
		},
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toLocation(p locationPayload) masjid.Location {
	return masjid.Location{
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		City:        p.City,
		CountryCode: p.CountryCode,
		Region:      p.Region,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[masjidRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, req.Name, req.Description, toLocation(req.Location))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.service.Get(r.Context(), masjidID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := masjid.Filter{
		NameQuery:   query.Get("q"),
		CountryCode: query.Get("country"),
		ActiveOnly:  query.Get("include_inactive") != "true",
	}

	masjids, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]masjidResponse, 0, len(masjids))
	for _, m := range masjids {
		out = append(out, toResponse(m))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"masjids": out})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[masjidRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, masjidID, req.Name, req.Description, toLocation(req.Location))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.service.Deactivate(r.Context(), masjidID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), masjidID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
