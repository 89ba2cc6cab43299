package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/confidence"
	id "minar/pkg/domain"
	"minar/pkg/platform/httputil"
)

type Handler struct {
	service *confidence.Service
	logger  *slog.Logger
}

func New(service *confidence.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the confidence read endpoint. Trust state is public
// by design: it is what external sites use to judge a listing.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/masjids/{masjidID}/confidence", h.get)
}

type confidenceResponse struct {
	MasjidID             string     `json:"masjid_id"`
	Level                int        `json:"level"`
	LastConfirmationDate time.Time  `json:"last_confirmation_date"`
	DecayDate            *time.Time `json:"decay_date,omitempty"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Get(r.Context(), masjidID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, confidenceResponse{
		MasjidID:             record.MasjidID.String(),
		Level:                int(record.Level),
		LastConfirmationDate: record.LastConfirmationDate,
		DecayDate:            record.DecayDate,
	})
}
