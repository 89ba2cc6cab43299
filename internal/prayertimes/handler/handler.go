package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/prayertimes"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/httputil"
	"minar/pkg/requestcontext"
)

type Handler struct {
	service *prayertimes.Service
	logger  *slog.Logger
}

func New(service *prayertimes.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts schedule reads.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/masjids/{masjidID}/prayer-times/{date}", h.get)
}

// RegisterAuthenticated mounts schedule writes.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Put("/masjids/{masjidID}/prayer-times/{date}", h.upsert)
}

type entryPayload struct {
	Adhan *string `json:"adhan,omitempty"`
	Iqama *string `json:"iqama,omitempty"`
}

type upsertRequest struct {
	Entries map[string]entryPayload `json:"entries"`
}

func (req *upsertRequest) Validate() error {
	if len(req.Entries) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "entries are required")
	}
	return nil
}

type scheduleResponse struct {
	MasjidID  string                  `json:"masjid_id"`
	Date      string                  `json:"date"`
	Entries   map[string]entryPayload `json:"entries"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func toResponse(schedule *prayertimes.Schedule) scheduleResponse {
	entries := make(map[string]entryPayload, len(schedule.Entries))
	for prayer, entry := range schedule.Entries {
		var payload entryPayload
		if entry.Adhan != nil {
			raw := string(*entry.Adhan)
			payload.Adhan = &raw
		}
		if entry.Iqama != nil {
			raw := string(*entry.Iqama)
			payload.Iqama = &raw
		}
		entries[string(prayer)] = payload
	}
	return scheduleResponse{
		MasjidID:  schedule.MasjidID.String(),
		Date:      string(schedule.Date),
		Entries:   entries,
		UpdatedAt: schedule.UpdatedAt,
	}
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := prayertimes.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[upsertRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	entries := make(map[prayertimes.Prayer]prayertimes.Entry, len(req.Entries))
	for prayer, payload := range req.Entries {
		var entry prayertimes.Entry
		if payload.Adhan != nil {
			at := prayertimes.ClockTime(*payload.Adhan)
			entry.Adhan = &at
		}
		if payload.Iqama != nil {
			at := prayertimes.ClockTime(*payload.Iqama)
			entry.Iqama = &at
		}
		entries[prayertimes.Prayer(prayer)] = entry
	}

	schedule, err := h.service.Upsert(ctx, masjidID, date, entries)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(schedule))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	schedule, err := h.service.Get(r.Context(), masjidID, prayertimes.Date(chi.URLParam(r, "date")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(schedule))
}
