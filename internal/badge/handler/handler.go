package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/badge"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/httputil"
	"minar/pkg/platform/middleware/metadata"
	"minar/pkg/requestcontext"
)

type Handler struct {
	service *badge.Service
	logger  *slog.Logger
}

func New(service *badge.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the badge check endpoint embedding sites hit.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/verify/{token}", h.verify)
	r.Get("/masjids/{masjidID}/badges", h.list)
}

// RegisterStaff mounts issuance and revocation.
func (h *Handler) RegisterStaff(r chi.Router) {
	r.Post("/masjids/{masjidID}/badges", h.issue)
	r.Post("/badges/{badgeID}/revoke", h.revoke)
}

type issueRequest struct {
	ExpiryDate *time.Time `json:"expiry_date"`
}

func (req *issueRequest) Validate() error { return nil }

type badgeResponse struct {
	ID            string     `json:"id"`
	Token         string     `json:"token"`
	MasjidID      string     `json:"masjid_id"`
	IssuedAt      time.Time  `json:"issued_at"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsRevoked     bool       `json:"is_revoked"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
}

func toResponse(b *badge.Badge) badgeResponse {
	return badgeResponse{
		ID:            b.ID.String(),
		Token:         b.Token,
		MasjidID:      b.MasjidID.String(),
		IssuedAt:      b.IssuedAt,
		ExpiryDate:    b.ExpiryDate,
		IsActive:      b.IsActive,
		IsRevoked:     b.IsRevoked,
		LastCheckedAt: b.LastCheckedAt,
	}
}

type verifyResponse struct {
	Valid      bool       `json:"valid"`
	MasjidID   string     `json:"masjid_id,omitempty"`
	MasjidName string     `json:"masjid_name,omitempty"`
	IssuedAt   *time.Time `json:"issued_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	device := metadata.GetClientDevice(ctx)
	h.logger.InfoContext(ctx, "badge check",
		"request_id", requestcontext.RequestID(ctx),
		"browser", device.Browser,
		"os", device.OS,
		"bot", device.Bot,
	)

	result, err := h.service.Verify(ctx, token)
	if err != nil {
		// Unknown tokens answer the same shape as invalid badges so scrapers
		// cannot distinguish "never existed" from "revoked".
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			httputil.WriteJSON(w, http.StatusNotFound, verifyResponse{Valid: false})
			return
		}
		httputil.WriteError(w, err)
		return
	}

	issuedAt := result.IssuedAt
	httputil.WriteJSON(w, http.StatusOK, verifyResponse{
		Valid:      result.Valid,
		MasjidID:   result.MasjidID.String(),
		MasjidName: result.MasjidName,
		IssuedAt:   &issuedAt,
		ExpiresAt:  result.ExpiresAt,
	})
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[issueRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	b, err := h.service.Issue(ctx, masjidID, requestcontext.ActorID(ctx), req.ExpiryDate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	badgeID, err := id.ParseBadgeID(chi.URLParam(r, "badgeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	b, err := h.service.Revoke(r.Context(), badgeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	masjidID, err := id.ParseMasjidID(chi.URLParam(r, "masjidID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	badges, err := h.service.ListByMasjid(r.Context(), masjidID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]badgeResponse, 0, len(badges))
	for _, b := range badges {
		out = append(out, toResponse(b))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"badges": out})
}
