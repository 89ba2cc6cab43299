package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minar/internal/verification"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/httputil"
	"minar/pkg/requestcontext"
)

type Handler struct {
	service *verification.Service
	logger  *slog.Logger
}

func New(service *verification.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAuthenticated mounts document submission for admins proving their
// identity.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/admin-links/{linkID}/documents", h.submit)
	r.Get("/admin-links/{linkID}/documents", h.listByLink)
}

// RegisterStaff mounts the review queue and the decision endpoint.
func (h *Handler) RegisterStaff(r chi.Router) {
	r.Get("/verification/pending", h.listPending)
	r.Post("/verification/documents/{documentID}/review", h.review)
}

type submitRequest struct {
	Description string `json:"description"`
}

func (req *submitRequest) Validate() error {
	if req.Description == "" {
		return dErrors.New(dErrors.CodeBadRequest, "description is required")
	}
	return nil
}

type reviewRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}

func (req *reviewRequest) Validate() error { return nil }

type documentResponse struct {
	ID          string     `json:"id"`
	AdminLinkID string     `json:"admin_link_id"`
	Description string     `json:"description"`
	Reviewed    bool       `json:"reviewed"`
	Approved    bool       `json:"approved"`
	ReviewNotes string     `json:"review_notes,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

func toResponse(doc *verification.Document) documentResponse {
	return documentResponse{
		ID:          doc.ID.String(),
		AdminLinkID: doc.AdminLinkID.String(),
		Description: doc.Description,
		Reviewed:    doc.Reviewed,
		Approved:    doc.Approved,
		ReviewNotes: doc.ReviewNotes,
		SubmittedAt: doc.SubmittedAt,
		ReviewedAt:  doc.ReviewedAt,
	}
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	linkID, err := id.ParseAdminLinkID(chi.URLParam(r, "linkID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[submitRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	doc, err := h.service.Submit(ctx, linkID, req.Description)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(doc))
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[reviewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	doc, err := h.service.Review(ctx, documentID, req.Approved, req.Notes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(doc))
}

func (h *Handler) listByLink(w http.ResponseWriter, r *http.Request) {
	linkID, err := id.ParseAdminLinkID(chi.URLParam(r, "linkID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	docs, err := h.service.ListByAdminLink(r.Context(), linkID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeDocuments(w, docs)
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListPending(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeDocuments(w, docs)
}

func writeDocuments(w http.ResponseWriter, docs []*verification.Document) {
	out := make([]documentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"documents": out})
}
