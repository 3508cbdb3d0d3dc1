package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"docshelf/internal/document"
	"docshelf/internal/ledger"
	"docshelf/internal/platform/middleware"
	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
)

// maxUploadMemory bounds how much of a multipart upload is buffered in
// memory before spilling to disk.
const maxUploadMemory = 32 << 20

// DocumentHandler serves the document lifecycle and ledger endpoints.
type DocumentHandler struct {
	docs   DocumentService
	access AccessEvaluator
	ledger LedgerService
	logger *slog.Logger
}

func NewDocumentHandler(docs DocumentService, access AccessEvaluator, points LedgerService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, access: access, ledger: points, logger: logger}
}

type documentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	UploaderID  string    `json:"uploader_id"`
	OrgID       *string   `json:"org_id,omitempty"`
	Visibility  string    `json:"visibility"`
	IsPremium   bool      `json:"is_premium"`
	Price       int       `json:"price"`
	Status      string    `json:"status"`
	Deactivated bool      `json:"deactivated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ContentURL  string    `json:"content_url,omitempty"`
}

func toDocumentResponse(doc document.Document) documentResponse {
	resp := documentResponse{
		ID:          doc.ID.String(),
		Title:       doc.Title,
		UploaderID:  doc.UploaderID.String(),
		Visibility:  string(doc.Visibility),
		IsPremium:   doc.IsPremium,
		Price:       doc.Price,
		Status:      string(doc.Status),
		Deactivated: doc.Deactivated,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if doc.OrgID != nil {
		orgID := doc.OrgID.String()
		resp.OrgID = &orgID
	}
	return resp
}

// Upload handles POST /api/v1/documents (multipart form).
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, r, h.logger, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, h.logger, dErrors.Wrap(err, dErrors.CodeInvalidInput, "file part is required"))
		return
	}
	defer file.Close()

	in := document.UploadInput{
		Title:       r.FormValue("title"),
		Visibility:  document.Visibility(r.FormValue("visibility")),
		Content:     file,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}
	if r.FormValue("premium") == "true" {
		in.IsPremium = true
		price, err := strconv.Atoi(r.FormValue("price"))
		if err != nil {
			respondError(w, r, h.logger, dErrors.New(dErrors.CodeInvalidInput, "price must be an integer"))
			return
		}
		in.Price = price
	}
	if raw := r.FormValue("org_id"); raw != "" {
		orgID, err := domain.ParseOrgID(raw)
		if err != nil {
			respondError(w, r, h.logger, err)
			return
		}
		in.OrgID = &orgID
	}

	doc, err := h.docs.Upload(r.Context(), ac, in)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

// Get handles GET /api/v1/documents/{documentID}. Metadata plus a download
// URL are served only when the access evaluator allows the caller.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	docID, err := domain.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	allowed, err := h.access.HasAccess(r.Context(), ac.UserID, docID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if !allowed {
		respondError(w, r, h.logger, dErrors.New(dErrors.CodeForbidden, "access denied"))
		return
	}

	doc, err := h.docs.Get(r.Context(), docID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	resp := toDocumentResponse(doc)
	if url, err := h.docs.ContentURL(r.Context(), doc); err == nil {
		resp.ContentURL = url
	} else {
		h.logger.ErrorContext(r.Context(), "presign failed", "document_id", docID, "error", err)
	}
	respondJSON(w, http.StatusOK, resp)
}

// Activate handles POST /api/v1/documents/{documentID}/activate.
func (h *DocumentHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setCirculation(w, r, h.docs.Activate)
}

// Deactivate handles POST /api/v1/documents/{documentID}/deactivate.
func (h *DocumentHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setCirculation(w, r, h.docs.Deactivate)
}

func (h *DocumentHandler) setCirculation(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, ac authz.Context, id domain.DocumentID) (document.Document, error)) {
	ac := middleware.AuthzFrom(r.Context())
	docID, err := domain.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	doc, err := op(r.Context(), ac, docID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Delete handles DELETE /api/v1/documents/{documentID}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	docID, err := domain.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if err := h.docs.Delete(r.Context(), ac, docID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type redemptionResponse struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	PointsSpent int       `json:"points_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRedemptionResponse(r ledger.Redemption) redemptionResponse {
	return redemptionResponse{
		ID:          r.ID.String(),
		DocumentID:  r.DocumentID.String(),
		PointsSpent: r.PointsSpent,
		CreatedAt:   r.CreatedAt,
	}
}

// Redeem handles POST /api/v1/documents/{documentID}/redemptions.
func (h *DocumentHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	docID, err := domain.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	redemption, err := h.ledger.Redeem(r.Context(), ac, docID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, toRedemptionResponse(redemption))
}

// Balance handles GET /api/v1/me/balance.
func (h *DocumentHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	points, err := h.ledger.Balance(r.Context(), ac.UserID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"points": points})
}

// Redemptions handles GET /api/v1/me/redemptions.
func (h *DocumentHandler) Redemptions(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	list, err := h.ledger.Redemptions(r.Context(), ac.UserID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	out := make([]redemptionResponse, 0, len(list))
	for _, redemption := range list {
		out = append(out, toRedemptionResponse(redemption))
	}
	respondJSON(w, http.StatusOK, out)
}
