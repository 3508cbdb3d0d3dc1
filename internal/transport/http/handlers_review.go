package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"docshelf/internal/platform/middleware"
	"docshelf/internal/review"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
)

// ReviewHandler serves the review assignment endpoints.
type ReviewHandler struct {
	reviews ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(reviews ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

type reviewRequestResponse struct {
	ID               string     `json:"id"`
	DocumentID       string     `json:"document_id"`
	ReviewerID       string     `json:"reviewer_id"`
	AssignedBy       string     `json:"assigned_by"`
	Note             string     `json:"note,omitempty"`
	Status           string     `json:"status"`
	Reason           string     `json:"reason,omitempty"`
	ResponseDeadline time.Time  `json:"response_deadline"`
	ReviewDeadline   *time.Time `json:"review_deadline,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toReviewRequestResponse(r review.ReviewRequest) reviewRequestResponse {
	return reviewRequestResponse{
		ID:               r.ID.String(),
		DocumentID:       r.DocumentID.String(),
		ReviewerID:       r.ReviewerID.String(),
		AssignedBy:       r.AssignedBy.String(),
		Note:             r.Note,
		Status:           string(r.Status),
		Reason:           r.Reason,
		ResponseDeadline: r.ResponseDeadline,
		ReviewDeadline:   r.ReviewDeadline,
		CreatedAt:        r.CreatedAt,
	}
}

// Assign handles POST /api/v1/documents/{documentID}/review-requests.
func (h *ReviewHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	docID, err := domain.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var body struct {
		ReviewerID string `json:"reviewer_id"`
		Note       string `json:"note"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	reviewerID, err := domain.ParseUserID(body.ReviewerID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	created, err := h.reviews.Assign(r.Context(), ac, docID, reviewerID, body.Note)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, toReviewRequestResponse(created))
}

// ListForDocument handles GET /api/v1/documents/{documentID}/review-requests.
func (h *ReviewHandler) ListForDocument(w http.ResponseWriter, r *http.Request) {
	docID, err := domain.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	list, err := h.reviews.ListForDocument(r.Context(), docID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respondList(w, list)
}

// ListMine handles GET /api/v1/review-requests.
func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	list, err := h.reviews.ListForReviewer(r.Context(), ac.UserID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respondList(w, list)
}

func (h *ReviewHandler) respondList(w http.ResponseWriter, list []review.ReviewRequest) {
	out := make([]reviewRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReviewRequestResponse(r))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/review-requests/{requestID}.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID, err := domain.ParseReviewRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	got, err := h.reviews.Get(r.Context(), requestID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toReviewRequestResponse(got))
}

// Respond handles POST /api/v1/review-requests/{requestID}/response.
func (h *ReviewHandler) Respond(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	requestID, err := domain.ParseReviewRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var body struct {
		Accept bool   `json:"accept"`
		Reason string `json:"reason"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	updated, err := h.reviews.Respond(r.Context(), ac, requestID, body.Accept, body.Reason)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toReviewRequestResponse(updated))
}

// Submit handles POST /api/v1/review-requests/{requestID}/review.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthzFrom(r.Context())
	requestID, err := domain.ParseReviewRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var body struct {
		Decision string `json:"decision"`
		Report   string `json:"report"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if body.Report == "" {
		respondError(w, r, h.logger, dErrors.New(dErrors.CodeInvalidInput, "report is required"))
		return
	}

	created, err := h.reviews.Submit(r.Context(), ac, requestID, review.Decision(body.Decision), body.Report)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":          created.ID.String(),
		"request_id":  created.RequestID.String(),
		"document_id": created.DocumentID.String(),
		"decision":    string(created.Decision),
		"report":      created.Report,
		"report_key":  created.ReportKey,
		"created_at":  created.CreatedAt,
	})
}
