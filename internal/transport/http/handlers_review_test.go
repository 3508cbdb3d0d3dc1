package http

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"docshelf/internal/review"
	"docshelf/internal/transport/http/mocks"
	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
)

type ReviewHandlerSuite struct {
	suite.Suite
	caller authz.Context
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerSuite))
}

func (s *ReviewHandlerSuite) SetupSuite() {
	s.caller = authz.Context{UserID: domain.NewUserID(), Role: domain.RoleBusinessAdmin}
}

func (s *ReviewHandlerSuite) newRouter(t *testing.T) (*mocks.MockReviewService, chi.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockReviewService(ctrl)
	handler := NewReviewHandler(service, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Use(injectAuthz(s.caller))
	router.Post("/documents/{documentID}/review-requests", handler.Assign)
	router.Get("/documents/{documentID}/review-requests", handler.ListForDocument)
	router.Get("/review-requests", handler.ListMine)
	router.Get("/review-requests/{requestID}", handler.Get)
	router.Post("/review-requests/{requestID}/response", handler.Respond)
	router.Post("/review-requests/{requestID}/review", handler.Submit)
	return service, router
}

func sampleRequest(docID domain.DocumentID, reviewerID domain.UserID) review.ReviewRequest {
	now := time.Now().UTC().Truncate(time.Second)
	return review.ReviewRequest{
		ID:               domain.NewReviewRequestID(),
		DocumentID:       docID,
		ReviewerID:       reviewerID,
		AssignedBy:       domain.NewUserID(),
		Status:           review.RequestPending,
		ResponseDeadline: now.Add(24 * time.Hour),
		CreatedAt:        now,
	}
}

func (s *ReviewHandlerSuite) TestAssign() {
	s.T().Run("valid assignment - 201", func(t *testing.T) {
		service, router := s.newRouter(t)
		docID := domain.NewDocumentID()
		reviewerID := domain.NewUserID()
		created := sampleRequest(docID, reviewerID)
		service.EXPECT().Assign(gomock.Any(), s.caller, docID, reviewerID, "priority").Return(created, nil)

		status, body := doRequest(t, router, http.MethodPost,
			"/documents/"+docID.String()+"/review-requests",
			strings.NewReader(`{"reviewer_id":"`+reviewerID.String()+`","note":"priority"}`))

		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, created.ID.String(), body["id"])
		assert.Equal(t, string(review.RequestPending), body["status"])
	})

	s.T().Run("malformed reviewer id - 400", func(t *testing.T) {
		service, router := s.newRouter(t)
		service.EXPECT().Assign(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, body := doRequest(t, router, http.MethodPost,
			"/documents/"+domain.NewDocumentID().String()+"/review-requests",
			strings.NewReader(`{"reviewer_id":"nope"}`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, string(dErrors.CodeInvalidInput), body["error"])
	})

	s.T().Run("non-admin caller - 403", func(t *testing.T) {
		service, router := s.newRouter(t)
		docID := domain.NewDocumentID()
		reviewerID := domain.NewUserID()
		service.EXPECT().Assign(gomock.Any(), s.caller, docID, reviewerID, "").
			Return(review.ReviewRequest{}, dErrors.New(dErrors.CodeForbidden, "operation requires role business_admin"))

		status, body := doRequest(t, router, http.MethodPost,
			"/documents/"+docID.String()+"/review-requests",
			strings.NewReader(`{"reviewer_id":"`+reviewerID.String()+`"}`))

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, string(dErrors.CodeForbidden), body["error"])
	})

	s.T().Run("duplicate pair - 400", func(t *testing.T) {
		service, router := s.newRouter(t)
		docID := domain.NewDocumentID()
		reviewerID := domain.NewUserID()
		service.EXPECT().Assign(gomock.Any(), s.caller, docID, reviewerID, "").
			Return(review.ReviewRequest{}, dErrors.New(dErrors.CodeInvalidRequest, "reviewer already assigned to this document"))

		status, body := doRequest(t, router, http.MethodPost,
			"/documents/"+docID.String()+"/review-requests",
			strings.NewReader(`{"reviewer_id":"`+reviewerID.String()+`"}`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, string(dErrors.CodeInvalidRequest), body["error"])
	})
}

func (s *ReviewHandlerSuite) TestRespond() {
	s.T().Run("accept - 200 with review deadline", func(t *testing.T) {
		service, router := s.newRouter(t)
		accepted := sampleRequest(domain.NewDocumentID(), s.caller.UserID)
		accepted.Status = review.RequestAccepted
		deadline := accepted.CreatedAt.Add(72 * time.Hour)
		accepted.ReviewDeadline = &deadline
		service.EXPECT().Respond(gomock.Any(), s.caller, accepted.ID, true, "").Return(accepted, nil)

		status, body := doRequest(t, router, http.MethodPost,
			"/review-requests/"+accepted.ID.String()+"/response",
			strings.NewReader(`{"accept":true}`))

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, string(review.RequestAccepted), body["status"])
		assert.NotEmpty(t, body["review_deadline"])
	})

	s.T().Run("expired assignment - 409", func(t *testing.T) {
		service, router := s.newRouter(t)
		requestID := domain.NewReviewRequestID()
		service.EXPECT().Respond(gomock.Any(), s.caller, requestID, true, "").
			Return(review.ReviewRequest{}, dErrors.New(dErrors.CodeInvalidState, "assignment has expired"))

		status, body := doRequest(t, router, http.MethodPost,
			"/review-requests/"+requestID.String()+"/response",
			strings.NewReader(`{"accept":true}`))

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, string(dErrors.CodeInvalidState), body["error"])
	})

	s.T().Run("malformed body - 400", func(t *testing.T) {
		service, router := s.newRouter(t)
		service.EXPECT().Respond(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, _ := doRequest(t, router, http.MethodPost,
			"/review-requests/"+domain.NewReviewRequestID().String()+"/response",
			strings.NewReader(`{bad-json`))

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func (s *ReviewHandlerSuite) TestSubmit() {
	s.T().Run("valid submission - 201", func(t *testing.T) {
		service, router := s.newRouter(t)
		requestID := domain.NewReviewRequestID()
		created := review.DocumentReview{
			ID:         domain.NewReviewID(),
			RequestID:  requestID,
			DocumentID: domain.NewDocumentID(),
			ReviewerID: s.caller.UserID,
			Decision:   review.DecisionApproved,
			Report:     "content is sound",
			ReportKey:  "reviews/" + requestID.String() + "/report.txt",
			CreatedAt:  time.Now().UTC(),
		}
		service.EXPECT().Submit(gomock.Any(), s.caller, requestID, review.DecisionApproved, "content is sound").
			Return(created, nil)

		status, body := doRequest(t, router, http.MethodPost,
			"/review-requests/"+requestID.String()+"/review",
			strings.NewReader(`{"decision":"approved","report":"content is sound"}`))

		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, created.ID.String(), body["id"])
		assert.Equal(t, "approved", body["decision"])
		assert.Equal(t, created.ReportKey, body["report_key"])
	})

	s.T().Run("missing report - 400", func(t *testing.T) {
		service, router := s.newRouter(t)
		service.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, body := doRequest(t, router, http.MethodPost,
			"/review-requests/"+domain.NewReviewRequestID().String()+"/review",
			strings.NewReader(`{"decision":"approved"}`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, string(dErrors.CodeInvalidInput), body["error"])
	})

	s.T().Run("unknown decision - 400", func(t *testing.T) {
		service, router := s.newRouter(t)
		requestID := domain.NewReviewRequestID()
		service.EXPECT().Submit(gomock.Any(), s.caller, requestID, review.Decision("maybe"), "hmm").
			Return(review.DocumentReview{}, dErrors.New(dErrors.CodeInvalidInput, "decision must be approved or rejected"))

		status, _ := doRequest(t, router, http.MethodPost,
			"/review-requests/"+requestID.String()+"/review",
			strings.NewReader(`{"decision":"maybe","report":"hmm"}`))

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func (s *ReviewHandlerSuite) TestReads() {
	s.T().Run("get - 200", func(t *testing.T) {
		service, router := s.newRouter(t)
		request := sampleRequest(domain.NewDocumentID(), domain.NewUserID())
		service.EXPECT().Get(gomock.Any(), request.ID).Return(request, nil)

		status, body := doRequest(t, router, http.MethodGet, "/review-requests/"+request.ID.String(), nil)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, request.ID.String(), body["id"])
	})

	s.T().Run("get unknown - 404", func(t *testing.T) {
		service, router := s.newRouter(t)
		requestID := domain.NewReviewRequestID()
		service.EXPECT().Get(gomock.Any(), requestID).
			Return(review.ReviewRequest{}, dErrors.New(dErrors.CodeNotFound, "review request not found"))

		status, _ := doRequest(t, router, http.MethodGet, "/review-requests/"+requestID.String(), nil)

		assert.Equal(t, http.StatusNotFound, status)
	})

	s.T().Run("list mine - 200", func(t *testing.T) {
		service, router := s.newRouter(t)
		request := sampleRequest(domain.NewDocumentID(), s.caller.UserID)
		service.EXPECT().ListForReviewer(gomock.Any(), s.caller.UserID).
			Return([]review.ReviewRequest{request}, nil)

		status, _ := doRequest(t, router, http.MethodGet, "/review-requests", nil)

		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("list for document - 200", func(t *testing.T) {
		service, router := s.newRouter(t)
		docID := domain.NewDocumentID()
		service.EXPECT().ListForDocument(gomock.Any(), docID).Return(nil, nil)

		status, _ := doRequest(t, router, http.MethodGet, "/documents/"+docID.String()+"/review-requests", nil)

		assert.Equal(t, http.StatusOK, status)
	})
}
