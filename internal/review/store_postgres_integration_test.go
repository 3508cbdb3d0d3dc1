//go:build integration

package review_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"docshelf/internal/review"
	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/testutil/containers"
)

type PostgresRequestStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	requests *review.PostgresRequestStore
	reviews  *review.PostgresReviewStore
}

func TestPostgresRequestStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRequestStoreSuite))
}

func (s *PostgresRequestStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.requests = review.NewPostgresRequestStore(s.postgres.DB)
	s.reviews = review.NewPostgresReviewStore(s.postgres.DB)
}

func (s *PostgresRequestStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "review_requests", "document_reviews")
	s.Require().NoError(err)
}

func newStoredRequest(docID domain.DocumentID, reviewerID domain.UserID, deadline time.Time) review.ReviewRequest {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return review.ReviewRequest{
		ID:               domain.NewReviewRequestID(),
		DocumentID:       docID,
		ReviewerID:       reviewerID,
		AssignedBy:       domain.NewUserID(),
		Status:           review.RequestPending,
		ResponseDeadline: deadline,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// TestConcurrentDuplicateAssignment verifies the pair uniqueness constraint
// under concurrency: one insert wins, the rest report duplicates.
func (s *PostgresRequestStoreSuite) TestConcurrentDuplicateAssignment() {
	ctx := context.Background()
	docID := domain.NewDocumentID()
	reviewerID := domain.NewUserID()
	deadline := time.Now().UTC().Add(24 * time.Hour)

	const goroutines = 30
	var wg sync.WaitGroup
	var successCount, duplicateCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.requests.Create(ctx, newStoredRequest(docID, reviewerID, deadline))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrDuplicate):
				duplicateCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one assignment should win")
	s.Equal(int32(goroutines-1), duplicateCount.Load())
}

func (s *PostgresRequestStoreSuite) TestPairUniquenessSurvivesTerminalStates() {
	ctx := context.Background()
	docID := domain.NewDocumentID()
	reviewerID := domain.NewUserID()
	first := newStoredRequest(docID, reviewerID, time.Now().UTC().Add(24*time.Hour))
	s.Require().NoError(s.requests.Create(ctx, first))

	first.Status = review.RequestRejected
	first.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.requests.Update(ctx, first))

	err := s.requests.Create(ctx, newStoredRequest(docID, reviewerID, time.Now().UTC().Add(24*time.Hour)))
	s.Require().ErrorIs(err, sentinel.ErrDuplicate, "pair stays unique after rejection")
}

func (s *PostgresRequestStoreSuite) TestUpdateStaleVersionConflicts() {
	ctx := context.Background()
	request := newStoredRequest(domain.NewDocumentID(), domain.NewUserID(), time.Now().UTC().Add(24*time.Hour))
	s.Require().NoError(s.requests.Create(ctx, request))

	fresh := request
	fresh.Status = review.RequestAccepted
	fresh.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.requests.Update(ctx, fresh))

	stale := request
	stale.Status = review.RequestRejected
	err := s.requests.Update(ctx, stale)
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	got, err := s.requests.Get(ctx, request.ID)
	s.Require().NoError(err)
	s.Equal(review.RequestAccepted, got.Status)
	s.Equal(2, got.Version)
}

func (s *PostgresRequestStoreSuite) TestUpdateUnknownRequestNotFound() {
	request := newStoredRequest(domain.NewDocumentID(), domain.NewUserID(), time.Now().UTC())
	err := s.requests.Update(context.Background(), request)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresRequestStoreSuite) TestListOverdue() {
	ctx := context.Background()
	now := time.Now().UTC()

	overduePending := newStoredRequest(domain.NewDocumentID(), domain.NewUserID(), now.Add(-time.Hour))
	s.Require().NoError(s.requests.Create(ctx, overduePending))

	overdueAccepted := newStoredRequest(domain.NewDocumentID(), domain.NewUserID(), now.Add(time.Hour))
	s.Require().NoError(s.requests.Create(ctx, overdueAccepted))
	overdueAccepted.Status = review.RequestAccepted
	lapsed := now.Add(-time.Minute)
	overdueAccepted.ReviewDeadline = &lapsed
	overdueAccepted.UpdatedAt = now
	s.Require().NoError(s.requests.Update(ctx, overdueAccepted))

	fresh := newStoredRequest(domain.NewDocumentID(), domain.NewUserID(), now.Add(time.Hour))
	s.Require().NoError(s.requests.Create(ctx, fresh))

	list, err := s.requests.ListOverdue(ctx, now)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	ids := map[domain.ReviewRequestID]bool{list[0].ID: true, list[1].ID: true}
	s.True(ids[overduePending.ID])
	s.True(ids[overdueAccepted.ID])
}

func (s *PostgresRequestStoreSuite) TestGetByPair() {
	ctx := context.Background()
	request := newStoredRequest(domain.NewDocumentID(), domain.NewUserID(), time.Now().UTC().Add(24*time.Hour))
	s.Require().NoError(s.requests.Create(ctx, request))

	got, found, err := s.requests.GetByPair(ctx, request.DocumentID, request.ReviewerID)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(request.ID, got.ID)

	_, found, err = s.requests.GetByPair(ctx, request.DocumentID, domain.NewUserID())
	s.Require().NoError(err)
	s.False(found)
}

func (s *PostgresRequestStoreSuite) TestReviewUniquePerRequest() {
	ctx := context.Background()
	request := newStoredRequest(domain.NewDocumentID(), domain.NewUserID(), time.Now().UTC().Add(24*time.Hour))
	s.Require().NoError(s.requests.Create(ctx, request))

	submitted := review.DocumentReview{
		ID:         domain.NewReviewID(),
		RequestID:  request.ID,
		DocumentID: request.DocumentID,
		ReviewerID: request.ReviewerID,
		Decision:   review.DecisionApproved,
		Report:     "reads well",
		ReportKey:  "reviews/" + request.ID.String() + "/report.txt",
		CreatedAt:  time.Now().UTC(),
	}
	s.Require().NoError(s.reviews.Create(ctx, submitted))

	second := submitted
	second.ID = domain.NewReviewID()
	err := s.reviews.Create(ctx, second)
	s.Require().ErrorIs(err, sentinel.ErrDuplicate)

	got, err := s.reviews.GetByRequest(ctx, request.ID)
	s.Require().NoError(err)
	s.Equal(submitted.ID, got.ID)
	s.Equal(submitted.ReportKey, got.ReportKey)
}
