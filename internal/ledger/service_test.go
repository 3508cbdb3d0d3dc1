package ledger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"docshelf/internal/document"
	"docshelf/internal/notification"
	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
	"docshelf/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	store    *MemoryStore
	docs     *document.MemoryStore
	recorder *notification.Recorder
	svc      *Service

	reader   domain.UserID
	uploader domain.UserID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.store = NewMemoryStore()
	s.docs = document.NewMemoryStore()
	s.recorder = notification.NewRecorder()
	s.svc = NewService(s.store, s.docs, s.recorder, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.reader = domain.NewUserID()
	s.uploader = domain.NewUserID()
}

func (s *ServiceSuite) premiumDoc(price int) document.Document {
	s.T().Helper()
	doc := document.Document{
		ID:         domain.NewDocumentID(),
		Title:      "Premium",
		UploaderID: s.uploader,
		Visibility: document.VisibilityPublic,
		IsPremium:  true,
		Price:      price,
		Status:     document.StatusActive,
	}
	s.Require().NoError(s.docs.Create(s.ctx, doc))
	return doc
}

func (s *ServiceSuite) TestRedeem() {
	ac := authz.Context{UserID: s.reader, Role: domain.RoleReader}

	// === HAPPY PATH ===

	s.Run("exact balance redeems to zero", func() {
		doc := s.premiumDoc(100)
		s.store.SetBalance(s.reader, 100)

		r, err := s.svc.Redeem(s.ctx, ac, doc.ID)
		s.Require().NoError(err)
		s.Equal(100, r.PointsSpent)

		balance, err := s.svc.Balance(s.ctx, s.reader)
		s.Require().NoError(err)
		s.Equal(0, balance)

		has, err := s.store.HasRedemption(s.ctx, s.reader, doc.ID)
		s.Require().NoError(err)
		s.True(has)
	})

	s.Run("redemption publishes an event to the uploader", func() {
		doc := s.premiumDoc(10)
		s.store.SetBalance(s.reader, 10)
		_, err := s.svc.Redeem(s.ctx, ac, doc.ID)
		s.Require().NoError(err)

		events := s.recorder.ByType(notification.EventDocumentRedeemed)
		s.Require().NotEmpty(events)
		s.Equal(s.uploader, events[len(events)-1].Recipient)
	})

	// === PRECONDITIONS ===

	s.Run("unknown document", func() {
		_, err := s.svc.Redeem(s.ctx, ac, domain.NewDocumentID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("non-premium document", func() {
		doc := document.Document{
			ID:         domain.NewDocumentID(),
			Title:      "Free",
			UploaderID: s.uploader,
			Visibility: document.VisibilityPublic,
			Status:     document.StatusActive,
		}
		s.Require().NoError(s.docs.Create(s.ctx, doc))

		_, err := s.svc.Redeem(s.ctx, ac, doc.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidRequest))
	})

	s.Run("self redemption", func() {
		doc := s.premiumDoc(10)
		_, err := s.svc.Redeem(s.ctx, authz.Context{UserID: s.uploader, Role: domain.RoleReader}, doc.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidRequest))
	})

	// === LEDGER INVARIANTS ===

	s.Run("insufficient balance leaves the ledger untouched", func() {
		doc := s.premiumDoc(100)
		s.store.SetBalance(s.reader, 99)

		_, err := s.svc.Redeem(s.ctx, ac, doc.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientBalance))

		balance, err := s.svc.Balance(s.ctx, s.reader)
		s.Require().NoError(err)
		s.Equal(99, balance)

		has, err := s.store.HasRedemption(s.ctx, s.reader, doc.ID)
		s.Require().NoError(err)
		s.False(has)
	})

	s.Run("second redemption of the same pair is rejected without a debit", func() {
		doc := s.premiumDoc(40)
		s.store.SetBalance(s.reader, 100)

		_, err := s.svc.Redeem(s.ctx, ac, doc.ID)
		s.Require().NoError(err)

		_, err = s.svc.Redeem(s.ctx, ac, doc.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyRedeemed))

		balance, err := s.svc.Balance(s.ctx, s.reader)
		s.Require().NoError(err)
		s.Equal(60, balance, "only the first redemption debits")
	})

	s.Run("zero priced premium document redeems with an empty balance", func() {
		doc := s.premiumDoc(0)
		r, err := s.svc.Redeem(s.ctx, ac, doc.ID)
		s.Require().NoError(err)
		s.Equal(0, r.PointsSpent)
	})
}

func (s *ServiceSuite) TestAward() {
	s.Run("credits accumulate", func() {
		s.Require().NoError(s.svc.Award(s.ctx, s.uploader, 10))
		s.Require().NoError(s.svc.Award(s.ctx, s.uploader, 5))

		balance, err := s.svc.Balance(s.ctx, s.uploader)
		s.Require().NoError(err)
		s.Equal(15, balance)
	})

	s.Run("non-positive awards are rejected", func() {
		s.True(dErrors.HasCode(s.svc.Award(s.ctx, s.uploader, 0), dErrors.CodeInvalidInput))
		s.True(dErrors.HasCode(s.svc.Award(s.ctx, s.uploader, -1), dErrors.CodeInvalidInput))
	})
}

// TestConcurrentRedemptions drives many racing redeem calls at one
// (reader, document) pair and expects exactly one winner.
func TestConcurrentRedemptions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	docs := document.NewMemoryStore()
	svc := NewService(store, docs, notification.Noop{}, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	reader := domain.NewUserID()
	uploader := domain.NewUserID()
	doc := document.Document{
		ID:         domain.NewDocumentID(),
		Title:      "Premium",
		UploaderID: uploader,
		Visibility: document.VisibilityPublic,
		IsPremium:  true,
		Price:      100,
		Status:     document.StatusActive,
	}
	if err := docs.Create(ctx, doc); err != nil {
		t.Fatal(err)
	}
	store.SetBalance(reader, 1000)

	const attempts = 100
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		duplicate int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Redeem(ctx, authz.Context{UserID: reader, Role: domain.RoleReader}, doc.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case dErrors.HasCode(err, dErrors.CodeAlreadyRedeemed):
				duplicate++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("want exactly 1 successful redemption, got %d", successes)
	}
	if duplicate != attempts-1 {
		t.Fatalf("want %d AlreadyRedeemed failures, got %d", attempts-1, duplicate)
	}
	balance, err := store.Balance(ctx, reader)
	if err != nil {
		t.Fatal(err)
	}
	if balance != 900 {
		t.Fatalf("want balance debited exactly once to 900, got %d", balance)
	}
}
