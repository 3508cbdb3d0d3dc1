package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"docshelf/internal/access"
	"docshelf/internal/auth"
	"docshelf/internal/auth/revocation"
	"docshelf/internal/document"
	"docshelf/internal/identity"
	"docshelf/internal/ledger"
	"docshelf/internal/moderation"
	"docshelf/internal/notification"
	"docshelf/internal/platform/config"
	"docshelf/internal/platform/httpserver"
	"docshelf/internal/platform/logger"
	"docshelf/internal/platform/metrics"
	"docshelf/internal/platform/middleware"
	"docshelf/internal/platform/postgres"
	redisplatform "docshelf/internal/platform/redis"
	"docshelf/internal/review"
	"docshelf/internal/storage"
	httptransport "docshelf/internal/transport/http"
	"docshelf/pkg/platform/tx"
)

// stores groups one backend's implementations so main swaps the whole set at
// once instead of mixing memory and Postgres halves.
type stores struct {
	documents document.Store
	jobs      moderation.Store
	points    ledger.Store
	requests  review.RequestStore
	reviews   review.ReviewStore
	directory identity.Store
	uow       tx.Runner
	db        *sql.DB
}

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	m := metrics.New()

	st, err := buildStores(cfg)
	if err != nil {
		log.Error("store initialization failed", "error", err)
		os.Exit(1)
	}
	if st.db != nil {
		defer st.db.Close()
	}

	blobs, err := buildStorage(cfg)
	if err != nil {
		log.Error("blob storage initialization failed", "error", err)
		os.Exit(1)
	}

	notifier, closeNotifier, err := buildNotifier(cfg, log)
	if err != nil {
		log.Error("notifier initialization failed", "error", err)
		os.Exit(1)
	}
	defer closeNotifier()

	revocations, err := buildRevocations(cfg)
	if err != nil {
		log.Error("revocation list initialization failed", "error", err)
		os.Exit(1)
	}

	var dispatcher moderation.Dispatcher = moderation.NoopDispatcher{}
	if cfg.ModerationURL != "" {
		dispatcher = moderation.NewHTTPDispatcher(cfg.ModerationURL, cfg.ModerationCallbackURL)
	}

	ledgerSvc := ledger.NewService(st.points, st.documents, notifier, m, log)
	moderationSvc := moderation.NewService(
		st.jobs, st.documents, blobs, ledgerSvc, dispatcher,
		notifier, m, st.uow, cfg.UploaderAwardPoints, log,
	)
	documentSvc := document.NewService(st.documents, blobs, st.directory, moderationSvc, notifier, st.uow, log)
	reviewSvc := review.NewService(
		st.requests, st.reviews, documentSvc, blobs, st.directory,
		notifier, m, st.uow, cfg.ResponseDeadline, cfg.ReviewDeadline, log,
	)
	evaluator := access.NewEvaluator(st.documents, st.directory, st.points, st.requests, log)

	jwtService := auth.NewJWTService(cfg.JWTSigningKey, "docshelf")

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Documents:   httptransport.NewDocumentHandler(documentSvc, evaluator, ledgerSvc, log),
		Reviews:     httptransport.NewReviewHandler(reviewSvc, log),
		Webhooks:    httptransport.NewWebhookHandler(moderationSvc, cfg.WebhookSecret, log),
		Validator:   jwtService,
		Revocations: revocations,
		Metrics:     m,
		Logger:      log,
	})

	srv := httpserver.New(cfg.Addr, router)
	sweeper := review.NewSweeper(reviewSvc, cfg.SweepInterval, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting docshelf", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		err := sweeper.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func buildStores(cfg config.Config) (stores, error) {
	if cfg.PostgresDSN == "" {
		return stores{
			documents: document.NewMemoryStore(),
			jobs:      moderation.NewMemoryStore(),
			points:    ledger.NewMemoryStore(),
			requests:  review.NewMemoryRequestStore(),
			reviews:   review.NewMemoryReviewStore(),
			directory: identity.NewInMemoryStore(),
			uow:       tx.NewMemoryRunner(),
		}, nil
	}

	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		return stores{}, err
	}
	return stores{
		documents: document.NewPostgresStore(db),
		jobs:      moderation.NewPostgresStore(db),
		points:    ledger.NewPostgresStore(db),
		requests:  review.NewPostgresRequestStore(db),
		reviews:   review.NewPostgresReviewStore(db),
		directory: identity.NewPostgresStore(db),
		uow:       tx.NewSQLRunner(db),
		db:        db,
	}, nil
}

func buildStorage(cfg config.Config) (storage.Storage, error) {
	if cfg.MinioEndpoint == "" {
		return storage.NewInMemory(), nil
	}
	return storage.NewMinIO(storage.MinIOConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
}

func buildNotifier(cfg config.Config, log *slog.Logger) (notification.Notifier, func(), error) {
	if cfg.KafkaBrokers == "" {
		return notification.Noop{}, func() {}, nil
	}
	kafka, err := notification.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	if err != nil {
		return nil, nil, err
	}
	return kafka, kafka.Close, nil
}

func buildRevocations(cfg config.Config) (middleware.RevocationChecker, error) {
	client, err := redisplatform.New(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return revocation.NewMemoryTRL(), nil
	}
	return revocation.NewRedisTRL(client.Client), nil
}
