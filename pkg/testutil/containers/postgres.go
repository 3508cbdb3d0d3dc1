//go:build integration

// Package containers starts throwaway backing services for integration
// tests. Each helper blocks until the service answers, so tests can use the
// returned handles immediately.
package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema mirrors what production migrations create. Kept in one place so
// every store integration suite runs against the same table shapes.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id   UUID PRIMARY KEY,
	role TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS org_memberships (
	user_id  UUID NOT NULL,
	org_id   UUID NOT NULL,
	status   TEXT NOT NULL,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (user_id, org_id)
);

CREATE TABLE IF NOT EXISTS documents (
	id          UUID PRIMARY KEY,
	title       TEXT NOT NULL,
	uploader_id UUID NOT NULL,
	org_id      UUID,
	visibility  TEXT NOT NULL,
	is_premium  BOOLEAN NOT NULL DEFAULT FALSE,
	price       INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL,
	deactivated BOOLEAN NOT NULL DEFAULT FALSE,
	storage_key TEXT NOT NULL,
	version     BIGINT NOT NULL DEFAULT 1,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS moderation_jobs (
	id           TEXT PRIMARY KEY,
	document_id  UUID NOT NULL,
	status       TEXT NOT NULL,
	verdict      TEXT NOT NULL DEFAULT '',
	error        TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS reader_balances (
	reader_id UUID PRIMARY KEY,
	points    INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0)
);

CREATE TABLE IF NOT EXISTS document_redemptions (
	id           UUID PRIMARY KEY,
	reader_id    UUID NOT NULL,
	document_id  UUID NOT NULL,
	points_spent INTEGER NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	UNIQUE (reader_id, document_id)
);

CREATE TABLE IF NOT EXISTS review_requests (
	id                UUID PRIMARY KEY,
	document_id       UUID NOT NULL,
	reviewer_id       UUID NOT NULL,
	assigned_by       UUID NOT NULL,
	note              TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL,
	reason            TEXT NOT NULL DEFAULT '',
	response_deadline TIMESTAMPTZ NOT NULL,
	review_deadline   TIMESTAMPTZ,
	version           BIGINT NOT NULL DEFAULT 1,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL,
	UNIQUE (document_id, reviewer_id)
);

CREATE TABLE IF NOT EXISTS document_reviews (
	id          UUID PRIMARY KEY,
	request_id  UUID NOT NULL UNIQUE,
	document_id UUID NOT NULL,
	reviewer_id UUID NOT NULL,
	decision    TEXT NOT NULL,
	report      TEXT NOT NULL,
	report_key  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);
`

// PostgresContainer wraps a testcontainers Postgres instance with the
// application schema already applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts Postgres, applies the schema, and registers
// cleanup on the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("docshelf_test"),
		tcpostgres.WithUsername("docshelf"),
		tcpostgres.WithPassword("docshelf"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping postgres: %v", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

// TruncateTables empties the given tables. Use between tests for isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.DB.ExecContext(ctx,
		fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", ")))
	return err
}
