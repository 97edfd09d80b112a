//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/persistence"
)

// setupPostgres starts a disposable PostgreSQL container and returns a pool
// with the schema applied.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "portal",
				"POSTGRES_PASSWORD": "portal",
				"POSTGRES_DB":       "portal",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://portal:portal@%s:%s/portal?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logger := zaptest.NewLogger(t)
	require.NoError(t, persistence.EnsureSchema(ctx, pool, logger))
	require.NoError(t, persistence.EnsureSchema(ctx, pool, logger))
	return pool
}

func TestIntegration_ApplicantRoundTrip(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo := NewApplicantRepository(pool)

	resume := "uploads/1700000000_cv.pdf"
	first := &domain.Applicant{FullName: "Jane Doe", Position: "Engineer", ClientIP: "10.0.0.2", CreatedAt: "2024-01-01T00:00:00.000000Z"}
	second := &domain.Applicant{FullName: `O"Brien, Pat`, ResumePath: &resume, CreatedAt: "2024-01-01T00:00:01.000000Z"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.ListRecent(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, *second, got[0])
	assert.Equal(t, *first, got[1])
}

func TestIntegration_CredentialRoundTrip(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo := NewCredentialRepository(pool)

	cred := &domain.Credential{Username: "bob", PasswordHash: "$2a$10$x", CreatedAt: "2024-01-01T00:00:00.000000Z"}
	require.NoError(t, repo.Create(ctx, cred))

	got, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *cred, got[0])
}
