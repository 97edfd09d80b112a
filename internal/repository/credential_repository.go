package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/persistence"
)

// CredentialRepository persists login captures.
type CredentialRepository interface {
	Create(ctx context.Context, credential *domain.Credential) error
	ListRecent(ctx context.Context, limit int) ([]domain.Credential, error)
}

var credentialSelect = []string{
	"id",
	"username",
	"password_hash",
	"COALESCE(client_ip, '') AS client_ip",
	"COALESCE(user_agent, '') AS user_agent",
	"created_at",
}

type credentialRepository struct {
	db persistence.DB
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(db persistence.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	const query = `
        INSERT INTO credentials (username, password_hash, client_ip, user_agent, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	if err := r.db.QueryRow(ctx, query,
		credential.Username,
		credential.PasswordHash,
		credential.ClientIP,
		credential.UserAgent,
		credential.CreatedAt,
	).Scan(&credential.ID); err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *credentialRepository) ListRecent(ctx context.Context, limit int) ([]domain.Credential, error) {
	query, args, err := recentQuery("credentials", credentialSelect, limit)
	if err != nil {
		return nil, fmt.Errorf("build credentials query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Credential, 0)
	for rows.Next() {
		var c domain.Credential
		if err := rows.Scan(
			&c.ID,
			&c.Username,
			&c.PasswordHash,
			&c.ClientIP,
			&c.UserAgent,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
