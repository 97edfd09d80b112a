package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/persistence"
)

// ApplicantRepository persists job applications.
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *domain.Applicant) error
	ListRecent(ctx context.Context, limit int) ([]domain.Applicant, error)
}

var applicantSelect = []string{
	"id",
	"COALESCE(full_name, '') AS full_name",
	"COALESCE(email, '') AS email",
	"COALESCE(phone, '') AS phone",
	"COALESCE(position, '') AS position",
	"COALESCE(experience, '') AS experience",
	"COALESCE(skills, '') AS skills",
	"resume_path",
	"COALESCE(client_ip, '') AS client_ip",
	"COALESCE(user_agent, '') AS user_agent",
	"created_at",
}

type applicantRepository struct {
	db persistence.DB
}

// NewApplicantRepository returns a Postgres-backed implementation.
func NewApplicantRepository(db persistence.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(ctx context.Context, applicant *domain.Applicant) error {
	const query = `
        INSERT INTO applicants (full_name, email, phone, position, experience, skills, resume_path, client_ip, user_agent, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id`

	if err := r.db.QueryRow(ctx, query,
		applicant.FullName,
		applicant.Email,
		applicant.Phone,
		applicant.Position,
		applicant.Experience,
		applicant.Skills,
		applicant.ResumePath,
		applicant.ClientIP,
		applicant.UserAgent,
		applicant.CreatedAt,
	).Scan(&applicant.ID); err != nil {
		return fmt.Errorf("insert applicant: %w", err)
	}
	return nil
}

func (r *applicantRepository) ListRecent(ctx context.Context, limit int) ([]domain.Applicant, error) {
	query, args, err := recentQuery("applicants", applicantSelect, limit)
	if err != nil {
		return nil, fmt.Errorf("build applicants query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Applicant, 0)
	for rows.Next() {
		var a domain.Applicant
		if err := rows.Scan(
			&a.ID,
			&a.FullName,
			&a.Email,
			&a.Phone,
			&a.Position,
			&a.Experience,
			&a.Skills,
			&a.ResumePath,
			&a.ClientIP,
			&a.UserAgent,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
