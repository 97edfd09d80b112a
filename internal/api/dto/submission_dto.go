package dto

import "github.com/spec-kit/capture-portal/internal/domain"

// SubmissionsResponse wraps an admin listing.
type SubmissionsResponse[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// NewApplicantsResponse builds the applicant listing envelope.
func NewApplicantsResponse(rows []domain.Applicant) SubmissionsResponse[domain.Applicant] {
	if rows == nil {
		rows = []domain.Applicant{}
	}
	return SubmissionsResponse[domain.Applicant]{Count: len(rows), Data: rows}
}

// NewCredentialsResponse builds the credential listing envelope.
func NewCredentialsResponse(rows []domain.Credential) SubmissionsResponse[domain.Credential] {
	if rows == nil {
		rows = []domain.Credential{}
	}
	return SubmissionsResponse[domain.Credential]{Count: len(rows), Data: rows}
}
