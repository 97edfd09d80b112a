package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/spec-kit/capture-portal/internal/domain"
)

type fakeApplicantRepo struct {
	mu     sync.Mutex
	rows   []domain.Applicant
	nextID int64
	err    error
}

func (f *fakeApplicantRepo) Create(_ context.Context, a *domain.Applicant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	a.ID = f.nextID
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeApplicantRepo) ListRecent(_ context.Context, limit int) ([]domain.Applicant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]domain.Applicant(nil), f.rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCredentialRepo struct {
	mu     sync.Mutex
	rows   []domain.Credential
	nextID int64
	err    error
}

func (f *fakeCredentialRepo) Create(_ context.Context, c *domain.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	c.ID = f.nextID
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeCredentialRepo) ListRecent(_ context.Context, limit int) ([]domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]domain.Credential(nil), f.rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type failingSink struct{}

func (failingSink) Append([]string) error { return errors.New("disk full") }
func (failingSink) Path() string { return "broken.csv" }

type staticAuthorizer string

func (s staticAuthorizer) Authorize(token string) bool { return token != "" && token == string(s) }
