package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/events"
	"github.com/spec-kit/capture-portal/internal/modestore"
	"github.com/spec-kit/capture-portal/internal/repository"
	apperrors "github.com/spec-kit/capture-portal/pkg/util"
)

// MaxListedSubmissions caps admin listings.
const MaxListedSubmissions = 1000

// TokenAuthorizer checks an admin token.
type TokenAuthorizer interface {
	Authorize(token string) bool
}

// AdminService serves the admin listings and the mode switch.
type AdminService struct {
	applicants  repository.ApplicantRepository
	credentials repository.CredentialRepository
	modes       modestore.Store
	authorizer  TokenAuthorizer
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AdminDependencies bundles admin service collaborators.
type AdminDependencies struct {
	Applicants  repository.ApplicantRepository
	Credentials repository.CredentialRepository
	Modes       modestore.Store
	Authorizer  TokenAuthorizer
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		applicants:  deps.Applicants,
		credentials: deps.Credentials,
		modes:       deps.Modes,
		authorizer:  deps.Authorizer,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// Submissions returns the newest applicants when token is valid, and a
// Forbidden error with no data otherwise.
func (s *AdminService) Submissions(ctx context.Context, token string) ([]domain.Applicant, error) {
	if s.authorizer == nil || !s.authorizer.Authorize(token) {
		return nil, apperrors.NewForbidden("invalid admin token")
	}
	return s.ListApplicants(ctx)
}

// ListApplicants returns up to MaxListedSubmissions applicants, newest first.
func (s *AdminService) ListApplicants(ctx context.Context) ([]domain.Applicant, error) {
	return s.applicants.ListRecent(ctx, MaxListedSubmissions)
}

// ListCredentials returns up to MaxListedSubmissions login captures, newest first.
func (s *AdminService) ListCredentials(ctx context.Context) ([]domain.Credential, error) {
	return s.credentials.ListRecent(ctx, MaxListedSubmissions)
}

// CurrentMode reads the persisted mode.
func (s *AdminService) CurrentMode(ctx context.Context) (domain.Mode, error) {
	return s.modes.Get(ctx)
}

// SetMode persists mode. Values outside {survey, apply} and the mode already
// in effect leave the store untouched and report changed=false without an
// error.
func (s *AdminService) SetMode(ctx context.Context, mode domain.Mode) (bool, error) {
	previous, err := s.modes.Get(ctx)
	if err != nil {
		return false, err
	}
	if mode == previous {
		return false, nil
	}
	if err := s.modes.Set(ctx, mode); err != nil {
		if errors.Is(err, domain.ErrInvalidMode) {
			s.logger.Debug("mode change rejected", zap.String("mode", string(mode)))
			return false, nil
		}
		return false, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.Publish(ctx, events.New(events.EventModeChanged, events.ModeChangedPayload{
			OldMode: previous,
			NewMode: mode,
		})); err != nil {
			s.logger.Warn("event handler failed", zap.Error(err))
		}
	}
	return true, nil
}
