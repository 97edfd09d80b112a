package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/capture-portal/internal/auth"
	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/events"
	"github.com/spec-kit/capture-portal/internal/repository"
)

// RowSink appends a row to a CSV mirror.
type RowSink interface {
	Append(row []string) error
	Path() string
}

// ApplicationInput is the typed application payload.
type ApplicationInput struct {
	FullName   string
	Email      string
	Phone      string
	Position   string
	Experience string
	Skills     string
	ResumePath *string
}

// CredentialInput is the typed login payload. Password is plaintext and is
// only ever hashed.
type CredentialInput struct {
	Username string
	Password string
}

// RecorderService writes submissions to the relational store and then to the
// CSV mirror. The relational row is authoritative: a failed insert skips the
// mirror, a failed mirror append keeps the row and is only reported.
type RecorderService struct {
	applicants    repository.ApplicantRepository
	credentials   repository.CredentialRepository
	applicantCSV  RowSink
	credentialCSV RowSink
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	bcryptCost    int
	now           func() time.Time
}

// RecorderDependencies bundles what the recorder writes to.
type RecorderDependencies struct {
	Applicants    repository.ApplicantRepository
	Credentials   repository.CredentialRepository
	ApplicantCSV  RowSink
	CredentialCSV RowSink
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	BcryptCost    int
}

// NewRecorderService builds the service.
func NewRecorderService(deps RecorderDependencies) *RecorderService {
	return &RecorderService{
		applicants:    deps.Applicants,
		credentials:   deps.Credentials,
		applicantCSV:  deps.ApplicantCSV,
		credentialCSV: deps.CredentialCSV,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		bcryptCost:    deps.BcryptCost,
		now:           time.Now,
	}
}

// RecordApplication persists an application and returns its id.
func (s *RecorderService) RecordApplication(ctx context.Context, in ApplicationInput, client domain.ClientInfo) (int64, error) {
	applicant := &domain.Applicant{
		FullName:   in.FullName,
		Email:      in.Email,
		Phone:      in.Phone,
		Position:   in.Position,
		Experience: in.Experience,
		Skills:     in.Skills,
		ResumePath: in.ResumePath,
		ClientIP:   client.IP,
		UserAgent:  client.UserAgent,
		CreatedAt:  domain.FormatTimestamp(s.now()),
	}
	if err := s.applicants.Create(ctx, applicant); err != nil {
		return 0, err
	}

	s.mirror(ctx, domain.SubmissionKindApplicant, applicant.ID, client.IP, s.applicantCSV, applicant.CSVRow())
	return applicant.ID, nil
}

// RecordCredential hashes the password and persists the capture.
func (s *RecorderService) RecordCredential(ctx context.Context, in CredentialInput, client domain.ClientInfo) (int64, error) {
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return 0, err
	}

	credential := &domain.Credential{
		Username:     in.Username,
		PasswordHash: hash,
		ClientIP:     client.IP,
		UserAgent:    client.UserAgent,
		CreatedAt:    domain.FormatTimestamp(s.now()),
	}
	if err := s.credentials.Create(ctx, credential); err != nil {
		return 0, err
	}

	s.mirror(ctx, domain.SubmissionKindCredential, credential.ID, client.IP, s.credentialCSV, credential.CSVRow())
	return credential.ID, nil
}

func (s *RecorderService) mirror(ctx context.Context, kind domain.SubmissionKind, id int64, clientIP string, sink RowSink, row []string) {
	if err := sink.Append(row); err != nil {
		s.logger.Warn("csv mirror append failed; relational row kept",
			zap.String("kind", string(kind)),
			zap.Int64("id", id),
			zap.String("path", sink.Path()),
			zap.Error(err))
		s.publish(ctx, events.New(events.EventMirrorFailed, events.MirrorFailedPayload{
			Kind:  kind,
			ID:    id,
			Path:  sink.Path(),
			Error: err.Error(),
		}))
	}

	s.publish(ctx, events.New(events.EventSubmissionRecorded, events.SubmissionRecordedPayload{
		Kind:     kind,
		ID:       id,
		ClientIP: clientIP,
	}))
}

func (s *RecorderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
