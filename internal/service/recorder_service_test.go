package service

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/capture-portal/internal/auth"
	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/events"
	"github.com/spec-kit/capture-portal/internal/mirror"
)

type recorderFixture struct {
	svc           *RecorderService
	applicants    *fakeApplicantRepo
	credentials   *fakeCredentialRepo
	applicantCSV  *mirror.CSV
	credentialCSV *mirror.CSV
	published     []events.Event
}

func newRecorderFixture(t *testing.T) *recorderFixture {
	t.Helper()
	dir := t.TempDir()
	f := &recorderFixture{
		applicants:    &fakeApplicantRepo{},
		credentials:   &fakeCredentialRepo{},
		applicantCSV:  mirror.NewCSV(filepath.Join(dir, "job_applications.csv")),
		credentialCSV: mirror.NewCSV(filepath.Join(dir, "logins.csv")),
	}
	require.NoError(t, f.applicantCSV.EnsureHeader(domain.ApplicantColumns))
	require.NoError(t, f.credentialCSV.EnsureHeader(domain.CredentialColumns))

	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{events.EventSubmissionRecorded, events.EventMirrorFailed} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}

	f.svc = NewRecorderService(RecorderDependencies{
		Applicants:    f.applicants,
		Credentials:   f.credentials,
		ApplicantCSV:  f.applicantCSV,
		CredentialCSV: f.credentialCSV,
		Dispatcher:    dispatcher,
		Logger:        zaptest.NewLogger(t),
		BcryptCost:    4,
	})
	f.svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 250000000, time.UTC) }
	return f
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRecordApplication_DualWrite(t *testing.T) {
	f := newRecorderFixture(t)
	client := domain.ClientInfo{IP: "10.0.0.5", UserAgent: `Mozilla/5.0 (X11; "quoted", comma)`}

	id, err := f.svc.RecordApplication(context.Background(), ApplicationInput{
		FullName: "Jane Doe",
		Position: "Engineer",
	}, client)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, f.applicants.rows, 1)
	row := f.applicants.rows[0]
	assert.Equal(t, id, row.ID)
	assert.Nil(t, row.ResumePath)
	assert.Equal(t, "2024-03-01T09:30:00.250000Z", row.CreatedAt)

	records := readCSV(t, f.applicantCSV.Path())
	require.Len(t, records, 2)
	assert.Equal(t, domain.ApplicantColumns, records[0])
	line := records[1]
	assert.Equal(t, strconv.FormatInt(id, 10), line[0])
	assert.Equal(t, "Jane Doe", line[1])
	assert.Equal(t, "", line[7])
	assert.Equal(t, client.UserAgent, line[9])
	assert.Equal(t, row.CreatedAt, line[10])

	require.Len(t, f.published, 1)
	assert.Equal(t, events.EventSubmissionRecorded, f.published[0].Type)
}

func TestRecordApplication_InsertFailureSkipsMirror(t *testing.T) {
	f := newRecorderFixture(t)
	f.applicants.err = errors.New("connection refused")

	_, err := f.svc.RecordApplication(context.Background(), ApplicationInput{FullName: "x"}, domain.ClientInfo{})
	require.Error(t, err)

	assert.Len(t, readCSV(t, f.applicantCSV.Path()), 1)
	assert.Empty(t, f.published)
}

func TestRecordApplication_MirrorFailureKeepsRow(t *testing.T) {
	f := newRecorderFixture(t)
	f.svc.applicantCSV = failingSink{}

	id, err := f.svc.RecordApplication(context.Background(), ApplicationInput{FullName: "x"}, domain.ClientInfo{IP: "1.2.3.4"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Len(t, f.applicants.rows, 1)

	require.Len(t, f.published, 2)
	assert.Equal(t, events.EventMirrorFailed, f.published[0].Type)
	assert.Equal(t, events.EventSubmissionRecorded, f.published[1].Type)
}

func TestRecordCredential_StoresDigestOnly(t *testing.T) {
	f := newRecorderFixture(t)

	id, err := f.svc.RecordCredential(context.Background(), CredentialInput{Username: "bob", Password: "hunter2"}, domain.ClientInfo{IP: "10.0.0.9"})
	require.NoError(t, err)

	require.Len(t, f.credentials.rows, 1)
	stored := f.credentials.rows[0]
	assert.Equal(t, id, stored.ID)
	assert.NotEqual(t, "hunter2", stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "hunter2"))

	records := readCSV(t, f.credentialCSV.Path())
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "bob", stored.PasswordHash, "10.0.0.9", "", stored.CreatedAt}, records[1])
	for _, field := range records[1] {
		assert.NotEqual(t, "hunter2", field)
	}
}

func TestRecordApplication_RoundTripThroughAdmin(t *testing.T) {
	f := newRecorderFixture(t)
	resume := "uploads/1709285400_cv.pdf"
	in := ApplicationInput{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "+1 555 0100",
		Position:   "Engineer",
		Experience: "5 years",
		Skills:     "go, sql",
		ResumePath: &resume,
	}
	id, err := f.svc.RecordApplication(context.Background(), in, domain.ClientInfo{IP: "10.0.0.5", UserAgent: "ua"})
	require.NoError(t, err)

	admin := NewAdminService(AdminDependencies{
		Applicants: f.applicants,
		Authorizer: staticAuthorizer("s3cret"),
		Logger:     zaptest.NewLogger(t),
	})
	got, err := admin.Submissions(context.Background(), "s3cret")
	require.NoError(t, err)
	require.Len(t, got, 1)

	a := got[0]
	assert.Equal(t, id, a.ID)
	assert.Equal(t, in.FullName, a.FullName)
	assert.Equal(t, in.Email, a.Email)
	assert.Equal(t, in.Phone, a.Phone)
	assert.Equal(t, in.Position, a.Position)
	assert.Equal(t, in.Experience, a.Experience)
	assert.Equal(t, in.Skills, a.Skills)
	assert.Equal(t, resume, *a.ResumePath)
	_, err = time.Parse(domain.TimestampLayout, a.CreatedAt)
	assert.NoError(t, err)
}
