package domain

import (
	"strconv"
	"time"
)

// TimestampLayout is the ISO-8601 UTC layout written to both stores.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// SubmissionKind identifies the record type of a submission.
type SubmissionKind string

const (
	SubmissionKindApplicant  SubmissionKind = "applicant"
	SubmissionKindCredential SubmissionKind = "credential"
	SubmissionKindSurvey     SubmissionKind = "survey"
)

// ClientInfo carries request provenance.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
