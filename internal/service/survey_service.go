package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/events"
)

// AlignedSink appends keyed values aligned to a header fixed by the first row.
type AlignedSink interface {
	AppendAligned(keys []string, values map[string]string) ([]string, error)
	Path() string
}

// SurveyField is one answer in submission order.
type SurveyField struct {
	Name  string
	Value string
}

// SurveyService appends free-form survey answers to the survey CSV.
type SurveyService struct {
	sink       AlignedSink
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSurveyService builds the service.
func NewSurveyService(sink AlignedSink, dispatcher events.Dispatcher, logger *zap.Logger) *SurveyService {
	return &SurveyService{sink: sink, dispatcher: dispatcher, logger: logger}
}

// Submit trims and appends the answers. A repeated field keeps its first
// value. Empty submissions are ignored.
func (s *SurveyService) Submit(ctx context.Context, fields []SurveyField, client domain.ClientInfo) error {
	keys := make([]string, 0, len(fields))
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		if _, seen := values[name]; seen {
			continue
		}
		keys = append(keys, name)
		values[name] = strings.TrimSpace(f.Value)
	}
	if len(keys) == 0 {
		s.logger.Debug("empty survey submission ignored")
		return nil
	}

	dropped, err := s.sink.AppendAligned(keys, values)
	if err != nil {
		return err
	}
	if len(dropped) > 0 {
		s.logger.Debug("survey fields not in header dropped", zap.Strings("fields", dropped))
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.Publish(ctx, events.New(events.EventSubmissionRecorded, events.SubmissionRecordedPayload{
			Kind:     domain.SubmissionKindSurvey,
			ClientIP: client.IP,
		})); err != nil {
			s.logger.Warn("event handler failed", zap.Error(err))
		}
	}
	return nil
}
