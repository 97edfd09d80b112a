package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventModeChanged, func(_ context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventModeChanged, func(_ context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventMirrorFailed, func(_ context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventModeChanged, ModeChangedPayload{}))
	assert.ErrorContains(t, err, "boom")
	assert.ErrorContains(t, err, string(EventModeChanged))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcher_PanickingHandlerIsReported(t *testing.T) {
	d := NewInMemoryDispatcher()
	ran := false
	d.Subscribe(EventSubmissionRecorded, func(context.Context, Event) error {
		panic("nil payload")
	})
	d.Subscribe(EventSubmissionRecorded, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventSubmissionRecorded, nil))
	assert.ErrorContains(t, err, "nil payload")
	assert.True(t, ran)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), New(EventMirrorFailed, nil)))
}

func TestNew_StampsEvent(t *testing.T) {
	e := New(EventSubmissionRecorded, SubmissionRecordedPayload{ID: 1})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, EventSubmissionRecorded, e.Type)
}
