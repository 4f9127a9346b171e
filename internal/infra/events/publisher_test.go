package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

// stuckWriter имитирует недоступный брокер: висит до отмены контекста
type stuckWriter struct {
	deadline bool
}

func (w *stuckWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	_, w.deadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func (w *stuckWriter) Close() error { return nil }

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, 0, logger.NewNop())

	appt := &domain.Appointment{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		StartTime: time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 10, 21, 13, 0, 0, 0, time.UTC),
		Status:    domain.StatusConfirmed,
		Price:     5000,
	}

	require.NoError(t, p.Publish(context.Background(), TypeAppointmentCreated, appt))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, appt.ID.String(), string(msg.Key))
	assert.Equal(t, TypeAppointmentCreated, headerValue(msg.Headers, "event_type"))
	assert.NotEmpty(t, headerValue(msg.Headers, "event_id"))

	var event AppointmentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, headerValue(msg.Headers, "event_id"), event.EventID)
	assert.Equal(t, appt.ID, event.Appointment.ID)
	assert.Equal(t, "confirmed", event.Appointment.Status)
}

func TestPublisher_WriteError(t *testing.T) {
	p := NewPublisherWithWriter(&fakeWriter{err: errors.New("broker down")}, 0, logger.NewNop())

	err := p.Publish(context.Background(), TypeAppointmentCancelled, &domain.Appointment{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublisher_DisabledWithoutBrokers(t *testing.T) {
	p := NewPublisher(nil, "salon.appointments", 0, logger.NewNop())

	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), TypeAppointmentCreated, &domain.Appointment{ID: uuid.New()}))
	assert.NoError(t, p.Close())
}

func TestPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, 0, logger.NewNop())

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestPublisher_Publish_BoundedByTimeout(t *testing.T) {
	writer := &stuckWriter{}
	p := NewPublisherWithWriter(writer, 50*time.Millisecond, logger.NewNop())

	started := time.Now()
	err := p.Publish(context.Background(), TypeAppointmentCreated, &domain.Appointment{ID: uuid.New()})

	require.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, writer.deadline)
	assert.Less(t, time.Since(started), time.Second)
}

func TestPublisher_Publish_IgnoresCallerCancellation(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, 0, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Publish(ctx, TypeAppointmentCancelled, &domain.Appointment{ID: uuid.New()}))
	assert.Len(t, writer.messages, 1)
}
