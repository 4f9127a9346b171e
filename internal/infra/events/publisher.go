package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentCancelled     = "appointment.cancelled"
	TypeAppointmentStatusChanged = "appointment.status_changed"
)

var ErrPublish = errors.New("events: failed to publish")

// DefaultPublishTimeout предел ожидания брокера на одно событие
const DefaultPublishTimeout = 2 * time.Second

const (
	batchTimeout = 10 * time.Millisecond
	maxAttempts  = 3
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// MessageWriter часть *kafka.Writer, которой пользуется Publisher
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AppointmentEvent тело сообщения о записи
type AppointmentEvent struct {
	EventID     string           `json:"event_id"`
	EventType   string           `json:"event_type"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Appointment AppointmentState `json:"appointment"`
}

type AppointmentState struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ServiceID uuid.UUID `json:"service_id"`
	StaffID   uuid.UUID `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Price     int64     `json:"price"`
}

// Publisher публикует события жизненного цикла записей в Kafka
// Без брокеров публикация отключена и Publish ничего не делает
// Публикация идёт в пути запроса, поэтому каждая отправка ограничена timeout
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration
	log     Logger
	now     func() time.Time
}

// NewPublisher создает издателя для списка брокеров и топика
func NewPublisher(brokers []string, topic string, timeout time.Duration, log Logger) *Publisher {
	if len(brokers) == 0 {
		log.Warn("Kafka publisher disabled (no brokers configured)")
		return &Publisher{log: log, now: time.Now}
	}
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}

	// Значения kafka-go по умолчанию (BatchTimeout 1s, 10 попыток) держат запрос секундами
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           timeout,
		MaxAttempts:            maxAttempts,
	}
	return NewPublisherWithWriter(writer, timeout, log)
}

// NewPublisherWithWriter создает издателя поверх готового writer
func NewPublisherWithWriter(writer MessageWriter, timeout time.Duration, log Logger) *Publisher {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &Publisher{writer: writer, timeout: timeout, log: log, now: time.Now}
}

// Enabled возвращает true, если издатель подключён к брокерам
func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Publish отправляет событие eventType по записи appt
// Ключ сообщения ID записи, поэтому события одной записи попадают в одну партицию
func (p *Publisher) Publish(ctx context.Context, eventType string, appt *domain.Appointment) error {
	if !p.Enabled() || appt == nil {
		return nil
	}

	event := AppointmentEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: p.now().UTC(),
		Appointment: AppointmentState{
			ID:        appt.ID,
			UserID:    appt.UserID,
			ServiceID: appt.ServiceID,
			StaffID:   appt.StaffID,
			StartTime: appt.StartTime.UTC(),
			EndTime:   appt.EndTime.UTC(),
			Status:    string(appt.Status),
			Price:     appt.Price,
		},
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPublish, eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(appt.ID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	// Отмена клиентом не должна терять событие уже созданной записи
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("%w: %s appointment_id=%s: %w", ErrPublish, eventType, appt.ID, err)
	}

	p.log.Info("Publish: event_type=%s, appointment_id=%s, event_id=%s", eventType, appt.ID, event.EventID)
	return nil
}

// Close закрывает соединение с брокерами
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
