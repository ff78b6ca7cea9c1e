package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"officepool/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventEnvelope wraps an event payload on the wire
type EventEnvelope struct {
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"sourceService"`
	Payload       json.RawMessage `json:"payload"`
}

// PublishObserver is notified after an event reaches the message bus
type PublishObserver interface {
	RecordNATSMessagePublished(eventType string)
}

// NATSEventPublisher forwards events from the in-process bus to NATS
type NATSEventPublisher struct {
	publisher     MessagePublisher
	subjectMapper *EventSubjectMapper
	sourceService string
	observer      PublishObserver
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(publisher MessagePublisher, subjectMapper *EventSubjectMapper, sourceService string) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		sourceService: sourceService,
		now:           time.Now,
	}
}

// WithObserver sets the observer notified on every successful publish
func (p *NATSEventPublisher) WithObserver(observer PublishObserver) *NATSEventPublisher {
	p.observer = observer
	return p
}

// Publish serializes the event into an envelope and publishes it on the event's subject
func (p *NATSEventPublisher) Publish(ctx context.Context, event events.Event) error {
	subject := p.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     string(event.Type()),
		Timestamp:     p.now().UTC(),
		SourceService: p.sourceService,
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.publisher.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	if p.observer != nil {
		p.observer.RecordNATSMessagePublished(string(event.Type()))
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")
	return nil
}

// Handle is an events.Handler. Publish failures are logged since the
// originating transaction has already committed.
func (p *NATSEventPublisher) Handle(ctx context.Context, event events.Event) {
	if err := p.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Error("Failed to forward event to NATS")
	}
}

// Register subscribes the publisher to every event type on the bus
func (p *NATSEventPublisher) Register(bus *events.Bus) {
	bus.SubscribeAll(p.Handle)
}
