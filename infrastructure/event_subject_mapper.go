package infrastructure

import (
	"fmt"

	"officepool/events"
)

// EventSubjectMapper handles mapping between events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts an event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	return m.subjectFor(event.Type())
}

func (m *EventSubjectMapper) subjectFor(eventType events.EventType) string {
	switch eventType {
	case events.EventTypePoolCreated:
		return "pools.created"
	case events.EventTypePoolJoined:
		return "pools.joined"
	case events.EventTypePoolOwnershipClaimed:
		return "pools.ownership_claimed"
	case events.EventTypeGuessSubmitted:
		return "guesses.submitted"
	default:
		return fmt.Sprintf("unknown.%s", eventType)
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "pools.created":
		return events.EventTypePoolCreated
	case "pools.joined":
		return events.EventTypePoolJoined
	case "pools.ownership_claimed":
		return events.EventTypePoolOwnershipClaimed
	case "guesses.submitted":
		return events.EventTypeGuessSubmitted
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	subjects := make([]string, 0, len(events.AllEventTypes()))
	for _, eventType := range events.AllEventTypes() {
		subjects = append(subjects, m.subjectFor(eventType))
	}
	return subjects
}
