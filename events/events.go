package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePoolCreated          EventType = "pool_created"
	EventTypePoolJoined           EventType = "pool_joined"
	EventTypePoolOwnershipClaimed EventType = "pool_ownership_claimed"
	EventTypeGuessSubmitted       EventType = "guess_submitted"
)

// AllEventTypes lists every event type emitted by the services
func AllEventTypes() []EventType {
	return []EventType{
		EventTypePoolCreated,
		EventTypePoolJoined,
		EventTypePoolOwnershipClaimed,
		EventTypeGuessSubmitted,
	}
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PoolCreatedEvent is emitted after a pool is persisted
type PoolCreatedEvent struct {
	PoolID  string  `json:"poolId"`
	Title   string  `json:"title"`
	Code    string  `json:"code"`
	OwnerID *string `json:"ownerId,omitempty"`
}

func (e PoolCreatedEvent) Type() EventType {
	return EventTypePoolCreated
}

// PoolJoinedEvent is emitted after a user becomes a participant through a join code
type PoolJoinedEvent struct {
	PoolID           string `json:"poolId"`
	PoolTitle        string `json:"poolTitle"`
	PoolCode         string `json:"poolCode"`
	ParticipantID    string `json:"participantId"`
	UserID           string `json:"userId"`
	UserName         string `json:"userName"`
	ClaimedOwnership bool   `json:"claimedOwnership"`
}

func (e PoolJoinedEvent) Type() EventType {
	return EventTypePoolJoined
}

// PoolOwnershipClaimedEvent is emitted when an ownerless pool gets its owner
type PoolOwnershipClaimedEvent struct {
	PoolID    string `json:"poolId"`
	PoolTitle string `json:"poolTitle"`
	OwnerID   string `json:"ownerId"`
	OwnerName string `json:"ownerName"`
}

func (e PoolOwnershipClaimedEvent) Type() EventType {
	return EventTypePoolOwnershipClaimed
}

// GuessSubmittedEvent is emitted after a guess is created or overwritten
type GuessSubmittedEvent struct {
	GuessID          string `json:"guessId"`
	ParticipantID    string `json:"participantId"`
	GameID           string `json:"gameId"`
	FirstTeamPoints  int    `json:"firstTeamPoints"`
	SecondTeamPoints int    `json:"secondTeamPoints"`
	Created          bool   `json:"created"`
}

func (e GuessSubmittedEvent) Type() EventType {
	return EventTypeGuessSubmitted
}
