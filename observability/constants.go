package observability

// Metric name prefixes
const (
	MetricPrefix = "officepool"
)

// Metric names
const (
	// Pool metrics
	PoolsCreatedTotal    = MetricPrefix + ".pools.created_total"
	PoolJoinsTotal       = MetricPrefix + ".pools.joins_total"
	OwnershipClaimsTotal = MetricPrefix + ".pools.ownership_claims_total"

	// Guess metrics
	GuessesSubmittedTotal = MetricPrefix + ".guesses.submitted_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelEventType = "event_type"
	LabelOwned     = "owned"
	LabelOutcome   = "outcome"
)

// Guess outcomes
const (
	GuessOutcomeCreated     = "created"
	GuessOutcomeOverwritten = "overwritten"
)
