package service

import (
	"context"

	"officepool/events"
	"officepool/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID returns nil when the user does not exist
	GetByID(ctx context.Context, id string) (*models.User, error)

	// CreateIfNotExists inserts the user unless one with the same ID exists,
	// then returns the stored row. Existing users are never modified.
	CreateIfNotExists(ctx context.Context, user *models.User) (*models.User, error)
}

// PoolRepository defines the interface for pool data access
type PoolRepository interface {
	// Create inserts a pool. A code collision returns ErrDuplicatePoolCode.
	Create(ctx context.Context, pool *models.Pool) error

	// GetByID returns nil when the pool does not exist
	GetByID(ctx context.Context, id string) (*models.Pool, error)

	// GetByCodeForUpdate looks the pool up by exact code and locks its row
	// for the rest of the transaction. Returns nil when no pool matches.
	GetByCodeForUpdate(ctx context.Context, code string) (*models.Pool, error)

	// ClaimOwnership sets the owner only if the pool has none.
	// Returns false when another owner was already set.
	ClaimOwnership(ctx context.Context, poolID, userID string) (bool, error)

	Count(ctx context.Context) (int64, error)

	// ListSummariesByParticipant returns the pools the user participates in, newest first
	ListSummariesByParticipant(ctx context.Context, userID string, previewLimit int) ([]*models.PoolSummary, error)

	// GetSummaryByID returns nil when the pool does not exist
	GetSummaryByID(ctx context.Context, poolID string, previewLimit int) (*models.PoolSummary, error)
}

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// Create inserts a participant. A second row for the same (user, pool)
	// returns ErrDuplicateParticipant.
	Create(ctx context.Context, participant *models.Participant) error

	// GetByUserAndPool returns nil when the user has not joined the pool
	GetByUserAndPool(ctx context.Context, userID, poolID string) (*models.Participant, error)

	// GetByID returns nil when the participant does not exist
	GetByID(ctx context.Context, id string) (*models.Participant, error)

	CountByPool(ctx context.Context, poolID string) (int, error)
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error

	// GetByID returns nil when the game does not exist
	GetByID(ctx context.Context, id string) (*models.Game, error)

	// ListWithParticipantGuesses returns every game ordered by kickoff with the
	// participant's guess attached. A nil participantID attaches no guesses.
	ListWithParticipantGuesses(ctx context.Context, participantID *string) ([]*models.GameWithGuess, error)
}

// GuessRepository defines the interface for guess data access
type GuessRepository interface {
	// Upsert stores the guess for (participant, game), overwriting the scores
	// of an existing one. The guess is refreshed from the stored row and
	// created reports whether a new row was inserted.
	Upsert(ctx context.Context, guess *models.Guess) (created bool, err error)

	// GetByParticipantAndGame returns nil when no guess exists
	GetByParticipantAndGame(ctx context.Context, participantID, gameID string) (*models.Guess, error)
}

// EventPublisher queues domain events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and emits queued events
	Commit() error

	// Rollback rolls back the transaction and discards queued events.
	// It is a no-op after Commit.
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	PoolRepository() PoolRepository
	ParticipantRepository() ParticipantRepository
	GameRepository() GameRepository
	GuessRepository() GuessRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// MembershipService handles joining pools by code
type MembershipService interface {
	// JoinPool adds the user to the pool identified by code. If the pool has
	// no owner the joiner becomes its owner.
	JoinPool(ctx context.Context, userID, code string) error
}

// PoolService handles pool creation and pool queries
type PoolService interface {
	// CreatePool creates a pool with a fresh join code. With a creator the
	// pool is owned by them and they are its first participant.
	CreatePool(ctx context.Context, title string, creatorID *string) (*models.Pool, error)

	CountPools(ctx context.Context) (int64, error)

	ListPoolsForUser(ctx context.Context, userID string) ([]*models.PoolSummary, error)

	GetPool(ctx context.Context, poolID string) (*models.PoolSummary, error)
}

// GameService handles game queries
type GameService interface {
	// ListGamesForPool returns every game with the caller's guess in the pool
	ListGamesForPool(ctx context.Context, poolID, userID string) ([]*models.GameWithGuess, error)
}

// GuessService handles score guesses
type GuessService interface {
	SubmitGuess(ctx context.Context, participantID, gameID string, firstTeamPoints, secondTeamPoints *int) (*GuessResult, error)

	// SubmitPoolGuess resolves the caller's participant in the pool and submits for it
	SubmitPoolGuess(ctx context.Context, userID, poolID, gameID string, firstTeamPoints, secondTeamPoints *int) (*GuessResult, error)
}

// UserService handles users synced from the identity provider
type UserService interface {
	EnsureUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// GuessResult is the outcome of a guess submission
type GuessResult struct {
	Guess   *models.Guess
	Created bool
}
