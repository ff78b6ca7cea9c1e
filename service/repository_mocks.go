package service

import (
	"context"

	"officepool/events"
	"officepool/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CreateIfNotExists(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockPoolRepository is a mock implementation of PoolRepository
type MockPoolRepository struct {
	mock.Mock
}

func (m *MockPoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

func (m *MockPoolRepository) GetByID(ctx context.Context, id string) (*models.Pool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pool), args.Error(1)
}

func (m *MockPoolRepository) GetByCodeForUpdate(ctx context.Context, code string) (*models.Pool, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pool), args.Error(1)
}

func (m *MockPoolRepository) ClaimOwnership(ctx context.Context, poolID, userID string) (bool, error) {
	args := m.Called(ctx, poolID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPoolRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPoolRepository) ListSummariesByParticipant(ctx context.Context, userID string, previewLimit int) ([]*models.PoolSummary, error) {
	args := m.Called(ctx, userID, previewLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PoolSummary), args.Error(1)
}

func (m *MockPoolRepository) GetSummaryByID(ctx context.Context, poolID string, previewLimit int) (*models.PoolSummary, error) {
	args := m.Called(ctx, poolID, previewLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PoolSummary), args.Error(1)
}

// MockParticipantRepository is a mock implementation of ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockParticipantRepository) GetByUserAndPool(ctx context.Context, userID, poolID string) (*models.Participant, error) {
	args := m.Called(ctx, userID, poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}

func (m *MockParticipantRepository) GetByID(ctx context.Context, id string) (*models.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}

func (m *MockParticipantRepository) CountByPool(ctx context.Context, poolID string) (int, error) {
	args := m.Called(ctx, poolID)
	return args.Int(0), args.Error(1)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) ListWithParticipantGuesses(ctx context.Context, participantID *string) ([]*models.GameWithGuess, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GameWithGuess), args.Error(1)
}

// MockGuessRepository is a mock implementation of GuessRepository
type MockGuessRepository struct {
	mock.Mock
}

func (m *MockGuessRepository) Upsert(ctx context.Context, guess *models.Guess) (bool, error) {
	args := m.Called(ctx, guess)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuessRepository) GetByParticipantAndGame(ctx context.Context, participantID, gameID string) (*models.Guess, error) {
	args := m.Called(ctx, participantID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guess), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	userRepo        UserRepository
	poolRepo        PoolRepository
	participantRepo ParticipantRepository
	gameRepo        GameRepository
	guessRepo       GuessRepository
	eventPublisher  EventPublisher
}

// SetRepositories configures the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(userRepo UserRepository, poolRepo PoolRepository, participantRepo ParticipantRepository, gameRepo GameRepository, guessRepo GuessRepository) {
	m.userRepo = userRepo
	m.poolRepo = poolRepo
	m.participantRepo = participantRepo
	m.gameRepo = gameRepo
	m.guessRepo = guessRepo
}

// SetEventPublisher configures the publisher returned by EventBus
func (m *MockUnitOfWork) SetEventPublisher(publisher EventPublisher) {
	m.eventPublisher = publisher
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) PoolRepository() PoolRepository {
	return m.poolRepo
}

func (m *MockUnitOfWork) ParticipantRepository() ParticipantRepository {
	return m.participantRepo
}

func (m *MockUnitOfWork) GameRepository() GameRepository {
	return m.gameRepo
}

func (m *MockUnitOfWork) GuessRepository() GuessRepository {
	return m.guessRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventPublisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockCodeGenerator is a mock implementation of CodeGenerator
type MockCodeGenerator struct {
	mock.Mock
}

func (m *MockCodeGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
