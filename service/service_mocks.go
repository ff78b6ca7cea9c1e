package service

import (
	"context"

	"officepool/models"

	"github.com/stretchr/testify/mock"
)

// MockMembershipService is a mock implementation of MembershipService
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) JoinPool(ctx context.Context, userID, code string) error {
	args := m.Called(ctx, userID, code)
	return args.Error(0)
}

// MockPoolService is a mock implementation of PoolService
type MockPoolService struct {
	mock.Mock
}

func (m *MockPoolService) CreatePool(ctx context.Context, title string, creatorID *string) (*models.Pool, error) {
	args := m.Called(ctx, title, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pool), args.Error(1)
}

func (m *MockPoolService) CountPools(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPoolService) ListPoolsForUser(ctx context.Context, userID string) ([]*models.PoolSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PoolSummary), args.Error(1)
}

func (m *MockPoolService) GetPool(ctx context.Context, poolID string) (*models.PoolSummary, error) {
	args := m.Called(ctx, poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PoolSummary), args.Error(1)
}

// MockGameService is a mock implementation of GameService
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) ListGamesForPool(ctx context.Context, poolID, userID string) ([]*models.GameWithGuess, error) {
	args := m.Called(ctx, poolID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GameWithGuess), args.Error(1)
}

// MockGuessService is a mock implementation of GuessService
type MockGuessService struct {
	mock.Mock
}

func (m *MockGuessService) SubmitGuess(ctx context.Context, participantID, gameID string, firstTeamPoints, secondTeamPoints *int) (*GuessResult, error) {
	args := m.Called(ctx, participantID, gameID, firstTeamPoints, secondTeamPoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GuessResult), args.Error(1)
}

func (m *MockGuessService) SubmitPoolGuess(ctx context.Context, userID, poolID, gameID string, firstTeamPoints, secondTeamPoints *int) (*GuessResult, error) {
	args := m.Called(ctx, userID, poolID, gameID, firstTeamPoints, secondTeamPoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GuessResult), args.Error(1)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
