package service

import (
	"context"
	"errors"
	"testing"

	"officepool/events"
	"officepool/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type poolTestMocks struct {
	factory         *MockUnitOfWorkFactory
	uow             *MockUnitOfWork
	poolRepo        *MockPoolRepository
	participantRepo *MockParticipantRepository
	publisher       *MockEventPublisher
	codes           *MockCodeGenerator
}

func setupPoolService(maxAttempts int) (PoolService, *poolTestMocks) {
	m := &poolTestMocks{
		factory:         new(MockUnitOfWorkFactory),
		uow:             new(MockUnitOfWork),
		poolRepo:        new(MockPoolRepository),
		participantRepo: new(MockParticipantRepository),
		publisher:       new(MockEventPublisher),
		codes:           new(MockCodeGenerator),
	}
	m.uow.SetRepositories(nil, m.poolRepo, m.participantRepo, nil, nil)
	m.uow.SetEventPublisher(m.publisher)
	m.factory.On("Create").Return(m.uow)
	return NewPoolService(m.factory, m.codes, maxAttempts), m
}

func TestPoolService_CreatePool_Anonymous(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	m.codes.On("Generate").Return("ABC123", nil).Once()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.poolRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Pool) bool {
		return p.Title == "Office Cup" && p.Code == "ABC123" && p.OwnerID == nil && p.ID != ""
	})).Return(nil)
	m.publisher.On("Publish", mock.MatchedBy(func(e events.PoolCreatedEvent) bool {
		return e.Code == "ABC123" && e.OwnerID == nil
	})).Once()

	pool, err := svc.CreatePool(ctx, "  Office Cup  ", nil)

	require.NoError(t, err)
	assert.Equal(t, "ABC123", pool.Code)
	assert.Equal(t, "Office Cup", pool.Title)
	assert.Nil(t, pool.OwnerID)
	m.participantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.uow.AssertExpectations(t)
	m.poolRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestPoolService_CreatePool_WithCreatorAddsOwnerAndParticipant(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	m.codes.On("Generate").Return("XYZ789", nil).Once()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	var createdPoolID string
	m.poolRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Pool) bool {
		return p.OwnerID != nil && *p.OwnerID == "user-1"
	})).Run(func(args mock.Arguments) {
		createdPoolID = args.Get(1).(*models.Pool).ID
	}).Return(nil)
	m.participantRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Participant) bool {
		return p.UserID == "user-1" && p.PoolID == createdPoolID
	})).Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.PoolCreatedEvent")).Once()

	pool, err := svc.CreatePool(ctx, "Office Cup", strPtr("user-1"))

	require.NoError(t, err)
	require.NotNil(t, pool.OwnerID)
	assert.Equal(t, "user-1", *pool.OwnerID)
	m.participantRepo.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}

func TestPoolService_CreatePool_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	pool, err := svc.CreatePool(ctx, "   ", nil)

	assert.Nil(t, pool)
	assert.ErrorIs(t, err, ErrInvalidInput)
	m.codes.AssertNotCalled(t, "Generate")
	m.factory.AssertNotCalled(t, "Create")
}

func TestPoolService_CreatePool_RetriesOnCodeCollision(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	m.codes.On("Generate").Return("TAKEN1", nil).Once()
	m.codes.On("Generate").Return("FRESH1", nil).Once()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.poolRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Pool) bool { return p.Code == "TAKEN1" })).
		Return(ErrDuplicatePoolCode)
	m.poolRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Pool) bool { return p.Code == "FRESH1" })).
		Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.PoolCreatedEvent")).Once()

	pool, err := svc.CreatePool(ctx, "Office Cup", nil)

	require.NoError(t, err)
	assert.Equal(t, "FRESH1", pool.Code)
	m.factory.AssertNumberOfCalls(t, "Create", 2)
	m.uow.AssertNumberOfCalls(t, "Commit", 1)
	m.codes.AssertExpectations(t)
}

func TestPoolService_CreatePool_ExhaustedAttemptsIsConflict(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(3)

	m.codes.On("Generate").Return("TAKEN1", nil)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.poolRepo.On("Create", ctx, mock.AnythingOfType("*models.Pool")).Return(ErrDuplicatePoolCode)

	pool, err := svc.CreatePool(ctx, "Office Cup", nil)

	assert.Nil(t, pool)
	assert.ErrorIs(t, err, ErrConflict)
	m.codes.AssertNumberOfCalls(t, "Generate", 3)
	m.uow.AssertNotCalled(t, "Commit")
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestPoolService_CreatePool_StoreFailureStopsRetrying(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	m.codes.On("Generate").Return("ABC123", nil)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.poolRepo.On("Create", ctx, mock.AnythingOfType("*models.Pool")).Return(errors.New("disk full"))

	_, err := svc.CreatePool(ctx, "Office Cup", nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
	m.codes.AssertNumberOfCalls(t, "Generate", 1)
}

func TestPoolService_CountPools(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.poolRepo.On("Count", ctx).Return(int64(42), nil)

	count, err := svc.CountPools(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestPoolService_ListPoolsForUser_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.poolRepo.On("ListSummariesByParticipant", ctx, "user-1", models.PoolPreviewLimit).Return(nil, nil)

	pools, err := svc.ListPoolsForUser(ctx, "user-1")

	require.NoError(t, err)
	assert.NotNil(t, pools)
	assert.Empty(t, pools)
}

func TestPoolService_GetPool_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.poolRepo.On("GetSummaryByID", ctx, "missing", models.PoolPreviewLimit).Return(nil, nil)

	pool, err := svc.GetPool(ctx, "missing")

	assert.Nil(t, pool)
	assert.ErrorIs(t, err, ErrPoolNotFound)
}

func TestPoolService_GetPool_Found(t *testing.T) {
	ctx := context.Background()
	svc, m := setupPoolService(5)

	summary := &models.PoolSummary{
		Pool:             models.Pool{ID: "pool-1", Title: "Office", Code: "BOL123"},
		Owner:            &models.PoolOwner{ID: "user-1", Name: "John Doe"},
		ParticipantCount: 1,
	}
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.poolRepo.On("GetSummaryByID", ctx, "pool-1", models.PoolPreviewLimit).Return(summary, nil)

	pool, err := svc.GetPool(ctx, "pool-1")

	require.NoError(t, err)
	assert.Equal(t, summary, pool)
}
