package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"officepool/events"
	"officepool/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultPoolCodeMaxAttempts bounds code generation retries on collision
const DefaultPoolCodeMaxAttempts = 5

type poolService struct {
	uowFactory      UnitOfWorkFactory
	codes           CodeGenerator
	maxCodeAttempts int
}

// NewPoolService creates a new pool service
func NewPoolService(uowFactory UnitOfWorkFactory, codes CodeGenerator, maxCodeAttempts int) PoolService {
	if maxCodeAttempts <= 0 {
		maxCodeAttempts = DefaultPoolCodeMaxAttempts
	}
	return &poolService{
		uowFactory:      uowFactory,
		codes:           codes,
		maxCodeAttempts: maxCodeAttempts,
	}
}

// CreatePool creates a pool with a freshly generated code.
// A unique violation aborts the PostgreSQL transaction, so every attempt runs
// in its own unit of work.
func (s *poolService) CreatePool(ctx context.Context, title string, creatorID *string) (*models.Pool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrPoolTitleRequired
	}
	if creatorID != nil && *creatorID == "" {
		creatorID = nil
	}

	for attempt := 1; attempt <= s.maxCodeAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate pool code: %w", err)
		}

		pool, err := s.createWithCode(ctx, title, code, creatorID)
		if errors.Is(err, ErrDuplicatePoolCode) {
			log.WithFields(log.Fields{
				"attempt": attempt,
				"code":    code,
			}).Warn("Pool code collision, retrying with a new code")
			continue
		}
		if err != nil {
			return nil, err
		}
		return pool, nil
	}

	log.WithField("attempts", s.maxCodeAttempts).Error("Exhausted pool code attempts")
	return nil, ErrPoolCodeExhausted
}

func (s *poolService) createWithCode(ctx context.Context, title, code string, creatorID *string) (*models.Pool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pool := &models.Pool{
		ID:      uuid.NewString(),
		Title:   title,
		Code:    code,
		OwnerID: creatorID,
	}
	if err := uow.PoolRepository().Create(ctx, pool); err != nil {
		if errors.Is(err, ErrDuplicatePoolCode) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	// An authenticated creator owns the pool and is its first participant
	if creatorID != nil {
		participant := &models.Participant{
			ID:     uuid.NewString(),
			UserID: *creatorID,
			PoolID: pool.ID,
		}
		if err := uow.ParticipantRepository().Create(ctx, participant); err != nil {
			return nil, fmt.Errorf("failed to add creator as participant: %w", err)
		}
	}

	uow.EventBus().Publish(events.PoolCreatedEvent{
		PoolID:  pool.ID,
		Title:   pool.Title,
		Code:    pool.Code,
		OwnerID: pool.OwnerID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"poolID":    pool.ID,
		"code":      pool.Code,
		"anonymous": creatorID == nil,
	}).Info("Pool created")

	return pool, nil
}

// CountPools returns the total number of pools
func (s *poolService) CountPools(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	count, err := uow.PoolRepository().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pools: %w", err)
	}
	return count, nil
}

// ListPoolsForUser returns summaries of the pools the user participates in
func (s *poolService) ListPoolsForUser(ctx context.Context, userID string) ([]*models.PoolSummary, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pools, err := uow.PoolRepository().ListSummariesByParticipant(ctx, userID, models.PoolPreviewLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	if pools == nil {
		pools = []*models.PoolSummary{}
	}
	return pools, nil
}

// GetPool returns the summary of a single pool
func (s *poolService) GetPool(ctx context.Context, poolID string) (*models.PoolSummary, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pool, err := uow.PoolRepository().GetSummaryByID(ctx, poolID, models.PoolPreviewLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	if pool == nil {
		return nil, ErrPoolNotFound
	}
	return pool, nil
}
