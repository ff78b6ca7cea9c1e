package service

import (
	"context"
	"fmt"

	"officepool/models"
)

type gameService struct {
	uowFactory UnitOfWorkFactory
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
	}
}

// ListGamesForPool returns all games ordered by kickoff. Callers who have not
// joined the pool see the games without guesses.
func (s *gameService) ListGamesForPool(ctx context.Context, poolID, userID string) ([]*models.GameWithGuess, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pool, err := uow.PoolRepository().GetByID(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	if pool == nil {
		return nil, ErrPoolNotFound
	}

	participant, err := uow.ParticipantRepository().GetByUserAndPool(ctx, userID, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	var participantID *string
	if participant != nil {
		participantID = &participant.ID
	}

	games, err := uow.GameRepository().ListWithParticipantGuesses(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	if games == nil {
		games = []*models.GameWithGuess{}
	}
	return games, nil
}
