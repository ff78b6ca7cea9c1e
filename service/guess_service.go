package service

import (
	"context"
	"fmt"
	"time"

	"officepool/events"
	"officepool/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GuessPolicy controls when guesses are accepted
type GuessPolicy struct {
	// AllowAfterKickoff accepts guesses for games that have already started
	AllowAfterKickoff bool
	Now               func() time.Time
}

// DefaultGuessPolicy accepts guesses at any time
func DefaultGuessPolicy() GuessPolicy {
	return GuessPolicy{
		AllowAfterKickoff: true,
		Now:               time.Now,
	}
}

func (p GuessPolicy) check(game *models.Game) error {
	if p.AllowAfterKickoff {
		return nil
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	if game.HasStarted(now()) {
		return ErrGuessingClosed
	}
	return nil
}

type guessService struct {
	uowFactory UnitOfWorkFactory
	policy     GuessPolicy
}

// NewGuessService creates a new guess service
func NewGuessService(uowFactory UnitOfWorkFactory, policy GuessPolicy) GuessService {
	return &guessService{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func validateScores(firstTeamPoints, secondTeamPoints *int) (int, int, error) {
	if firstTeamPoints == nil || secondTeamPoints == nil {
		return 0, 0, ErrScoresRequired
	}
	if *firstTeamPoints < 0 || *secondTeamPoints < 0 {
		return 0, 0, ErrNegativeScore
	}
	return *firstTeamPoints, *secondTeamPoints, nil
}

// SubmitGuess creates or overwrites the participant's guess for a game
func (s *guessService) SubmitGuess(ctx context.Context, participantID, gameID string, firstTeamPoints, secondTeamPoints *int) (*GuessResult, error) {
	first, second, err := validateScores(firstTeamPoints, secondTeamPoints)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	participant, err := uow.ParticipantRepository().GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	return s.submit(ctx, uow, participant, gameID, first, second)
}

// SubmitPoolGuess submits a guess on behalf of the user's participant in the pool
func (s *guessService) SubmitPoolGuess(ctx context.Context, userID, poolID, gameID string, firstTeamPoints, secondTeamPoints *int) (*GuessResult, error) {
	first, second, err := validateScores(firstTeamPoints, secondTeamPoints)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	participant, err := uow.ParticipantRepository().GetByUserAndPool(ctx, userID, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	if participant == nil {
		return nil, ErrNotParticipant
	}

	return s.submit(ctx, uow, participant, gameID, first, second)
}

func (s *guessService) submit(ctx context.Context, uow UnitOfWork, participant *models.Participant, gameID string, first, second int) (*GuessResult, error) {
	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	if err := s.policy.check(game); err != nil {
		return nil, err
	}

	guess := &models.Guess{
		ID:               uuid.NewString(),
		ParticipantID:    participant.ID,
		GameID:           game.ID,
		FirstTeamPoints:  first,
		SecondTeamPoints: second,
	}
	created, err := uow.GuessRepository().Upsert(ctx, guess)
	if err != nil {
		return nil, fmt.Errorf("failed to save guess: %w", err)
	}

	uow.EventBus().Publish(events.GuessSubmittedEvent{
		GuessID:          guess.ID,
		ParticipantID:    guess.ParticipantID,
		GameID:           guess.GameID,
		FirstTeamPoints:  guess.FirstTeamPoints,
		SecondTeamPoints: guess.SecondTeamPoints,
		Created:          created,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"participantID": participant.ID,
		"gameID":        game.ID,
		"created":       created,
	}).Info("Guess submitted")

	return &GuessResult{Guess: guess, Created: created}, nil
}
