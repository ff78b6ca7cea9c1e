package repository

import (
	"context"
	"errors"
	"fmt"

	"officepool/database"
	"officepool/models"

	"github.com/jackc/pgx/v5"
)

// GuessRepository implements the GuessRepository interface
type GuessRepository struct {
	q queryable
}

// NewGuessRepository creates a new guess repository
func NewGuessRepository(db *database.DB) *GuessRepository {
	return &GuessRepository{q: db.Pool}
}

func newGuessRepositoryWithTx(tx queryable) *GuessRepository {
	return &GuessRepository{q: tx}
}

// Upsert writes the guess for (participant, game) in one statement.
// xmax is 0 only for a freshly inserted row version.
func (r *GuessRepository) Upsert(ctx context.Context, guess *models.Guess) (bool, error) {
	query := `
		INSERT INTO guesses (id, participant_id, game_id, first_team_points, second_team_points)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT ` + constraintGuessParticipantGame + ` DO UPDATE
		SET first_team_points = EXCLUDED.first_team_points,
			second_team_points = EXCLUDED.second_team_points,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
	`

	var created bool
	err := r.q.QueryRow(ctx, query,
		guess.ID,
		guess.ParticipantID,
		guess.GameID,
		guess.FirstTeamPoints,
		guess.SecondTeamPoints,
	).Scan(&guess.ID, &guess.CreatedAt, &guess.UpdatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert guess: %w", err)
	}

	return created, nil
}

// GetByParticipantAndGame retrieves the participant's guess for a game
func (r *GuessRepository) GetByParticipantAndGame(ctx context.Context, participantID, gameID string) (*models.Guess, error) {
	query := `
		SELECT id, participant_id, game_id, first_team_points, second_team_points, created_at, updated_at
		FROM guesses
		WHERE participant_id = $1 AND game_id = $2
	`

	var guess models.Guess
	err := r.q.QueryRow(ctx, query, participantID, gameID).Scan(
		&guess.ID,
		&guess.ParticipantID,
		&guess.GameID,
		&guess.FirstTeamPoints,
		&guess.SecondTeamPoints,
		&guess.CreatedAt,
		&guess.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guess: %w", err)
	}
	return &guess, nil
}
