package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"officepool/database"
	"officepool/models"

	"github.com/jackc/pgx/v5"
)

// GameRepository implements the GameRepository interface
type GameRepository struct {
	q queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

func newGameRepositoryWithTx(tx queryable) *GameRepository {
	return &GameRepository{q: tx}
}

// Create inserts a game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, date, first_team_country_code, second_team_country_code, first_team_points, second_team_points)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.Exec(ctx, query,
		game.ID,
		game.Date.UTC(),
		game.FirstTeamCountryCode,
		game.SecondTeamCountryCode,
		game.FirstTeamPoints,
		game.SecondTeamPoints,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetByID retrieves a game by id
func (r *GameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	query := `
		SELECT id, date, first_team_country_code, second_team_country_code, first_team_points, second_team_points
		FROM games
		WHERE id = $1
	`

	var game models.Game
	err := r.q.QueryRow(ctx, query, id).Scan(
		&game.ID,
		&game.Date,
		&game.FirstTeamCountryCode,
		&game.SecondTeamCountryCode,
		&game.FirstTeamPoints,
		&game.SecondTeamPoints,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}
	return &game, nil
}

// ListWithParticipantGuesses returns every game ordered by kickoff with the
// participant's guess joined in
func (r *GameRepository) ListWithParticipantGuesses(ctx context.Context, participantID *string) ([]*models.GameWithGuess, error) {
	query := `
		SELECT
			g.id,
			g.date,
			g.first_team_country_code,
			g.second_team_country_code,
			g.first_team_points,
			g.second_team_points,
			gu.id,
			gu.participant_id,
			gu.first_team_points,
			gu.second_team_points,
			gu.created_at,
			gu.updated_at
		FROM games g
		LEFT JOIN guesses gu ON gu.game_id = g.id AND gu.participant_id = $1
		ORDER BY g.date, g.id
	`

	rows, err := r.q.Query(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := make([]*models.GameWithGuess, 0)
	for rows.Next() {
		var item models.GameWithGuess
		var (
			guessID          *string
			guessParticipant *string
			guessFirst       *int
			guessSecond      *int
			guessCreatedAt   *time.Time
			guessUpdatedAt   *time.Time
		)
		err := rows.Scan(
			&item.ID,
			&item.Date,
			&item.FirstTeamCountryCode,
			&item.SecondTeamCountryCode,
			&item.FirstTeamPoints,
			&item.SecondTeamPoints,
			&guessID,
			&guessParticipant,
			&guessFirst,
			&guessSecond,
			&guessCreatedAt,
			&guessUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}

		if guessID != nil {
			item.Guess = &models.Guess{
				ID:               *guessID,
				ParticipantID:    *guessParticipant,
				GameID:           item.ID,
				FirstTeamPoints:  *guessFirst,
				SecondTeamPoints: *guessSecond,
				CreatedAt:        *guessCreatedAt,
				UpdatedAt:        *guessUpdatedAt,
			}
		}
		games = append(games, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}
