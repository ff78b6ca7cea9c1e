package repository

import (
	"context"
	"errors"
	"fmt"

	"officepool/database"
	"officepool/models"
	"officepool/service"

	"github.com/jackc/pgx/v5"
)

// ParticipantRepository implements the ParticipantRepository interface
type ParticipantRepository struct {
	q queryable
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *database.DB) *ParticipantRepository {
	return &ParticipantRepository{q: db.Pool}
}

func newParticipantRepositoryWithTx(tx queryable) *ParticipantRepository {
	return &ParticipantRepository{q: tx}
}

// Create inserts a participant. The (user_id, pool_id) unique constraint is
// the final guard against concurrent double joins.
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	query := `
		INSERT INTO participants (id, user_id, pool_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query, participant.ID, participant.UserID, participant.PoolID).Scan(&participant.CreatedAt)
	if isUniqueViolation(err, constraintParticipantUserPool) {
		return service.ErrDuplicateParticipant
	}
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}

	return nil
}

// GetByUserAndPool retrieves the user's participant in a pool
func (r *ParticipantRepository) GetByUserAndPool(ctx context.Context, userID, poolID string) (*models.Participant, error) {
	query := `
		SELECT id, user_id, pool_id, created_at
		FROM participants
		WHERE user_id = $1 AND pool_id = $2
	`

	participant, err := scanParticipant(r.q.QueryRow(ctx, query, userID, poolID))
	if err != nil {
		return nil, fmt.Errorf("failed to get participant for user %s in pool %s: %w", userID, poolID, err)
	}
	return participant, nil
}

// GetByID retrieves a participant by id
func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*models.Participant, error) {
	query := `
		SELECT id, user_id, pool_id, created_at
		FROM participants
		WHERE id = $1
	`

	participant, err := scanParticipant(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get participant %s: %w", id, err)
	}
	return participant, nil
}

// CountByPool returns the number of participants in a pool
func (r *ParticipantRepository) CountByPool(ctx context.Context, poolID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM participants WHERE pool_id = $1`, poolID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants of pool %s: %w", poolID, err)
	}
	return count, nil
}

func scanParticipant(row pgx.Row) (*models.Participant, error) {
	var p models.Participant
	err := row.Scan(&p.ID, &p.UserID, &p.PoolID, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
