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

// PoolRepository implements the PoolRepository interface
type PoolRepository struct {
	q queryable
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db *database.DB) *PoolRepository {
	return &PoolRepository{q: db.Pool}
}

func newPoolRepositoryWithTx(tx queryable) *PoolRepository {
	return &PoolRepository{q: tx}
}

const poolColumns = `p.id, p.title, p.code, p.owner_id, p.created_at`

// Create inserts a new pool
func (r *PoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	query := `
		INSERT INTO pools (id, title, code, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query, pool.ID, pool.Title, pool.Code, pool.OwnerID).Scan(&pool.CreatedAt)
	if isUniqueViolation(err, constraintPoolCode) {
		return service.ErrDuplicatePoolCode
	}
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}

	return nil
}

// GetByID retrieves a pool by id
func (r *PoolRepository) GetByID(ctx context.Context, id string) (*models.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools p WHERE p.id = $1`

	pool, err := scanPool(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get pool %s: %w", id, err)
	}
	return pool, nil
}

// GetByCodeForUpdate retrieves a pool by its exact code and locks the row
func (r *PoolRepository) GetByCodeForUpdate(ctx context.Context, code string) (*models.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools p WHERE p.code = $1 FOR UPDATE`

	pool, err := scanPool(r.q.QueryRow(ctx, query, code))
	if err != nil {
		return nil, fmt.Errorf("failed to get pool by code: %w", err)
	}
	return pool, nil
}

// ClaimOwnership sets owner_id only while it is still NULL
func (r *PoolRepository) ClaimOwnership(ctx context.Context, poolID, userID string) (bool, error) {
	query := `
		UPDATE pools
		SET owner_id = $2
		WHERE id = $1 AND owner_id IS NULL
	`

	tag, err := r.q.Exec(ctx, query, poolID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to claim ownership of pool %s: %w", poolID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// Count returns the total number of pools
func (r *PoolRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM pools`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pools: %w", err)
	}
	return count, nil
}

// ListSummariesByParticipant returns the pools the user has joined, newest first
func (r *PoolRepository) ListSummariesByParticipant(ctx context.Context, userID string, previewLimit int) ([]*models.PoolSummary, error) {
	query := `
		SELECT ` + poolColumns + `,
			o.id,
			o.name,
			(SELECT COUNT(*) FROM participants c WHERE c.pool_id = p.id) AS participant_count
		FROM pools p
		JOIN participants me ON me.pool_id = p.id AND me.user_id = $1
		LEFT JOIN users o ON o.id = p.owner_id
		ORDER BY p.created_at DESC, p.id
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools for user %s: %w", userID, err)
	}
	defer rows.Close()

	summaries := make([]*models.PoolSummary, 0)
	for rows.Next() {
		summary, err := scanPoolSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pool summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pool summaries: %w", err)
	}

	if err := r.attachPreviews(ctx, summaries, previewLimit); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetSummaryByID returns the summary of one pool
func (r *PoolRepository) GetSummaryByID(ctx context.Context, poolID string, previewLimit int) (*models.PoolSummary, error) {
	query := `
		SELECT ` + poolColumns + `,
			o.id,
			o.name,
			(SELECT COUNT(*) FROM participants c WHERE c.pool_id = p.id) AS participant_count
		FROM pools p
		LEFT JOIN users o ON o.id = p.owner_id
		WHERE p.id = $1
	`

	summary, err := scanPoolSummary(r.q.QueryRow(ctx, query, poolID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pool summary %s: %w", poolID, err)
	}

	if err := r.attachPreviews(ctx, []*models.PoolSummary{summary}, previewLimit); err != nil {
		return nil, err
	}
	return summary, nil
}

// attachPreviews loads the first previewLimit participants of each pool in join order
func (r *PoolRepository) attachPreviews(ctx context.Context, summaries []*models.PoolSummary, previewLimit int) error {
	if len(summaries) == 0 {
		return nil
	}

	byID := make(map[string]*models.PoolSummary, len(summaries))
	poolIDs := make([]string, 0, len(summaries))
	for _, s := range summaries {
		s.Participants = make([]models.ParticipantPreview, 0, previewLimit)
		byID[s.ID] = s
		poolIDs = append(poolIDs, s.ID)
	}

	query := `
		SELECT pool_id, id, avatar_url
		FROM (
			SELECT pa.pool_id, pa.id, u.avatar_url,
				ROW_NUMBER() OVER (PARTITION BY pa.pool_id ORDER BY pa.created_at, pa.id) AS rn
			FROM participants pa
			JOIN users u ON u.id = pa.user_id
			WHERE pa.pool_id = ANY($1)
		) ranked
		WHERE rn <= $2
		ORDER BY pool_id, rn
	`

	rows, err := r.q.Query(ctx, query, poolIDs, previewLimit)
	if err != nil {
		return fmt.Errorf("failed to load participant previews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var poolID string
		var preview models.ParticipantPreview
		if err := rows.Scan(&poolID, &preview.ID, &preview.User.AvatarURL); err != nil {
			return fmt.Errorf("failed to scan participant preview: %w", err)
		}
		if s, ok := byID[poolID]; ok {
			s.Participants = append(s.Participants, preview)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participant previews: %w", err)
	}
	return nil
}

func scanPool(row pgx.Row) (*models.Pool, error) {
	var pool models.Pool
	err := row.Scan(&pool.ID, &pool.Title, &pool.Code, &pool.OwnerID, &pool.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func scanPoolSummary(row pgx.Row) (*models.PoolSummary, error) {
	var summary models.PoolSummary
	var ownerID, ownerName *string
	err := row.Scan(
		&summary.ID,
		&summary.Title,
		&summary.Code,
		&summary.OwnerID,
		&summary.CreatedAt,
		&ownerID,
		&ownerName,
		&summary.ParticipantCount,
	)
	if err != nil {
		return nil, err
	}

	if ownerID != nil {
		summary.Owner = &models.PoolOwner{ID: *ownerID}
		if ownerName != nil {
			summary.Owner.Name = *ownerName
		}
	}
	return &summary, nil
}
