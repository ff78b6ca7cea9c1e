package repository

import (
	"context"
	"testing"
	"time"

	"officepool/models"
	"officepool/repository/testutil"
	"officepool/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRepository_CreateAndLookup(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewPoolRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.InsertUser(t, testDB.DB, "user-1", "John Doe")

	pool := &models.Pool{ID: uuid.NewString(), Title: "Example Pool", Code: "BOL123", OwnerID: &owner.ID}
	require.NoError(t, repo.Create(ctx, pool))
	assert.False(t, pool.CreatedAt.IsZero())

	t.Run("duplicate code", func(t *testing.T) {
		dup := &models.Pool{ID: uuid.NewString(), Title: "Other", Code: "BOL123"}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, service.ErrDuplicatePoolCode)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, pool.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Example Pool", got.Title)
		require.NotNil(t, got.OwnerID)
		assert.Equal(t, owner.ID, *got.OwnerID)
	})

	t.Run("get by id missing", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("code lookup is exact", func(t *testing.T) {
		tx, err := testDB.DB.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		txRepo := newPoolRepositoryWithTx(tx)

		got, err := txRepo.GetByCodeForUpdate(ctx, "BOL123")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, pool.ID, got.ID)

		got, err = txRepo.GetByCodeForUpdate(ctx, "bol123")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestPoolRepository_ClaimOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewPoolRepository(testDB.DB)
	ctx := context.Background()

	first := testutil.InsertUser(t, testDB.DB, "user-1", "First")
	second := testutil.InsertUser(t, testDB.DB, "user-2", "Second")
	pool := testutil.InsertPool(t, testDB.DB, "Ownerless", "OWN001", nil)

	claimed, err := repo.ClaimOwnership(ctx, pool.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.ClaimOwnership(ctx, pool.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, claimed, "an owner must never be overwritten")

	got, err := repo.GetByID(ctx, pool.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, first.ID, *got.OwnerID)
}

func TestPoolRepository_Summaries(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewPoolRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.InsertUser(t, testDB.DB, "owner", "Owner")
	pool := testutil.InsertPool(t, testDB.DB, "Big Pool", "BIG001", &owner.ID)
	testutil.InsertParticipant(t, testDB.DB, owner.ID, pool.ID)

	for i := 0; i < 5; i++ {
		user := testutil.InsertUser(t, testDB.DB, uuid.NewString(), "Member")
		testutil.InsertParticipant(t, testDB.DB, user.ID, pool.ID)
		time.Sleep(5 * time.Millisecond)
	}

	other := testutil.InsertPool(t, testDB.DB, "Anonymous Pool", "ANON01", nil)
	testutil.InsertParticipant(t, testDB.DB, owner.ID, other.ID)

	t.Run("list for participant", func(t *testing.T) {
		summaries, err := repo.ListSummariesByParticipant(ctx, owner.ID, models.PoolPreviewLimit)
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		// Newest first
		assert.Equal(t, other.ID, summaries[0].ID)
		assert.Nil(t, summaries[0].Owner)
		assert.Equal(t, 1, summaries[0].ParticipantCount)

		big := summaries[1]
		assert.Equal(t, pool.ID, big.ID)
		require.NotNil(t, big.Owner)
		assert.Equal(t, "Owner", big.Owner.Name)
		assert.Equal(t, 6, big.ParticipantCount)
		assert.Len(t, big.Participants, models.PoolPreviewLimit)
		require.NotNil(t, big.Participants[0].User.AvatarURL)
		assert.Equal(t, "https://github.com/owner.png", *big.Participants[0].User.AvatarURL)
	})

	t.Run("list for stranger", func(t *testing.T) {
		summaries, err := repo.ListSummariesByParticipant(ctx, "stranger", models.PoolPreviewLimit)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("get summary", func(t *testing.T) {
		summary, err := repo.GetSummaryByID(ctx, pool.ID, models.PoolPreviewLimit)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, 6, summary.ParticipantCount)
		assert.Len(t, summary.Participants, models.PoolPreviewLimit)
	})

	t.Run("get summary missing", func(t *testing.T) {
		summary, err := repo.GetSummaryByID(ctx, "missing", models.PoolPreviewLimit)
		require.NoError(t, err)
		assert.Nil(t, summary)
	})
}

func TestPoolRepository_OwnerCannotBeDeleted(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewPoolRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.InsertUser(t, testDB.DB, "user-1", "John Doe")
	pool := testutil.InsertPool(t, testDB.DB, "Example Pool", "BOL123", &owner.ID)

	_, err := testDB.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, owner.ID)
	require.Error(t, err)

	got, err := repo.GetByID(ctx, pool.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, owner.ID, *got.OwnerID)
}
