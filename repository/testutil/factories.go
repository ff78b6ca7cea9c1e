package testutil

import (
	"context"
	"testing"
	"time"

	"officepool/database"
	"officepool/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// InsertUser inserts a user row directly
func InsertUser(t *testing.T, db *database.DB, id, name string) *models.User {
	t.Helper()
	avatar := "https://github.com/" + id + ".png"
	user := &models.User{ID: id, Name: name, AvatarURL: &avatar}

	err := db.QueryRow(context.Background(),
		`INSERT INTO users (id, name, avatar_url) VALUES ($1, $2, $3) RETURNING created_at`,
		user.ID, user.Name, user.AvatarURL,
	).Scan(&user.CreatedAt)
	require.NoError(t, err)
	return user
}

// InsertPool inserts a pool row directly. A nil ownerID leaves the pool ownerless.
func InsertPool(t *testing.T, db *database.DB, title, code string, ownerID *string) *models.Pool {
	t.Helper()
	pool := &models.Pool{ID: uuid.NewString(), Title: title, Code: code, OwnerID: ownerID}

	err := db.QueryRow(context.Background(),
		`INSERT INTO pools (id, title, code, owner_id) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		pool.ID, pool.Title, pool.Code, pool.OwnerID,
	).Scan(&pool.CreatedAt)
	require.NoError(t, err)
	return pool
}

// InsertParticipant inserts a participant row directly
func InsertParticipant(t *testing.T, db *database.DB, userID, poolID string) *models.Participant {
	t.Helper()
	participant := &models.Participant{ID: uuid.NewString(), UserID: userID, PoolID: poolID}

	err := db.QueryRow(context.Background(),
		`INSERT INTO participants (id, user_id, pool_id) VALUES ($1, $2, $3) RETURNING created_at`,
		participant.ID, participant.UserID, participant.PoolID,
	).Scan(&participant.CreatedAt)
	require.NoError(t, err)
	return participant
}

// InsertGame inserts a game row directly
func InsertGame(t *testing.T, db *database.DB, date time.Time, firstTeam, secondTeam string) *models.Game {
	t.Helper()
	game := &models.Game{
		ID:                    uuid.NewString(),
		Date:                  date.UTC(),
		FirstTeamCountryCode:  firstTeam,
		SecondTeamCountryCode: secondTeam,
	}

	_, err := db.Exec(context.Background(),
		`INSERT INTO games (id, date, first_team_country_code, second_team_country_code) VALUES ($1, $2, $3, $4)`,
		game.ID, game.Date, game.FirstTeamCountryCode, game.SecondTeamCountryCode,
	)
	require.NoError(t, err)
	return game
}

// CountRows returns the number of rows in table matching the optional where clause
func CountRows(t *testing.T, db *database.DB, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var count int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&count))
	return count
}
