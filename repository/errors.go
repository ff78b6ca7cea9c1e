package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// Constraint names from the schema migrations
const (
	constraintPoolCode             = "pools_code_key"
	constraintParticipantUserPool  = "participants_user_id_pool_id_key"
	constraintGuessParticipantGame = "guesses_participant_id_game_id_key"
)

// isUniqueViolation reports whether err is a unique violation of the named constraint
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraint
}
