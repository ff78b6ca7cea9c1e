package models

import "time"

// Guess is a participant's predicted score for a game.
// There is at most one guess per (participant, game); later submissions overwrite it.
type Guess struct {
	ID               string    `json:"id"`
	ParticipantID    string    `json:"participantId"`
	GameID           string    `json:"gameId"`
	FirstTeamPoints  int       `json:"firstTeamPoints"`
	SecondTeamPoints int       `json:"secondTeamPoints"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
