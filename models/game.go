package models

import "time"

// Game is a scheduled match between two national teams
type Game struct {
	ID                    string    `json:"id"`
	Date                  time.Time `json:"date"`
	FirstTeamCountryCode  string    `json:"firstTeamCountryCode"`
	SecondTeamCountryCode string    `json:"secondTeamCountryCode"`
	FirstTeamPoints       *int      `json:"firstTeamPoints"`
	SecondTeamPoints      *int      `json:"secondTeamPoints"`
}

// HasStarted reports whether kickoff is at or before now
func (g *Game) HasStarted(now time.Time) bool {
	return !now.Before(g.Date)
}

// GameWithGuess is a game with the caller's guess in a pool, if any
type GameWithGuess struct {
	Game
	Guess *Guess `json:"guess"`
}
