package handlers

import (
	"net/http"

	"officepool/middleware"
	"officepool/service"

	"github.com/gin-gonic/gin"
)

// GameHandler serves the games of a pool and guess submission
type GameHandler struct {
	games   service.GameService
	guesses service.GuessService
}

// NewGameHandler creates a new game handler
func NewGameHandler(games service.GameService, guesses service.GuessService) *GameHandler {
	return &GameHandler{
		games:   games,
		guesses: guesses,
	}
}

type submitGuessRequest struct {
	FirstTeamPoints  *int `json:"firstTeamPoints"`
	SecondTeamPoints *int `json:"secondTeamPoints"`
}

// List handles GET /pools/:id/games
func (h *GameHandler) List(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
		return
	}

	games, err := h.games.ListGamesForPool(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// SubmitGuess handles POST /pools/:id/games/:gameId/guesses.
// Responds 201 when a guess is created and 200 when one is overwritten.
func (h *GameHandler) SubmitGuess(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
		return
	}

	var req submitGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, errInvalidBody)
		return
	}

	result, err := h.guesses.SubmitPoolGuess(
		c.Request.Context(),
		identity.UserID,
		c.Param("id"),
		c.Param("gameId"),
		req.FirstTeamPoints,
		req.SecondTeamPoints,
	)
	if err != nil {
		RespondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"guess": result.Guess})
}
