package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"officepool/auth"
	"officepool/models"
	"officepool/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validToken = "valid-token"

type routerMocks struct {
	verifier   *auth.MockVerifier
	users      *service.MockUserService
	pools      *service.MockPoolService
	membership *service.MockMembershipService
	games      *service.MockGameService
	guesses    *service.MockGuessService
}

func setupRouter() (*gin.Engine, *routerMocks) {
	gin.SetMode(gin.TestMode)

	m := &routerMocks{
		verifier:   new(auth.MockVerifier),
		users:      new(service.MockUserService),
		pools:      new(service.MockPoolService),
		membership: new(service.MockMembershipService),
		games:      new(service.MockGameService),
		guesses:    new(service.MockGuessService),
	}

	identity := &auth.Identity{UserID: "user-1", Name: "John Doe"}
	m.verifier.On("Verify", mock.Anything, validToken).Return(identity, nil)
	m.verifier.On("Verify", mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidToken)
	m.users.On("EnsureUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == "user-1"
	})).Return(&models.User{ID: "user-1", Name: "John Doe"}, nil)

	engine := New(Dependencies{
		Verifier:          m.verifier,
		UserService:       m.users,
		PoolService:       m.pools,
		MembershipService: m.membership,
		GameService:       m.games,
		GuessService:      m.guesses,
		AllowedOrigins:    []string{"*"},
	})
	return engine, m
}

func makeRequest(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	engine, _ := setupRouter()

	rec := makeRequest(t, engine, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRequiredAuthRoutesRejectMissingOrInvalidTokens(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/me"},
		{http.MethodPost, "/pools/join"},
		{http.MethodGet, "/pools"},
		{http.MethodGet, "/pools/pool-1"},
		{http.MethodGet, "/pools/pool-1/games"},
		{http.MethodPost, "/pools/pool-1/games/game-1/guesses"},
	}

	for _, route := range routes {
		for _, token := range []string{"", "forged"} {
			t.Run(route.method+" "+route.path+" token="+token, func(t *testing.T) {
				engine, m := setupRouter()

				rec := makeRequest(t, engine, route.method, route.path, token, map[string]any{})

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Equal(t, "Unauthorized.", decodeBody(t, rec)["message"])
				m.membership.AssertNotCalled(t, "JoinPool", mock.Anything, mock.Anything, mock.Anything)
				m.guesses.AssertNotCalled(t, "SubmitPoolGuess", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	}
}

func TestCountPools(t *testing.T) {
	engine, m := setupRouter()
	m.pools.On("CountPools", mock.Anything).Return(int64(7), nil)

	rec := makeRequest(t, engine, http.MethodGet, "/pools/count", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), decodeBody(t, rec)["count"])
}

func TestCreatePool(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		engine, m := setupRouter()
		m.pools.On("CreatePool", mock.Anything, "Office Cup", (*string)(nil)).
			Return(&models.Pool{ID: "pool-1", Code: "ABC123"}, nil)

		rec := makeRequest(t, engine, http.MethodPost, "/pools", "", map[string]string{"title": "Office Cup"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "ABC123", decodeBody(t, rec)["code"])
		m.pools.AssertExpectations(t)
	})

	t.Run("authenticated creator owns the pool", func(t *testing.T) {
		engine, m := setupRouter()
		m.pools.On("CreatePool", mock.Anything, "Office Cup", mock.MatchedBy(func(id *string) bool {
			return id != nil && *id == "user-1"
		})).Return(&models.Pool{ID: "pool-1", Code: "XYZ789"}, nil)

		rec := makeRequest(t, engine, http.MethodPost, "/pools", validToken, map[string]string{"title": "Office Cup"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		m.pools.AssertExpectations(t)
		m.users.AssertCalled(t, "EnsureUser", mock.Anything, mock.Anything)
	})

	t.Run("invalid token falls back to anonymous", func(t *testing.T) {
		engine, m := setupRouter()
		m.pools.On("CreatePool", mock.Anything, "Office Cup", (*string)(nil)).
			Return(&models.Pool{ID: "pool-1", Code: "ABC123"}, nil)

		rec := makeRequest(t, engine, http.MethodPost, "/pools", "forged", map[string]string{"title": "Office Cup"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		m.pools.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		engine, m := setupRouter()
		m.pools.On("CreatePool", mock.Anything, "", (*string)(nil)).Return(nil, service.ErrPoolTitleRequired)

		rec := makeRequest(t, engine, http.MethodPost, "/pools", "", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Pool title is required.", decodeBody(t, rec)["message"])
	})

	t.Run("code space exhausted", func(t *testing.T) {
		engine, m := setupRouter()
		m.pools.On("CreatePool", mock.Anything, "Office Cup", (*string)(nil)).Return(nil, service.ErrPoolCodeExhausted)

		rec := makeRequest(t, engine, http.MethodPost, "/pools", "", map[string]string{"title": "Office Cup"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestJoinPool(t *testing.T) {
	tests := []struct {
		name           string
		joinErr        error
		expectedStatus int
		expectedMsg    string
	}{
		{name: "joined", joinErr: nil, expectedStatus: http.StatusCreated},
		{name: "pool not found", joinErr: service.ErrPoolNotFound, expectedStatus: http.StatusBadRequest, expectedMsg: "Pool not found."},
		{name: "already joined", joinErr: service.ErrAlreadyParticipant, expectedStatus: http.StatusBadRequest, expectedMsg: "You already joined this pool."},
		{name: "empty code", joinErr: service.ErrPoolCodeRequired, expectedStatus: http.StatusBadRequest, expectedMsg: "Pool code is required."},
		{name: "store failure", joinErr: errors.New("pq: connection refused"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, m := setupRouter()
			m.membership.On("JoinPool", mock.Anything, "user-1", "BOL123").Return(tt.joinErr)

			rec := makeRequest(t, engine, http.MethodPost, "/pools/join", validToken, map[string]string{"code": "BOL123"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, decodeBody(t, rec)["message"])
				assert.NotContains(t, rec.Body.String(), "connection refused")
			} else {
				assert.Empty(t, rec.Body.String())
			}
			m.membership.AssertExpectations(t)
		})
	}
}

func TestJoinPool_MalformedBody(t *testing.T) {
	engine, m := setupRouter()

	rec := makeRequest(t, engine, http.MethodPost, "/pools/join", validToken, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.membership.AssertNotCalled(t, "JoinPool", mock.Anything, mock.Anything, mock.Anything)
}

func TestListPools(t *testing.T) {
	engine, m := setupRouter()

	avatar := "https://github.com/mateusasf.png"
	m.pools.On("ListPoolsForUser", mock.Anything, "user-1").Return([]*models.PoolSummary{
		{
			Pool:             models.Pool{ID: "pool-1", Title: "Example Pool", Code: "BOL123"},
			Owner:            &models.PoolOwner{ID: "user-1", Name: "John Doe"},
			ParticipantCount: 1,
			Participants: []models.ParticipantPreview{
				{ID: "participant-1", User: models.ParticipantPreviewUser{AvatarURL: &avatar}},
			},
		},
	}, nil)

	rec := makeRequest(t, engine, http.MethodGet, "/pools", validToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	pools := decodeBody(t, rec)["pools"].([]any)
	require.Len(t, pools, 1)

	pool := pools[0].(map[string]any)
	assert.Equal(t, "BOL123", pool["code"])
	assert.Equal(t, float64(1), pool["participantCount"])
	assert.Equal(t, "John Doe", pool["owner"].(map[string]any)["name"])
	preview := pool["participants"].([]any)[0].(map[string]any)
	assert.Equal(t, avatar, preview["user"].(map[string]any)["avatarUrl"])
}

func TestGetPool_NotFound(t *testing.T) {
	engine, m := setupRouter()
	m.pools.On("GetPool", mock.Anything, "missing").Return(nil, service.ErrPoolNotFound)

	rec := makeRequest(t, engine, http.MethodGet, "/pools/missing", validToken, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Pool not found.", decodeBody(t, rec)["message"])
}

func TestListGames(t *testing.T) {
	engine, m := setupRouter()
	m.games.On("ListGamesForPool", mock.Anything, "pool-1", "user-1").Return([]*models.GameWithGuess{
		{Game: models.Game{ID: "game-1", FirstTeamCountryCode: "DE", SecondTeamCountryCode: "BR"}},
	}, nil)

	rec := makeRequest(t, engine, http.MethodGet, "/pools/pool-1/games", validToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	games := decodeBody(t, rec)["games"].([]any)
	require.Len(t, games, 1)
	game := games[0].(map[string]any)
	assert.Equal(t, "DE", game["firstTeamCountryCode"])
	assert.Nil(t, game["guess"])
}

func TestSubmitGuess(t *testing.T) {
	matchScore := func(expected int) any {
		return mock.MatchedBy(func(v *int) bool { return v != nil && *v == expected })
	}

	t.Run("created", func(t *testing.T) {
		engine, m := setupRouter()
		m.guesses.On("SubmitPoolGuess", mock.Anything, "user-1", "pool-1", "game-1", matchScore(4), matchScore(1)).
			Return(&service.GuessResult{Guess: &models.Guess{ID: "guess-1", FirstTeamPoints: 4, SecondTeamPoints: 1}, Created: true}, nil)

		rec := makeRequest(t, engine, http.MethodPost, "/pools/pool-1/games/game-1/guesses", validToken,
			map[string]int{"firstTeamPoints": 4, "secondTeamPoints": 1})

		assert.Equal(t, http.StatusCreated, rec.Code)
		m.guesses.AssertExpectations(t)
	})

	t.Run("overwritten", func(t *testing.T) {
		engine, m := setupRouter()
		m.guesses.On("SubmitPoolGuess", mock.Anything, "user-1", "pool-1", "game-1", matchScore(2), matchScore(2)).
			Return(&service.GuessResult{Guess: &models.Guess{ID: "guess-1"}, Created: false}, nil)

		rec := makeRequest(t, engine, http.MethodPost, "/pools/pool-1/games/game-1/guesses", validToken,
			map[string]int{"firstTeamPoints": 2, "secondTeamPoints": 2})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing score", func(t *testing.T) {
		engine, m := setupRouter()
		m.guesses.On("SubmitPoolGuess", mock.Anything, "user-1", "pool-1", "game-1", matchScore(2), (*int)(nil)).
			Return(nil, service.ErrScoresRequired)

		rec := makeRequest(t, engine, http.MethodPost, "/pools/pool-1/games/game-1/guesses", validToken,
			map[string]int{"firstTeamPoints": 2})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Both team scores are required.", decodeBody(t, rec)["message"])
	})

	t.Run("not a participant", func(t *testing.T) {
		engine, m := setupRouter()
		m.guesses.On("SubmitPoolGuess", mock.Anything, "user-1", "pool-1", "game-1", mock.Anything, mock.Anything).
			Return(nil, service.ErrNotParticipant)

		rec := makeRequest(t, engine, http.MethodPost, "/pools/pool-1/games/game-1/guesses", validToken,
			map[string]int{"firstTeamPoints": 1, "secondTeamPoints": 0})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "You're not allowed to create a guess inside this pool.", decodeBody(t, rec)["message"])
	})
}

func TestMe(t *testing.T) {
	engine, m := setupRouter()
	m.users.On("GetUser", mock.Anything, "user-1").Return(&models.User{ID: "user-1", Name: "John Doe"}, nil)

	rec := makeRequest(t, engine, http.MethodGet, "/me", validToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, "John Doe", user["name"])
}

func TestUserSyncFailureIsInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	verifier := new(auth.MockVerifier)
	users := new(service.MockUserService)
	verifier.On("Verify", mock.Anything, validToken).Return(&auth.Identity{UserID: "user-1"}, nil)
	users.On("EnsureUser", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	engine := New(Dependencies{
		Verifier:    verifier,
		UserService: users,
		PoolService: new(service.MockPoolService),
	})

	rec := makeRequest(t, engine, http.MethodGet, "/pools", validToken, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
