package router

import (
	"time"

	"officepool/auth"
	"officepool/handlers"
	"officepool/middleware"
	"officepool/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the HTTP routes are built on
type Dependencies struct {
	Verifier          auth.Verifier
	UserService       service.UserService
	PoolService       service.PoolService
	MembershipService service.MembershipService
	GameService       service.GameService
	GuessService      service.GuessService
	AllowedOrigins    []string
}

// New builds the gin engine with every route registered
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Recovery(), middleware.RequestLogger())
	engine.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	requireAuth := middleware.RequireAuth(deps.Verifier, deps.UserService)
	optionalAuth := middleware.OptionalAuth(deps.Verifier, deps.UserService)

	poolHandler := handlers.NewPoolHandler(deps.PoolService, deps.MembershipService)
	gameHandler := handlers.NewGameHandler(deps.GameService, deps.GuessService)
	userHandler := handlers.NewUserHandler(deps.UserService)

	engine.GET("/health", handlers.Health)
	engine.GET("/me", requireAuth, userHandler.Me)

	pools := engine.Group("/pools")
	{
		pools.GET("/count", poolHandler.Count)
		pools.POST("", optionalAuth, poolHandler.Create)
		pools.POST("/join", requireAuth, poolHandler.Join)
		pools.GET("", requireAuth, poolHandler.List)
		pools.GET("/:id", requireAuth, poolHandler.Get)
		pools.GET("/:id/games", requireAuth, gameHandler.List)
		pools.POST("/:id/games/:gameId/guesses", requireAuth, gameHandler.SubmitGuess)
	}

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
