package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"officepool/auth"
	"officepool/config"
	"officepool/database"
	"officepool/events"
	"officepool/infrastructure"
	"officepool/notifier"
	"officepool/observability"
	"officepool/repository"
	"officepool/router"
	"officepool/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName     = "officepool"
	shutdownTimeout = 10 * time.Second
)

// Run initializes and starts the HTTP server. It returns when ctx is cancelled
// and every component has shut down.
func Run(ctx context.Context) error {
	cfg := config.Get()
	configureLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting officepool server...")

	// Metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Failed to shut down metrics provider")
		}
	}()

	// Database
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Event bus and subscribers
	eventBus := events.NewBus()
	metrics.Register(eventBus)

	if cfg.NATSEnabled() {
		natsClient, err := connectNATS(ctx, cfg)
		if err != nil {
			return err
		}
		defer natsClient.Close()

		infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper(), serviceName).
			WithObserver(metrics).
			Register(eventBus)
	} else {
		log.Info("NATS_SERVERS not set, event forwarding disabled")
	}

	if cfg.DiscordEnabled() {
		discordNotifier, err := notifier.New(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			return fmt.Errorf("failed to initialize Discord notifier: %w", err)
		}
		discordNotifier.Register(eventBus)
		log.WithField("channelID", cfg.DiscordChannelID).Info("Discord notifications enabled")
	}

	// Services
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	guessPolicy := service.DefaultGuessPolicy()
	guessPolicy.AllowAfterKickoff = cfg.GuessAllowAfterKickoff

	deps := router.Dependencies{
		Verifier:          auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience),
		UserService:       service.NewUserService(uowFactory),
		PoolService:       service.NewPoolService(uowFactory, service.NewRandomCodeGenerator(cfg.PoolCodeLength), cfg.PoolCodeMaxAttempts),
		MembershipService: service.NewMembershipService(uowFactory),
		GameService:       service.NewGameService(uowFactory),
		GuessService:      service.NewGuessService(uowFactory, guessPolicy),
		AllowedOrigins:    cfg.CORSAllowedOrigins,
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           otelhttp.NewHandler(router.New(deps), serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}

func connectNATS(ctx context.Context, cfg *config.Config) (*infrastructure.NATSClient, error) {
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers, serviceName)
	if err := natsClient.Connect(ctx); err != nil {
		return nil, err
	}

	subjects := infrastructure.NewEventSubjectMapper().GetAllSubjects()
	if err := natsClient.EnsureStream(infrastructure.PoolEventsStream, subjects); err != nil {
		natsClient.Close()
		return nil, err
	}
	return natsClient, nil
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
