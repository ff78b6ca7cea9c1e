package cmd

import (
	"context"
	"fmt"
	"time"

	"officepool/config"
	"officepool/database"
	"officepool/events"
	"officepool/models"
	"officepool/repository"
	"officepool/service"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SeedPoolCode is the join code of the example pool
const SeedPoolCode = "BOL123"

// seedID derives a stable id so repeated seeding targets the same rows
func seedID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("officepool/seed/"+name)).String()
}

// RunSeed connects to the database and loads the example data
func RunSeed(ctx context.Context) error {
	cfg := config.Get()
	configureLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return Seed(ctx, repository.NewUnitOfWorkFactory(db, events.NewBus()))
}

// Seed inserts one user owning an example pool with two games and a guess.
// It does nothing when the example pool already exists.
func Seed(ctx context.Context, uowFactory service.UnitOfWorkFactory) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.PoolRepository().GetByCodeForUpdate(ctx, SeedPoolCode)
	if err != nil {
		return err
	}
	if existing != nil {
		log.WithField("code", SeedPoolCode).Info("Seed data already present")
		return nil
	}

	email := "appdomat@gmail.com"
	avatarURL := "https://github.com/mateusasf.png"
	user, err := uow.UserRepository().CreateIfNotExists(ctx, &models.User{
		ID:        seedID("user"),
		Name:      "John Doe",
		Email:     &email,
		AvatarURL: &avatarURL,
	})
	if err != nil {
		return err
	}

	pool := &models.Pool{
		ID:      seedID("pool"),
		Title:   "Example Pool",
		Code:    SeedPoolCode,
		OwnerID: &user.ID,
	}
	if err := uow.PoolRepository().Create(ctx, pool); err != nil {
		return fmt.Errorf("failed to create seed pool: %w", err)
	}

	participant := &models.Participant{
		ID:     seedID("participant"),
		UserID: user.ID,
		PoolID: pool.ID,
	}
	if err := uow.ParticipantRepository().Create(ctx, participant); err != nil {
		return fmt.Errorf("failed to create seed participant: %w", err)
	}

	games := []*models.Game{
		{
			ID:                    seedID("game-1"),
			Date:                  time.Date(2022, 11, 10, 22, 0, 42, 287000000, time.UTC),
			FirstTeamCountryCode:  "DE",
			SecondTeamCountryCode: "BR",
		},
		{
			ID:                    seedID("game-2"),
			Date:                  time.Date(2022, 12, 10, 22, 0, 42, 287000000, time.UTC),
			FirstTeamCountryCode:  "FR",
			SecondTeamCountryCode: "US",
		},
	}
	for _, game := range games {
		if err := uow.GameRepository().Create(ctx, game); err != nil {
			return fmt.Errorf("failed to create seed game: %w", err)
		}
	}

	if _, err := uow.GuessRepository().Upsert(ctx, &models.Guess{
		ID:               seedID("guess"),
		ParticipantID:    participant.ID,
		GameID:           games[1].ID,
		FirstTeamPoints:  4,
		SecondTeamPoints: 1,
	}); err != nil {
		return fmt.Errorf("failed to create seed guess: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	log.WithFields(log.Fields{
		"poolID": pool.ID,
		"code":   pool.Code,
		"games":  len(games),
	}).Info("Seed data inserted")
	return nil
}
