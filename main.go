package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"officepool/cmd"
	"officepool/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(); err != nil {
				log.WithError(err).Fatal("Migration error")
			}
			return
		case "seed":
			if err := cmd.RunSeed(context.Background()); err != nil {
				log.WithError(err).Fatal("Seed error")
			}
			return
		case "serve":
		default:
			log.Fatalf("unknown command: %s (usage: officepool [serve|migrate|seed])", os.Args[1])
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx); err != nil {
		log.WithError(err).Fatal("Application error")
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: officepool migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}
