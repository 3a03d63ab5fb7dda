package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anoteapp/anote/internal/config"
	"github.com/anoteapp/anote/internal/db"
	"github.com/anoteapp/anote/internal/notes"
	"github.com/anoteapp/anote/internal/notify"
	"github.com/anoteapp/anote/internal/scheduler"
)

func main() {
	configPath := getEnv("ANOTE_CONFIG", config.DefaultConfigPath())

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	var notifier notify.Notifier
	switch cfg.Notifier {
	case config.NotifierLog:
		notifier = notify.Logger{}
	default:
		notifier = &notify.Desktop{AppName: "anote"}
	}

	sched := scheduler.New(store, notifier, scheduler.WithTickInterval(cfg.TickInterval))
	svc := notes.NewService(store, sched)
	svc.OnReminderFired(func(n db.Note) {
		log.Printf("Reminder fired for note %d", n.ID)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Database: %s", cfg.DBPath)
	sched.Start(ctx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
