package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ngthanhdat/chitieubot/internal/api"
	"github.com/ngthanhdat/chitieubot/internal/bot"
	"github.com/ngthanhdat/chitieubot/internal/config"
	"github.com/ngthanhdat/chitieubot/internal/db"
	"github.com/ngthanhdat/chitieubot/internal/ledger"
	"github.com/ngthanhdat/chitieubot/internal/summary"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ledgerSvc := ledger.NewService(database)
	summarySvc := summary.NewService(database)

	// Initialize Telegram bot
	telegramBot, err := bot.New(cfg.BotToken, ledgerSvc, summarySvc)
	if err != nil {
		log.Fatalf("Failed to create telegram bot: %v", err)
	}

	// Initialize API server
	apiServer := api.New(cfg, ledgerSvc, summarySvc)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return telegramBot.Run(ctx) })
	g.Go(func() error { return apiServer.Start(ctx) })

	if err := g.Wait(); err != nil {
		log.Fatalf("Shutdown with error: %v", err)
	}
	log.Println("Shutting down...")
}
