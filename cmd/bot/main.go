package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/execwatch/execwatch/internal/bot"
	"github.com/execwatch/execwatch/internal/moderation"
	"github.com/execwatch/execwatch/internal/setup"
	"github.com/execwatch/execwatch/internal/tracker"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup()

	logger := app.Logger
	repo := app.DB.Model()

	// Core moderation engines share the store through the repository
	banManager := moderation.NewBanManager(repo.Ban(), logger)
	journal := moderation.NewJournal(repo.Execution(), logger)
	whitelist := moderation.NewWhitelistGate(repo.Whitelist(), logger)
	commandEngine := moderation.NewCommandEngine(repo.Admin(), banManager, whitelist, journal, logger)

	// Create bot instance
	discordBot, err := bot.New(app.Config.Discord.Token, commandEngine, logger)
	if err != nil {
		logger.Error("Failed to create bot", zap.Error(err))
		return
	}

	// Alerts go through the bot's Discord client
	notifier := bot.NewNotifier(discordBot.Client(), app.Config.Discord.AlertChannelID, logger)
	intake := moderation.NewIntake(banManager, journal, whitelist, notifier, logger)

	// Start the bot and connect to Discord
	if err := discordBot.Start(ctx); err != nil {
		logger.Error("Failed to start bot", zap.Error(err))
		return
	}
	defer discordBot.Close(context.Background())

	// Start the tracker HTTP server
	trackerErr := make(chan error, 1)

	go func() {
		handler := tracker.NewHandler(intake, logger)
		trackerErr <- tracker.Run(ctx, app.Config.HTTP.Port, handler, logger)
	}()

	// Keepalive pinger runs only when a self URL is configured
	if app.Config.HTTP.SelfURL != "" {
		go tracker.NewKeepalive(app.Config.HTTP.SelfURL, logger).Run(ctx)
	}

	logger.Info("Application started. Waiting for interrupt signal to gracefully shutdown...")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	select {
	case <-sc:
		cancel()

		if err := <-trackerErr; err != nil {
			logger.Error("Tracker server error during shutdown", zap.Error(err))
		}
	case err := <-trackerErr:
		logger.Error("Tracker server failed", zap.Error(err))
		cancel()
	}
}
