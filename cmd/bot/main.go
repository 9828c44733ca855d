package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"api-club-bot/internal/config"
	"api-club-bot/internal/conversation"
	"api-club-bot/internal/dialogue"
	"api-club-bot/internal/storage"
	"api-club-bot/internal/telegram"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	subs, err := storage.NewFileLog(cfg.DataPath)
	if err != nil {
		log.Fatalf("failed to init submission log: %v", err)
	}

	svc := dialogue.NewService(
		dialogue.NewEngine(subs, time.Now),
		conversation.NewStore[dialogue.State](dialogue.Start{}),
		subs,
	)

	bot, err := telegram.New(cfg.TelegramBotToken, svc, telegram.Options{
		GreetingTTL:           cfg.GreetingTTL,
		MaxConcurrentHandlers: cfg.MaxConcurrentHandlers,
		RepoURL:               cfg.RepoURL,
		Version:               version,
	})
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting the bot v%s, data at %s", version, subs.Path())
	bot.Start(ctx)
}
