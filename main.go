package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	telegoBot "vxvideo-bot/bot"
	"vxvideo-bot/internal/auth"
	"vxvideo-bot/internal/config"
	"vxvideo-bot/internal/database"
	"vxvideo-bot/internal/handlers"
	"vxvideo-bot/internal/health"
	"vxvideo-bot/internal/locales"
	"vxvideo-bot/internal/stats"
	"vxvideo-bot/internal/tweets"

	sentry "github.com/getsentry/sentry-go"
	telego "github.com/mymmrac/telego"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	locales.Init(cfg.DefaultLanguage)

	err = sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		Release:          cfg.Version,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Debug:            cfg.Debug,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Flush(2 * time.Second)

	// Creating context for application lifecycle
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stats ---
	repo, err := database.OpenStatsRepository(ctx, cfg)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatalf("Failed to open stats store: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			log.Printf("Error closing stats store: %v", err)
			sentry.CaptureException(err)
		}
	}()

	counters, err := stats.NewService(ctx, repo)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatalf("Failed to load stats: %v", err)
	}

	// Stats outlive the update loop so in-flight increments reach the final flush.
	statsCtx, stopStats := context.WithCancel(context.Background())
	statsDone := make(chan struct{})
	go func() {
		defer close(statsDone)
		counters.Run(statsCtx, cfg.StatsFlushInterval)
	}()

	var wg sync.WaitGroup

	// --- Tweet pipeline ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	extractor := tweets.NewExtractor(tweets.NewLinkResolver(httpClient, cfg.Debug))
	fetcher := tweets.NewFetcher(httpClient, cfg.VxAPIEndpoint)
	pipeline := tweets.NewPipeline(extractor, fetcher, counters, cfg.Debug)

	// --- Bot Initialization ---
	var bot *telego.Bot
	if cfg.Debug {
		bot, err = telego.NewBot(cfg.BotToken, telego.WithDefaultDebugLogger())
	} else {
		bot, err = telego.NewBot(cfg.BotToken, telego.WithDefaultLogger(false, true))
	}
	if err != nil {
		sentry.CaptureException(err)
		log.Fatalf("Failed to create telego bot: %v", err)
	}

	me, err := bot.GetMe(ctx)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatalf("Failed to get bot info: %v", err)
	}
	log.Printf("Authorized as @%s (private mode: %t, stats store: %s)", me.Username, cfg.IsBotPrivate, cfg.StatsStore)

	adminChecker, err := auth.NewAdminChecker(cfg.DeveloperID)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatalf("Failed to create admin checker: %v", err)
	}

	messageHandler := handlers.NewMessageHandler(pipeline, counters, adminChecker, cfg.IsBotPrivate)

	updates, err := bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		sentry.CaptureException(err)
		log.Fatalf("Failed to start long polling: %v", err)
	}

	appBot, err := telegoBot.New(telegoBot.BotDeps{
		Bot:            bot,
		UpdatesChan:    updates,
		Handler:        messageHandler,
		OperatorChatID: adminChecker.OperatorChatID(),
		RateLimit:      cfg.RateLimit,
		Debug:          cfg.Debug,
	})
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal(err)
	}

	// --- Health endpoints ---
	if cfg.HealthAddr != "" {
		healthServer := health.NewServer(cfg.HealthAddr, health.NewHandler(counters, cfg.Version))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := healthServer.Run(ctx); err != nil {
				log.Printf("Health server error: %v", err)
				sentry.CaptureException(err)
			}
		}()
	}

	// Start the bot wrapper's processing loop in a separate goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		appBot.Start(ctx)
	}()

	// Wait for context cancellation (e.g., SIGINT, SIGTERM)
	<-ctx.Done()

	log.Println("Shutting down bot...")
	wg.Wait()
	stopStats()
	<-statsDone
	appBot.Stop()

	log.Println("Bot shutdown complete.")
}
