package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keshon/aisling/internal/ai"
	"github.com/keshon/aisling/internal/chat"
	"github.com/keshon/aisling/internal/command"
	"github.com/keshon/aisling/internal/config"
	"github.com/keshon/aisling/internal/discord"
	"github.com/keshon/aisling/internal/history"
	"github.com/keshon/aisling/internal/logger"
	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/internal/persona"
	"github.com/keshon/aisling/internal/sentiment"
	"github.com/keshon/aisling/internal/storage"
	"github.com/keshon/aisling/internal/transcript"
	"github.com/keshon/aisling/internal/trigger"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	dotenv := config.LoadDotEnv()

	cfg, err := config.New()
	if err != nil {
		l := logger.New(logger.Config{Pretty: true})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, File: cfg.LogFile})
	if !dotenv {
		log.Debug().Msg("no .env file loaded, using process environment")
	}
	log.Info().Str("model", cfg.AIModel).Str("storage", cfg.StorageDriver).Msg("starting Aisling")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p, err := persona.Load(cfg.PersonaPromptPath, cfg.TriggerWords)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load persona")
	}

	store, err := storage.Open(storage.Config{
		Driver: cfg.StorageDriver,
		Path:   cfg.StoragePath,
		DSN:    cfg.StorageDSN,
		Defaults: storage.Probabilities{
			Reply:    cfg.DefaultReplyProbability,
			Reaction: cfg.DefaultReactionProbability,
		},
	}, logger.Component(log, "storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open probability store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close probability store")
		}
	}()

	m := metrics.New(prometheus.DefaultRegisterer)
	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, prometheus.DefaultGatherer, logger.Component(log, "metrics"))
		go func() {
			if err := srv.Start(); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord session")
	}
	platform := discord.NewPlatform(session)

	provider := ai.NewOpenAIProvider(ai.OpenAIConfig{
		BaseURL:     cfg.AIBaseURL,
		APIKey:      cfg.AIAPIKey,
		Model:       cfg.AIModel,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
		MaxAttempts: cfg.AIMaxAttempts,
	}, logger.Component(log, "ai"))

	hist := history.New(cfg.HistoryMaxLength)

	router, err := command.NewRouter(command.Deps{
		Prefix:  cfg.CommandPrefix,
		Store:   store,
		Sender:  platform,
		Metrics: m,
		Log:     logger.Component(log, "command"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register commands")
	}

	dispatcher := chat.NewDispatcher(chat.DispatcherDeps{
		Commands: router,
		Store:    store,
		History:  hist,
		Trigger:  trigger.New(p.TriggerWords, nil),
		Responder: chat.NewResponder(chat.ResponderConfig{
			SystemPrompt: p.Prompt,
			Timeout:      cfg.CompletionTimeout,
		}, provider, hist, transcript.New(cfg.TranscriptDir), platform, m),
		Reactor: chat.NewReactor(sentiment.NewVader(), platform, cfg.SentimentWorkers, m),
		Metrics: m,
		Log:     logger.Component(log, "chat"),
	})

	bot := discord.NewBot(session, dispatcher, hist, discord.Options{
		HistoryIdleTTL:  cfg.HistoryIdleTTL,
		CleanupInterval: cfg.HistoryCleanupEvery,
		PresenceEvery:   cfg.PresenceEvery,
	}, m, logger.Component(log, "discord"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		if err := <-errCh; err != nil {
			log.Error().Err(err).Msg("discord bot stopped with error")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("discord bot failed")
		}
	}

	log.Info().Msg("Aisling exited cleanly")
}
