package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/umutakkman/SocialMediaMonitoring/config"
	"github.com/umutakkman/SocialMediaMonitoring/internal/clients"
	"github.com/umutakkman/SocialMediaMonitoring/internal/logging"
	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
	"github.com/umutakkman/SocialMediaMonitoring/internal/sentiment"
	"github.com/umutakkman/SocialMediaMonitoring/internal/server"
	"github.com/umutakkman/SocialMediaMonitoring/internal/summary"
)

func main() {
	logging.InitLogger()
	config.LoadEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sentimentLLM := clients.NewLLMClient(
		config.OpenAIAPIKeySentiment(),
		config.LLMBaseURL(),
		config.LLMModel(),
	)
	summaryLLM := clients.NewLLMClient(
		config.OpenAIAPIKey(),
		config.LLMBaseURL(),
		config.LLMModel(),
	)

	mastodon := clients.NewMastodonClient(config.MastodonBaseURL(), config.MastodonAccessToken())

	var cache *clients.PostCache
	if addr := config.ValkeyInitAddress(); addr != "" {
		var err error
		cache, err = clients.NewPostCache(addr, config.ValkeyPassword(), config.ValkeyTLS())
		if err != nil {
			slog.Warn("[Main] Post cache unavailable, continuing without it",
				slog.String("error", err.Error()))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	analyzer := sentiment.NewAnalyzer(sentimentLLM,
		sentiment.WithBatchSize(config.SentimentBatchSize()),
		sentiment.WithWorkerCount(config.SentimentWorkerCount()),
		sentiment.WithTimeInterval(config.SentimentTimeInterval()),
	)

	summarize := func(ctx context.Context, posts []models.Post, keyword string) (string, []string) {
		return summary.GenerateSummaryAndKeywords(ctx, summaryLLM, posts, keyword)
	}

	srv := server.NewServer(config.ServerAddress(), mastodon, cacheOrNil(cache), analyzer, summarize)
	if err := srv.Start(ctx); err != nil {
		slog.Error("[Main] Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// cacheOrNil keeps a typed nil *PostCache from sneaking into the server's
// interface field as a non-nil value.
func cacheOrNil(cache *clients.PostCache) server.Cache {
	if cache == nil {
		return nil
	}
	return cache
}
