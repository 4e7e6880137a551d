package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

// postFetcher retrieves posts from the social network. Satisfied by
// clients.MastodonClient.
type postFetcher interface {
	GetHashtagTimeline(ctx context.Context, keyword string, maxResults int) ([]models.Post, error)
}

// Cache is an optional memoization layer over the fetcher. Satisfied by
// clients.PostCache; a nil cache disables it.
type Cache interface {
	Get(ctx context.Context, keyword string, maxResults int) ([]models.Post, bool)
	Set(ctx context.Context, keyword string, maxResults int, posts []models.Post)
}

type sentimentAnalyzer interface {
	Analyze(ctx context.Context, posts []models.Post) models.AggregateResult
}

type summarizeFunc func(ctx context.Context, posts []models.Post, keyword string) (string, []string)

type Server struct {
	echo      *echo.Echo
	address   string
	fetcher   postFetcher
	cache     Cache
	analyzer  sentimentAnalyzer
	summarize summarizeFunc
}

func NewServer(address string, fetcher postFetcher, cache Cache, analyzer sentimentAnalyzer, summarize summarizeFunc) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestTiming)

	srv := &Server{
		echo:      e,
		address:   address,
		fetcher:   fetcher,
		cache:     cache,
		analyzer:  analyzer,
		summarize: summarize,
	}
	srv.registerRoutes()
	return srv
}

// requestTiming logs every request with its duration and status.
func requestTiming(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		slog.Info("[Server] Request",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.String("remote", c.RealIP()))

		err := next(c)

		slog.Info("[Server] Response",
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", c.Response().Status),
			slog.Duration("duration", time.Since(start)))
		return err
	}
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Server] Starting server", slog.String("address", s.address))
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("[Server] Shutting down")
		return s.echo.Shutdown(shutdownCtx)
	}
}
