package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/umutakkman/SocialMediaMonitoring/internal/metrics"
	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

const (
	defaultMaxResults = 100
	maxResultsCap     = 500
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.AnalyzeDuration.Observe(time.Since(start).Seconds())
	}()

	var req models.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		metrics.AnalyzeRequests.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, models.APIError{Error: "Request body is empty or malformed"})
	}

	keyword, maxResults, err := validateRequest(req)
	if err != nil {
		metrics.AnalyzeRequests.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, models.APIError{Error: err.Error()})
	}

	slog.Info("[Server] Received analyze request",
		slog.String("keyword", keyword),
		slog.Int("max_results", maxResults))

	ctx := c.Request().Context()
	posts, err := s.fetchPosts(ctx, keyword, maxResults)
	if err != nil {
		metrics.AnalyzeRequests.WithLabelValues("fetch_error").Inc()
		return c.JSON(http.StatusBadGateway, models.APIError{
			Error:   "Mastodon fetch error",
			Details: err.Error(),
		})
	}
	if len(posts) == 0 {
		metrics.AnalyzeRequests.WithLabelValues("empty").Inc()
		return c.JSON(http.StatusOK, models.APIError{
			Error: fmt.Sprintf("No Mastodon posts found for '%s'.", keyword),
		})
	}

	result := s.analyzer.Analyze(ctx, posts)
	summaryText, keywords := s.summarize(ctx, posts, keyword)

	metrics.AnalyzeRequests.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, models.AnalyzeResponse{
		Summary:           summaryText,
		Sentiment:         result.Overall,
		SentimentOverTime: result.OverTime,
		RelatedKeywords:   keywords,
	})
}

func (s *Server) fetchPosts(ctx context.Context, keyword string, maxResults int) ([]models.Post, error) {
	if s.cache != nil {
		if posts, ok := s.cache.Get(ctx, keyword, maxResults); ok {
			return posts, nil
		}
	}

	posts, err := s.fetcher.GetHashtagTimeline(ctx, keyword, maxResults)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(posts) > 0 {
		s.cache.Set(ctx, keyword, maxResults, posts)
	}
	return posts, nil
}

func validateRequest(req models.AnalyzeRequest) (string, int, error) {
	keyword := strings.TrimSpace(req.Text)
	if keyword == "" {
		return "", 0, fmt.Errorf("text parameter is required and must be a non-empty string")
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}
	return keyword, maxResults, nil
}
