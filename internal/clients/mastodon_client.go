package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/oauth2"

	"github.com/umutakkman/SocialMediaMonitoring/internal/metrics"
	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

const (
	mastodonPageSize       = 40 // the timeline API works best with 40 results per request
	mastodonMaxRetries     = 3
	mastodonInitialBackoff = 1 * time.Second
	mastodonMaxBackoff     = 8 * time.Second
)

type MastodonClient struct {
	client  *http.Client
	baseURL string
}

func NewMastodonClient(baseURL, accessToken string) *MastodonClient {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	if accessToken != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		httpClient = oauth2.NewClient(
			context.WithValue(context.Background(), oauth2.HTTPClient, httpClient),
			source,
		)
	}
	return &MastodonClient{
		client:  httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// GetHashtagTimeline fetches up to maxResults recent posts containing the
// hashtag or keyword, paginating with max_id. A mid-pagination failure keeps
// whatever was already fetched.
func (m *MastodonClient) GetHashtagTimeline(ctx context.Context, keyword string, maxResults int) ([]models.Post, error) {
	tag := strings.TrimPrefix(keyword, "#")

	var posts []models.Post
	maxID := ""

	for len(posts) < maxResults {
		statuses, err := m.fetchPage(ctx, tag, maxID)
		if err != nil {
			if len(posts) > 0 {
				slog.Error("[MastodonClient] Error fetching page, continuing with what we have",
					slog.String("error", err.Error()),
					slog.Int("fetched", len(posts)))
				break
			}
			return nil, err
		}
		if len(statuses) == 0 {
			slog.Info("[MastodonClient] No more posts found", slog.Int("fetched", len(posts)))
			break
		}

		for _, status := range statuses {
			posts = append(posts, models.Post{
				Text:         stripHTML(status.Content),
				RawTimestamp: status.CreatedAt,
			})
		}
		maxID = statuses[len(statuses)-1].ID
	}

	if len(posts) > maxResults {
		posts = posts[:maxResults]
	}

	metrics.PostsFetched.Add(float64(len(posts)))
	slog.Info("[MastodonClient] Retrieved posts from Mastodon API",
		slog.String("keyword", keyword),
		slog.Int("total", len(posts)))
	return posts, nil
}

func (m *MastodonClient) fetchPage(ctx context.Context, tag, maxID string) ([]models.MastodonStatus, error) {
	endpoint := fmt.Sprintf("%s/api/v1/timelines/tag/%s", m.baseURL, url.PathEscape(tag))

	query := url.Values{}
	query.Set("limit", fmt.Sprint(mastodonPageSize))
	if maxID != "" {
		query.Set("max_id", maxID)
	}

	backoff := mastodonInitialBackoff
	var lastErr error

	for attempt := 1; attempt <= mastodonMaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}

		res, err := m.client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("[MastodonClient] Request failed",
				slog.String("error", err.Error()),
				slog.Int("attempt", attempt))
		} else {
			statuses, retry, err := m.handleResponse(res)
			if err == nil {
				return statuses, nil
			}
			lastErr = err
			if !retry {
				return nil, err
			}
			slog.Warn("[MastodonClient] Retryable response, backing off",
				slog.String("error", err.Error()),
				slog.Duration("backoff", backoff),
				slog.Int("attempt", attempt))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > mastodonMaxBackoff {
			backoff = mastodonMaxBackoff
		}
	}
	return nil, lastErr
}

func (m *MastodonClient) handleResponse(res *http.Response) ([]models.MastodonStatus, bool, error) {
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, false, err
		}
		var statuses []models.MastodonStatus
		if err := json.Unmarshal(body, &statuses); err != nil {
			return nil, false, fmt.Errorf("[MastodonClient] failed to parse timeline response: %w", err)
		}
		return statuses, false, nil
	case res.StatusCode == http.StatusUnauthorized:
		return nil, false, errors.New("[MastodonClient] invalid access token, check credentials")
	case res.StatusCode == http.StatusNotFound:
		return nil, false, errors.New("[MastodonClient] timeline not found, check the base URL")
	case res.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, res.Body)
		return nil, true, errors.New("[MastodonClient] rate limit exceeded")
	case res.StatusCode >= 500:
		io.Copy(io.Discard, res.Body)
		return nil, true, fmt.Errorf("[MastodonClient] server error: %d", res.StatusCode)
	default:
		return nil, false, fmt.Errorf("[MastodonClient] unexpected status code: %d", res.StatusCode)
	}
}

// stripHTML flattens toot HTML into plain text, separating block elements
// with spaces.
func stripHTML(content string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(content))
	var parts []string
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		if tokenType == html.TextToken {
			if text := strings.TrimSpace(tokenizer.Token().Data); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}
