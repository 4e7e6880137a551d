package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

const postCacheTTLSeconds = 600

// PostCache memoizes fetched post sets per keyword in valkey, so repeated
// analyze requests for the same hashtag don't re-hit the Mastodon API.
type PostCache struct {
	client valkey.Client
}

func NewPostCache(initAddress, password string, useTLS bool) (*PostCache, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{initAddress},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[PostCache] failed to create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
		client.Close()
		return nil, fmt.Errorf("[PostCache] failed to ping valkey: %w", res.Error())
	}

	slog.Info("[PostCache] Successfully connected to valkey")
	return &PostCache{client: client}, nil
}

func (pc *PostCache) Close() {
	pc.client.Close()
}

func cacheKey(keyword string, maxResults int) string {
	return fmt.Sprintf("mastodon:posts:%s:%d", keyword, maxResults)
}

func (pc *PostCache) Get(ctx context.Context, keyword string, maxResults int) ([]models.Post, bool) {
	res := pc.client.Do(ctx, pc.client.B().Get().Key(cacheKey(keyword, maxResults)).Build())
	if res.Error() != nil {
		return nil, false
	}
	raw, err := res.AsBytes()
	if err != nil {
		return nil, false
	}

	var posts []models.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		slog.Warn("[PostCache] Failed to decode cached posts",
			slog.String("keyword", keyword),
			slog.String("error", err.Error()))
		return nil, false
	}

	slog.Info("[PostCache] Cache hit",
		slog.String("keyword", keyword),
		slog.Int("posts", len(posts)))
	return posts, true
}

func (pc *PostCache) Set(ctx context.Context, keyword string, maxResults int, posts []models.Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		slog.Warn("[PostCache] Failed to encode posts for caching",
			slog.String("error", err.Error()))
		return
	}

	res := pc.client.Do(ctx, pc.client.B().Set().
		Key(cacheKey(keyword, maxResults)).
		Value(string(raw)).
		ExSeconds(postCacheTTLSeconds).
		Build())
	if res.Error() != nil {
		slog.Warn("[PostCache] Failed to cache posts",
			slog.String("keyword", keyword),
			slog.String("error", res.Error().Error()))
	}
}
