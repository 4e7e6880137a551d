package sentiment

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

const (
	// genuineTimestampRatio is the share of posts that must carry a real
	// timestamp before individual normalization is trusted over synthesis.
	genuineTimestampRatio = 0.7

	// syntheticTimeWindow is the span synthesized timestamps are spread
	// across, ending at the current time.
	syntheticTimeWindow = 7 * 24 * time.Hour
)

// timestampLayouts are tried in order before falling back to a general
// RFC 3339 parse (which reads a trailing Z as +00:00).
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// NormalizeTimestamps guarantees every post a usable, non-degenerate
// timestamp. When fewer than 70% of posts carry a genuine one, the real
// distribution is considered meaningless and a synthetic 7-day spread is
// built instead, interleaving sentiment categories so no category clusters
// in one time region. Otherwise each post is normalized individually.
func NormalizeTimestamps(posts []models.Post, clock clockwork.Clock) {
	if len(posts) == 0 {
		return
	}

	now := clock.Now()

	withTimestamp := 0
	for i := range posts {
		if posts[i].HasTimestamp() {
			withTimestamp++
		}
	}

	if float64(withTimestamp) < float64(len(posts))*genuineTimestampRatio {
		slog.Warn("[SentimentAnalyzer] Not enough posts with real timestamps, creating time distribution",
			slog.Int("with_timestamp", withTimestamp),
			slog.Int("total", len(posts)))
		synthesizeTimestamps(posts, now)
		return
	}

	for i := range posts {
		if !posts[i].Timestamp.IsZero() {
			continue
		}
		if posts[i].RawTimestamp == "" {
			posts[i].Timestamp = now
			continue
		}
		parsed, err := parseTimestamp(posts[i].RawTimestamp)
		if err != nil {
			slog.Warn("[SentimentAnalyzer] Failed to parse timestamp",
				slog.String("raw", posts[i].RawTimestamp),
				slog.String("error", err.Error()))
			posts[i].Timestamp = now
			continue
		}
		posts[i].Timestamp = parsed
	}
}

// synthesizeTimestamps assigns artificial timestamps spread linearly across
// the window ending at now. Posts are interleaved one per sentiment category
// in round-robin order before spreading.
func synthesizeTimestamps(posts []models.Post, now time.Time) {
	start := now.Add(-syntheticTimeWindow)

	groups := map[string][]int{}
	for i := range posts {
		sentiment := posts[i].Sentiment
		if sentiment != models.SentimentPositive && sentiment != models.SentimentNegative {
			sentiment = models.SentimentNeutral
		}
		groups[sentiment] = append(groups[sentiment], i)
	}

	order := make([]int, 0, len(posts))
	maxGroupSize := 0
	for _, group := range groups {
		if len(group) > maxGroupSize {
			maxGroupSize = len(group)
		}
	}
	for i := 0; i < maxGroupSize; i++ {
		for _, sentiment := range []string{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
			if i < len(groups[sentiment]) {
				order = append(order, groups[sentiment][i])
			}
		}
	}

	span := len(order) - 1
	if span < 1 {
		span = 1
	}
	for pos, idx := range order {
		offset := time.Duration(float64(syntheticTimeWindow) * float64(pos) / float64(span))
		posts[idx].Timestamp = start.Add(offset)
		posts[idx].SyntheticTimestamp = true
	}
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Parse(time.RFC3339, raw)
}
