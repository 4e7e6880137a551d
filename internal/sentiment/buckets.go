package sentiment

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

const (
	IntervalHour = "hour"
	IntervalDay  = "day"
	IntervalWeek = "week"

	// Artificial bucketing targets max(5, n/4) posts per bucket, which
	// lands the bucket count between 3 and 4.
	minArtificialBuckets = 3
	minPostsPerBucket    = 5
)

type timeGroup struct {
	key   string
	posts []models.Post
}

// GroupByTime buckets sentiment-labeled, timestamp-normalized posts into
// chronological periods and computes each period's distribution. When the
// natural grouping collapses into fewer than two periods, artificial buckets
// are constructed so the series stays plottable.
func GroupByTime(posts []models.Post, interval string) []models.TimePeriod {
	if len(posts) == 0 {
		slog.Warn("[SentimentAnalyzer] No posts available for time-based analysis")
		return nil
	}

	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var groups []timeGroup
	byKey := map[string]int{}
	for _, post := range sorted {
		key := periodKey(post, interval)
		if idx, ok := byKey[key]; ok {
			groups[idx].posts = append(groups[idx].posts, post)
			continue
		}
		byKey[key] = len(groups)
		groups = append(groups, timeGroup{key: key, posts: []models.Post{post}})
	}

	if len(groups) < 2 && len(sorted) > 1 {
		slog.Warn("[SentimentAnalyzer] Not enough time periods for analysis, creating artificial buckets",
			slog.Int("periods", len(groups)))
		groups = artificialGroups(sorted)
	}

	series := make([]models.TimePeriod, 0, len(groups))
	for _, group := range groups {
		if len(group.posts) == 0 {
			continue
		}
		series = append(series, models.TimePeriod{
			Period:    group.key,
			Count:     len(group.posts),
			Sentiment: PercentagesFromCounts(countSentiments(group.posts)),
		})
	}
	return series
}

func periodKey(post models.Post, interval string) string {
	switch interval {
	case IntervalHour:
		return post.Timestamp.Format("2006-01-02 15:00")
	case IntervalWeek:
		year, week := post.Timestamp.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return post.Timestamp.Format("2006-01-02")
	}
}

// artificialGroups splits the chronologically sorted posts into 3-4 evenly
// sized buckets. Bucket labels are evenly spaced dates when the posts span
// more than a day, otherwise ordinal "Period N" labels.
func artificialGroups(sorted []models.Post) []timeGroup {
	n := len(sorted)
	postsPerBucket := n / 4
	if postsPerBucket < minPostsPerBucket {
		postsPerBucket = minPostsPerBucket
	}
	numBuckets := n / postsPerBucket
	if numBuckets < minArtificialBuckets {
		numBuckets = minArtificialBuckets
	}

	spanDays := int(sorted[n-1].Timestamp.Sub(sorted[0].Timestamp).Hours() / 24)

	var groups []timeGroup
	byKey := map[string]int{}
	for i := 0; i < numBuckets; i++ {
		var key string
		if spanDays > 0 {
			offsetDays := 0
			if numBuckets > 1 {
				offsetDays = spanDays * i / (numBuckets - 1)
			}
			key = sorted[0].Timestamp.AddDate(0, 0, offsetDays).Format("2006-01-02")
		} else {
			key = fmt.Sprintf("Period %d", i+1)
		}

		lo, hi := i*n/numBuckets, (i+1)*n/numBuckets
		bucket := sorted[lo:hi:hi]
		if idx, ok := byKey[key]; ok {
			// Coinciding date labels merge rather than drop posts.
			groups[idx].posts = append(groups[idx].posts, bucket...)
			continue
		}
		byKey[key] = len(groups)
		groups = append(groups, timeGroup{key: key, posts: bucket})
	}

	slog.Info("[SentimentAnalyzer] Created artificial time periods",
		slog.Int("periods", len(groups)))
	return groups
}

func countSentiments(posts []models.Post) models.SentimentCounts {
	var counts models.SentimentCounts
	for _, post := range posts {
		switch post.Sentiment {
		case models.SentimentPositive:
			counts.Positive++
		case models.SentimentNegative:
			counts.Negative++
		default:
			counts.Neutral++
		}
	}
	return counts
}
