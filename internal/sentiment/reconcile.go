package sentiment

import (
	"log/slog"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

// crossCheckThreshold is the per-category divergence, in percentage points,
// beyond which the time-weighted aggregate replaces the direct one.
const crossCheckThreshold = 10

// ReconcileCounts forces a batch's reported counts to sum to the true batch
// size. Positive and negative are rescaled proportionally (round half away
// from zero) and neutral absorbs the remainder exactly. A zero reported sum
// assigns the whole batch to neutral.
func ReconcileCounts(counts models.SentimentCounts, batchSize int) models.SentimentCounts {
	reported := counts.Total()
	if reported == batchSize {
		return counts
	}

	slog.Warn("[SentimentAnalyzer] Sentiment count mismatch",
		slog.Int("reported", reported),
		slog.Int("expected", batchSize))

	if reported == 0 {
		return models.SentimentCounts{Neutral: batchSize}
	}

	scale := float64(batchSize) / float64(reported)
	positive := roundHalf(float64(counts.Positive) * scale)
	negative := roundHalf(float64(counts.Negative) * scale)
	return models.SentimentCounts{
		Positive: positive,
		Negative: negative,
		Neutral:  batchSize - positive - negative,
	}
}

// CrossCheck compares the directly aggregated distribution against the
// time-weighted one derived from the bucketed series. When any category
// diverges by more than the threshold, the time-weighted figure becomes the
// canonical overall result.
func CrossCheck(direct models.SentimentPercentages, overTime []models.TimePeriod) models.SentimentPercentages {
	totalCount := 0
	for _, period := range overTime {
		totalCount += period.Count
	}
	if totalCount == 0 {
		return direct
	}

	var positive, neutral, negative float64
	for _, period := range overTime {
		weight := float64(period.Count) / float64(totalCount)
		positive += float64(period.Sentiment.Positive) * weight
		neutral += float64(period.Sentiment.Neutral) * weight
		negative += float64(period.Sentiment.Negative) * weight
	}

	weighted := adjustToHundred(models.SentimentPercentages{
		Positive: roundHalf(positive),
		Neutral:  roundHalf(neutral),
		Negative: roundHalf(negative),
	})

	if absDiff(weighted.Positive, direct.Positive) > crossCheckThreshold ||
		absDiff(weighted.Neutral, direct.Neutral) > crossCheckThreshold ||
		absDiff(weighted.Negative, direct.Negative) > crossCheckThreshold {
		slog.Warn("[SentimentAnalyzer] Significant discrepancy between overall and time-based sentiment",
			slog.Any("overall", direct),
			slog.Any("time_weighted", weighted))
		return weighted
	}
	return direct
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
