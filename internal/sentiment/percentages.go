package sentiment

import (
	"math"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

// roundHalf rounds half away from zero. Count rescaling, percentage
// normalization, and the cross-check all share this one rule so their
// invariants agree.
func roundHalf(x float64) int {
	return int(math.Round(x))
}

// NormalizePercentages turns a (possibly real-valued) category triple into
// integer percentages that sum to exactly 100. Rounding drift is absorbed by
// the currently largest category; ties resolve positive, then neutral, then
// negative. A non-positive total yields all zeros.
func NormalizePercentages(positive, neutral, negative, total float64) models.SentimentPercentages {
	if total <= 0 {
		return models.SentimentPercentages{}
	}

	pcts := models.SentimentPercentages{
		Positive: roundHalf(positive / total * 100),
		Neutral:  roundHalf(neutral / total * 100),
		Negative: roundHalf(negative / total * 100),
	}
	return adjustToHundred(pcts)
}

// PercentagesFromCounts is NormalizePercentages over integer counts, with
// the counts' own sum as the total.
func PercentagesFromCounts(counts models.SentimentCounts) models.SentimentPercentages {
	return NormalizePercentages(
		float64(counts.Positive),
		float64(counts.Neutral),
		float64(counts.Negative),
		float64(counts.Total()),
	)
}

func adjustToHundred(pcts models.SentimentPercentages) models.SentimentPercentages {
	drift := 100 - pcts.Total()
	if drift == 0 {
		return pcts
	}

	switch {
	case pcts.Positive >= pcts.Neutral && pcts.Positive >= pcts.Negative:
		pcts.Positive += drift
	case pcts.Neutral >= pcts.Positive && pcts.Neutral >= pcts.Negative:
		pcts.Neutral += drift
	default:
		pcts.Negative += drift
	}
	return pcts
}
