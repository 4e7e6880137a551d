package sentiment

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/umutakkman/SocialMediaMonitoring/internal/metrics"
	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

var (
	positivePattern   = regexp.MustCompile(`(?i)positive[^\d]*(\d+)`)
	neutralPattern    = regexp.MustCompile(`(?i)neutral[^\d]*(\d+)`)
	negativePattern   = regexp.MustCompile(`(?i)negative[^\d]*(\d+)`)
	postIDPattern     = regexp.MustCompile(`(?i)POST_ID_(\d+)`)
	individualPattern = regexp.MustCompile(`(?i)POST_ID_(\d+)[^"]+"?sentiment"?:?\s*"?(\w+)"?`)
)

// parseTier attempts to recover structured data from a raw oracle response.
// Tiers are tried in decreasing order of confidence; the first success wins.
type parseTier struct {
	name  string
	parse func(string) (*models.BatchSentimentResponse, bool)
}

var parseTiers = []parseTier{
	{name: "strict", parse: parseStrict},
	{name: "embedded", parse: parseEmbedded},
	{name: "regex", parse: parseRegex},
}

// ParseBatchResponse turns the oracle's raw text for one batch into summary
// counts plus a global-index -> sentiment mapping. It never fails: when no
// tier recovers anything, the whole batch degrades to neutral.
func ParseBatchResponse(raw string, batch Batch) (models.SentimentCounts, map[int]string) {
	for _, tier := range parseTiers {
		parsed, ok := tier.parse(raw)
		if !ok {
			continue
		}
		metrics.ParseTierTotal.WithLabelValues(tier.name).Inc()
		if tier.name != "strict" {
			slog.Warn("[SentimentAnalyzer] Recovered batch response with fallback parser",
				slog.String("tier", tier.name),
				slog.Int("batch_offset", batch.Offset))
		}
		return parsed.Summary, individualSentiments(parsed.Individual)
	}

	metrics.ParseTierTotal.WithLabelValues("failed").Inc()
	slog.Error("[SentimentAnalyzer] Failed to extract sentiment data from batch",
		slog.Int("batch_offset", batch.Offset))

	// Full degradation: every post in the batch is neutral.
	labels := make(map[int]string, len(batch.Posts))
	for i := range batch.Posts {
		labels[batch.Offset+i] = models.SentimentNeutral
	}
	return models.SentimentCounts{Neutral: len(batch.Posts)}, labels
}

func parseStrict(raw string) (*models.BatchSentimentResponse, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var resp models.BatchSentimentResponse
	if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// parseEmbedded locates the first balanced {...} substring and strict-parses
// it. Covers JSON wrapped in prose or markdown fences.
func parseEmbedded(raw string) (*models.BatchSentimentResponse, bool) {
	candidate, ok := extractJSONObject(raw)
	if !ok {
		return nil, false
	}
	return parseStrict(candidate)
}

func extractJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// parseRegex rebuilds the response from loose text: the first digit run after
// each category word for the summary, and every (POST_ID_n, word) pair for
// the individual list. Succeeds only if at least one of the two yields data.
func parseRegex(raw string) (*models.BatchSentimentResponse, bool) {
	resp := &models.BatchSentimentResponse{}
	foundCounts := false

	if m := positivePattern.FindStringSubmatch(raw); m != nil {
		resp.Summary.Positive, _ = strconv.Atoi(m[1])
		foundCounts = true
	}
	if m := neutralPattern.FindStringSubmatch(raw); m != nil {
		resp.Summary.Neutral, _ = strconv.Atoi(m[1])
		foundCounts = true
	}
	if m := negativePattern.FindStringSubmatch(raw); m != nil {
		resp.Summary.Negative, _ = strconv.Atoi(m[1])
		foundCounts = true
	}

	for _, m := range individualPattern.FindAllStringSubmatch(raw, -1) {
		resp.Individual = append(resp.Individual, models.IndividualSentiment{
			PostID:    "POST_ID_" + m[1],
			Sentiment: normalizeSentiment(m[2]),
		})
	}

	if !foundCounts && len(resp.Individual) == 0 {
		return nil, false
	}
	return resp, true
}

func individualSentiments(individual []models.IndividualSentiment) map[int]string {
	labels := make(map[int]string, len(individual))
	for _, entry := range individual {
		m := postIDPattern.FindStringSubmatch(entry.PostID)
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		labels[index] = normalizeSentiment(entry.Sentiment)
	}
	return labels
}

// normalizeSentiment maps loose sentiment words onto the three categories.
// Anything not recognizably positive or negative is neutral.
func normalizeSentiment(word string) string {
	switch w := strings.ToLower(strings.TrimSpace(word)); {
	case strings.HasPrefix(w, "pos"):
		return models.SentimentPositive
	case strings.HasPrefix(w, "neg"):
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
