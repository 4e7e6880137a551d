package models

import "time"

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Post is a single social post moving through the pipeline. Timestamp starts
// out zero when the source only delivered RawTimestamp (or nothing at all)
// and is always populated after timestamp normalization.
type Post struct {
	Text               string    `json:"text"`
	RawTimestamp       string    `json:"raw_timestamp,omitempty"`
	Timestamp          time.Time `json:"timestamp,omitempty"`
	Sentiment          string    `json:"sentiment,omitempty"`
	SyntheticTimestamp bool      `json:"is_synthetic_timestamp,omitempty"`
}

// HasTimestamp reports whether the post arrived with any timestamp at all,
// parseable or not.
func (p Post) HasTimestamp() bool {
	return !p.Timestamp.IsZero() || p.RawTimestamp != ""
}
