package models

// SentimentCounts holds raw post counts per category. After reconciliation
// the three values always sum to the batch size.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func (c SentimentCounts) Total() int {
	return c.Positive + c.Neutral + c.Negative
}

func (c SentimentCounts) Add(other SentimentCounts) SentimentCounts {
	return SentimentCounts{
		Positive: c.Positive + other.Positive,
		Neutral:  c.Neutral + other.Neutral,
		Negative: c.Negative + other.Negative,
	}
}

// SentimentPercentages always sums to exactly 100, or to 0 when there was
// no data to aggregate.
type SentimentPercentages struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func (p SentimentPercentages) Total() int {
	return p.Positive + p.Neutral + p.Negative
}

// TimePeriod is one bucket of the sentiment time series. Period is either a
// calendar label (2025-06-01, 2025-06-01 14:00, 2025-W23) or an ordinal
// "Period N" label when the bucket was constructed artificially.
type TimePeriod struct {
	Period    string               `json:"period"`
	Count     int                  `json:"count"`
	Sentiment SentimentPercentages `json:"sentiment"`
}

// AggregateResult is the final output of the sentiment pipeline.
type AggregateResult struct {
	Overall  SentimentPercentages `json:"overall"`
	OverTime []TimePeriod         `json:"overTime"`
}
