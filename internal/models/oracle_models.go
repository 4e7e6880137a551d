package models

// BatchSentimentResponse is the JSON shape the classifier is instructed to
// return for one batch. Real responses frequently deviate from it, which is
// why the parser treats this as a best case rather than a guarantee.
type BatchSentimentResponse struct {
	Summary    SentimentCounts       `json:"summary"`
	Individual []IndividualSentiment `json:"individual"`
}

type IndividualSentiment struct {
	PostID    string `json:"post_id"`
	Sentiment string `json:"sentiment"`
}
