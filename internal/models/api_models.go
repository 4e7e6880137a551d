package models

type AnalyzeRequest struct {
	Text       string `json:"text"`
	MaxResults int    `json:"maxResults"`
}

type AnalyzeResponse struct {
	Summary           string               `json:"summary"`
	Sentiment         SentimentPercentages `json:"sentiment"`
	SentimentOverTime []TimePeriod         `json:"sentimentOverTime"`
	RelatedKeywords   []string             `json:"relatedKeywords"`
}

type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
