package config

import (
	"os"
	"strconv"
)

const (
	defaultServerAddress   = "0.0.0.0:5002"
	defaultMastodonBaseURL = "https://mastodon.social"
	defaultLLMBaseURL      = "https://api.intelligence.io.solutions/api/v1"
	defaultLLMModel        = "meta-llama/Llama-3.3-70B-Instruct"
	defaultBatchSize       = 50
	defaultWorkerCount     = 4
	defaultTimeInterval    = "day"
)

func ServerAddress() string {
	return getString("SERVER_ADDRESS", defaultServerAddress)
}

func MastodonBaseURL() string {
	return getString("MASTODON_API_BASE_URL", defaultMastodonBaseURL)
}

func MastodonAccessToken() string {
	return os.Getenv("MASTODON_ACCESS_TOKEN")
}

func LLMBaseURL() string {
	return getString("LLM_API_BASE_URL", defaultLLMBaseURL)
}

func LLMModel() string {
	return getString("LLM_MODEL", defaultLLMModel)
}

// OpenAIAPIKey is used for summary generation, OpenAIAPIKeySentiment for the
// batch sentiment classifier. The two quotas are tracked separately upstream.
func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func OpenAIAPIKeySentiment() string {
	if key := os.Getenv("OPENAI_API_KEY_SENTIMENT"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

func SentimentBatchSize() int {
	return getInt("SENTIMENT_BATCH_SIZE", defaultBatchSize)
}

func SentimentWorkerCount() int {
	return getInt("SENTIMENT_WORKER_COUNT", defaultWorkerCount)
}

func SentimentTimeInterval() string {
	return getString("SENTIMENT_TIME_INTERVAL", defaultTimeInterval)
}

func ValkeyInitAddress() string {
	return os.Getenv("VALKEY_INIT_ADDRESS")
}

func ValkeyPassword() string {
	return os.Getenv("VALKEY_PASSWORD")
}

func ValkeyTLS() bool {
	return os.Getenv("VALKEY_TLS") == "true"
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
