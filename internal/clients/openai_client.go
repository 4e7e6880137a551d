package clients

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	llmRequestTimeout = 60 * time.Second // Timeout for individual LLM API requests
	llmRetryAttempts  = 5
)

// LLMClient wraps an OpenAI-compatible chat completion endpoint. It is the
// oracle the sentiment pipeline and the summarizer talk to; they only see
// the Complete method.
type LLMClient struct {
	client *openai.Client
	model  string
}

func NewLLMClient(apiKey, baseURL, model string) *LLMClient {
	if apiKey == "" {
		slog.Error("[LLMClient] Missing API key in environment variables")
		panic("[LLMClient] Missing API key in environment variables")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{Timeout: llmRequestTimeout}

	slog.Info("[LLMClient] LLM client initialized",
		slog.String("model", model),
		slog.Duration("timeout", llmRequestTimeout))

	return &LLMClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Complete sends one instructions+input pair and returns the raw response
// text. Transport errors are retried here; callers never retry.
func (c *LLMClient) Complete(ctx context.Context, instructions, input string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: instructions},
		{Role: openai.ChatMessageRoleUser, Content: input},
	}

	var resp openai.ChatCompletionResponse
	var completionErr error
	for attempt := 1; attempt <= llmRetryAttempts; attempt++ {
		start := time.Now()
		resp, completionErr = c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[LLMClient] Failed to get a response, retrying...",
			slog.String("error", completionErr.Error()),
			slog.Int("attempt", attempt),
			slog.Duration("elapsed", time.Since(start)))
		if ctx.Err() != nil {
			break
		}
	}
	if completionErr != nil {
		return "", completionErr
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
