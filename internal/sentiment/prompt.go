package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

const (
	DefaultBatchSize = 50

	postStartDelimiter   = "===== POST START ====="
	postEndDelimiter     = "===== POST END ====="
	emptyPostPlaceholder = "(No content)"
)

// Instructions is the standing role given to the classifier alongside every
// batch prompt.
const Instructions = "You are a sentiment analysis expert who analyzes multiple posts at once. " +
	"For each batch of posts, count how many are positive, neutral, and negative. " +
	"Be objective and consider the language, tone, and context of each post. " +
	"Ensure you categorize posts across all three sentiment categories - don't omit neutral sentiments. " +
	"When uncertain about a post's sentiment, classify it as neutral rather than guessing."

// Completer is the oracle boundary: a prompt goes in, free-form text comes
// out. Nothing about the returned text is guaranteed.
type Completer interface {
	Complete(ctx context.Context, instructions, input string) (string, error)
}

// Batch is a contiguous slice of posts with a stable offset into the full
// input sequence. Offset+i is post i's global index, the correlation ID used
// across the oracle boundary.
type Batch struct {
	Posts  []models.Post
	Offset int
}

// SplitBatches cuts posts into consecutive batches of at most batchSize.
// The last batch may be smaller.
func SplitBatches(posts []models.Post, batchSize int) []Batch {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var batches []Batch
	for start := 0; start < len(posts); start += batchSize {
		end := start + batchSize
		if end > len(posts) {
			end = len(posts)
		}
		batches = append(batches, Batch{Posts: posts[start:end], Offset: start})
	}
	return batches
}

// BuildPrompt frames one batch as a single classification prompt. Every post
// is wrapped in explicit delimiters and prefixed with its POST_ID so the
// response can be correlated back even when the oracle reorders or drops
// entries. Posts with empty text get a placeholder instead of being removed,
// keeping the batch indexing stable.
func BuildPrompt(batch Batch) string {
	postTexts := make([]string, 0, len(batch.Posts))
	for i, post := range batch.Posts {
		text := post.Text
		if text == "" {
			text = emptyPostPlaceholder
		}
		postTexts = append(postTexts, fmt.Sprintf("POST_ID_%d: %s", batch.Offset+i, text))
	}

	batchText := "\n\n" + postStartDelimiter + "\n\n" +
		strings.Join(postTexts, "\n\n"+postEndDelimiter+"\n\n"+postStartDelimiter+"\n\n") +
		"\n\n" + postEndDelimiter

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze each of the %d posts separated by '===== POST START/END ====='. ",
		len(batch.Posts))
	b.WriteString("For each post, determine if it's primarily positive, neutral, or negative. " +
		"IMPORTANT: Make sure to use all three categories - don't skip neutral sentiment. " +
		"When in doubt, classify as neutral rather than forcing positive or negative. " +
		"Count the total number of posts in each category. " +
		"Return your answer in this exact JSON format:\n" +
		"{\n" +
		"  \"summary\": {\n" +
		"    \"positive\": [number of positive posts],\n" +
		"    \"neutral\": [number of neutral posts],\n" +
		"    \"negative\": [number of negative posts]\n" +
		"  },\n" +
		"  \"individual\": [\n" +
		"    {\"post_id\": \"POST_ID_0\", \"sentiment\": \"positive/neutral/negative\"},\n" +
		"    {\"post_id\": \"POST_ID_1\", \"sentiment\": \"positive/neutral/negative\"},\n" +
		"    ...\n" +
		"  ]\n" +
		"}\n\n" +
		"The sum of positive, neutral, and negative posts must equal the total number of posts.\n")
	b.WriteString(batchText)
	return b.String()
}
