package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

func makePosts(texts ...string) []models.Post {
	posts := make([]models.Post, len(texts))
	for i, text := range texts {
		posts[i] = models.Post{Text: text}
	}
	return posts
}

func TestSplitBatches(t *testing.T) {
	posts := makePosts("a", "b", "c", "d", "e")

	batches := SplitBatches(posts, 2)
	require.Len(t, batches, 3)

	assert.Equal(t, 0, batches[0].Offset)
	assert.Len(t, batches[0].Posts, 2)
	assert.Equal(t, 2, batches[1].Offset)
	assert.Len(t, batches[1].Posts, 2)
	assert.Equal(t, 4, batches[2].Offset)
	assert.Len(t, batches[2].Posts, 1)
}

func TestSplitBatchesDefaultsInvalidSize(t *testing.T) {
	posts := makePosts("a", "b", "c")
	batches := SplitBatches(posts, 0)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Posts, 3)
}

func TestSplitBatchesEmpty(t *testing.T) {
	assert.Empty(t, SplitBatches(nil, 10))
}

func TestBuildPromptIncludesGlobalIndices(t *testing.T) {
	batch := Batch{Posts: makePosts("first", "second"), Offset: 50}
	prompt := BuildPrompt(batch)

	assert.Contains(t, prompt, "POST_ID_50: first")
	assert.Contains(t, prompt, "POST_ID_51: second")
	assert.Contains(t, prompt, postStartDelimiter)
	assert.Contains(t, prompt, postEndDelimiter)
	assert.Contains(t, prompt, "Analyze each of the 2 posts")
	assert.Contains(t, prompt, `"summary"`)
	assert.Contains(t, prompt, `"individual"`)
}

func TestBuildPromptReplacesEmptyText(t *testing.T) {
	batch := Batch{Posts: makePosts("visible", ""), Offset: 0}
	prompt := BuildPrompt(batch)

	assert.Contains(t, prompt, "POST_ID_1: "+emptyPostPlaceholder)
	// Placeholder substitution must not change the number of posts.
	assert.Equal(t, 2, strings.Count(prompt, postStartDelimiter))
	assert.Equal(t, 2, strings.Count(prompt, postEndDelimiter))
}
