package summary

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
	"github.com/umutakkman/SocialMediaMonitoring/internal/sentiment"
)

const maxKeywords = 4

const summarizerInstructions = "You are an expert at summarizing social media content with specific details " +
	"and extracting key topics. You analyze posts to identify key insights, recurring themes, " +
	"notable opinions, and specific examples. Your summaries are always detailed, informative, " +
	"and include concrete details rather than vague generalizations. You also identify the " +
	"most relevant keywords related to the topics discussed."

var (
	summaryPattern  = regexp.MustCompile(`SUMMARY:\s*([\s\S]*?)(?:\s*KEYWORDS:|$)`)
	keywordsPattern = regexp.MustCompile(`KEYWORDS:\s*([\s\S]*?)$`)
	keywordCleanup  = regexp.MustCompile(`[\[\]']`)
)

// GenerateSummaryAndKeywords produces a detailed summary of the posts plus
// up to four related keywords in a single oracle call. Failures degrade to
// an empty summary and statistically extracted keywords, never an error.
func GenerateSummaryAndKeywords(ctx context.Context, completer sentiment.Completer, posts []models.Post, keyword string) (string, []string) {
	texts := make([]string, 0, len(posts))
	for _, post := range posts {
		texts = append(texts, post.Text)
	}
	combined := strings.Join(texts, "\n\n---\n\n")

	resultText, err := completer.Complete(ctx, summarizerInstructions, buildPrompt(keyword, combined))
	if err != nil {
		slog.Error("[Summarizer] Oracle call failed, falling back to statistical keywords",
			slog.String("error", err.Error()))
		resultText = ""
	}

	summaryText := ""
	var keywords []string

	if m := summaryPattern.FindStringSubmatch(resultText); m != nil {
		summaryText = strings.TrimSpace(m[1])
		slog.Info("[Summarizer] Extracted summary",
			slog.Int("length", len(summaryText)))
	}
	if m := keywordsPattern.FindStringSubmatch(resultText); m != nil {
		cleaned := keywordCleanup.ReplaceAllString(strings.TrimSpace(m[1]), "")
		for _, k := range strings.Split(cleaned, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		slog.Info("[Summarizer] Extracted keywords", slog.Any("keywords", keywords))
	}

	if len(keywords) < maxKeywords && len(posts) > 0 {
		keywords = fallbackKeywords(posts, keyword, keywords)
	}
	return summaryText, keywords
}

func buildPrompt(keyword, combined string) string {
	return fmt.Sprintf("Create a highly detailed and specific summary of Mastodon posts about '%s' "+
		"AND extract exactly %d related keywords.\n\n", keyword, maxKeywords) +
		"YOUR SUMMARY MUST:\n" +
		"1. Include at least 5 specific details and examples from the posts\n" +
		"2. Mention specific use cases, products, or technologies if relevant\n" +
		"3. Highlight contrasting viewpoints if they exist\n" +
		"4. Include at least 5 specific insights rather than vague generalizations\n" +
		"5. Be 3-5 paragraphs long with concrete information\n" +
		"6. Be highly informative and specific (at least 250 words)\n" +
		"7. Avoid generic statements that could apply to any topic\n\n" +
		fmt.Sprintf("THE %d KEYWORDS MUST:\n", maxKeywords) +
		"1. Be substantive words that capture key themes or concepts\n" +
		"2. NOT include common words, URLs, or parts of URLs\n" +
		"3. Be derived from significant topics mentioned in the posts\n" +
		"4. NOT include the original search term itself\n\n" +
		"FORMAT YOUR RESPONSE EXACTLY AS FOLLOWS:\n" +
		"SUMMARY: [Your detailed summary here]\n\n" +
		"KEYWORDS: [keyword1, keyword2, keyword3, keyword4]\n\n" +
		"POSTS:\n" + combined
}
