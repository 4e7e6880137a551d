package summary

import (
	"regexp"
	"sort"
	"strings"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

const minKeywordLength = 4

var (
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	nonWordPattern = regexp.MustCompile(`[^\w\s]`)
	digitPattern   = regexp.MustCompile(`\d+`)
)

var stopWords = map[string]struct{}{
	"https": {}, "http": {}, "www": {}, "com": {}, "org": {}, "net": {},
	"the": {}, "and": {}, "to": {}, "in": {}, "of": {}, "a": {}, "is": {},
	"that": {}, "for": {}, "on": {}, "it": {}, "with": {}, "as": {},
	"by": {}, "this": {}, "be": {}, "are": {}, "an": {}, "at": {},
	"have": {}, "was": {}, "not": {}, "from": {}, "they": {}, "you": {},
}

// fallbackKeywords tops the keyword list up to four entries using plain term
// frequency over the cleaned post texts. Used when the oracle returned fewer
// keywords than requested.
func fallbackKeywords(posts []models.Post, keyword string, existing []string) []string {
	keywords := append([]string(nil), existing...)

	frequencies := map[string]int{}
	for _, post := range posts {
		for _, word := range strings.Fields(cleanText(strings.ToLower(post.Text))) {
			if _, stop := stopWords[word]; stop {
				continue
			}
			frequencies[word]++
		}
	}

	type wordFreq struct {
		word  string
		count int
	}
	ranked := make([]wordFreq, 0, len(frequencies))
	for word, count := range frequencies {
		ranked = append(ranked, wordFreq{word, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	lowerKeyword := strings.ToLower(keyword)
	for _, wf := range ranked {
		if len(keywords) >= maxKeywords {
			break
		}
		if len(wf.word) < minKeywordLength {
			continue
		}
		if strings.Contains(wf.word, lowerKeyword) || wf.word == lowerKeyword {
			continue
		}
		if containsWord(keywords, wf.word) {
			continue
		}
		keywords = append(keywords, wf.word)
	}
	return keywords
}

func cleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = nonWordPattern.ReplaceAllString(text, "")
	return digitPattern.ReplaceAllString(text, "")
}

func containsWord(words []string, word string) bool {
	for _, w := range words {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}
