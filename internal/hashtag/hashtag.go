// Package hashtag extracts and counts hashtags in tweet content.
//
// A hashtag is a whitespace-delimited word that starts with '#' and is longer
// than one byte. Words are compared exactly: no case folding and no stripping
// of trailing punctuation, so "#Go" and "#go," are distinct tags.
package hashtag

import (
	"sort"
	"strings"

	"github.com/vedran77/chirp/internal/domain"
)

// Extract returns the hashtags in content in the order they appear,
// duplicates included.
func Extract(content string) []string {
	var tags []string
	for _, word := range strings.Fields(content) {
		if len(word) > 1 && word[0] == '#' {
			tags = append(tags, word)
		}
	}
	return tags
}

// Count tallies hashtags across contents. The result is ordered by count,
// highest first; equal counts keep the order in which the tags were first
// seen.
func Count(contents []string) []domain.Trend {
	index := make(map[string]int)
	trends := []domain.Trend{}

	for _, content := range contents {
		for _, tag := range Extract(content) {
			if i, ok := index[tag]; ok {
				trends[i].Count++
				continue
			}
			index[tag] = len(trends)
			trends = append(trends, domain.Trend{Hashtag: tag, Count: 1})
		}
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Count > trends[j].Count
	})
	return trends
}
