package normalize

import (
	"regexp"
	"strings"
)

var (
	delimPattern      = regexp.MustCompile(`(?i)[\n,;/]|\band\b|\bor\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SplitPhrases splits free text into candidate symptom phrases on newlines,
// commas, semicolons, slashes, and the standalone connectives "and"/"or".
func SplitPhrases(text string) []string {
	if text == "" {
		return nil
	}
	parts := delimPattern.Split(text, -1)
	phrases := make([]string, 0, len(parts))
	for _, p := range parts {
		p = whitespacePattern.ReplaceAllString(p, " ")
		p = strings.Trim(p, "-._ ")
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}

// NormalizePhrase lowercases a phrase and collapses internal whitespace.
// It is used to key the synonym table, so it must be idempotent.
func NormalizePhrase(p string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(strings.ToLower(p)), " ")
}
