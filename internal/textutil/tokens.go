// Package textutil holds the tokenizer shared by the local embedder and the
// summarizer.
package textutil

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Tokens lower-cases text and returns its word tokens, apostrophes kept
// inside words.
func Tokens(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// IsStopword reports whether a lower-case token carries too little meaning
// to be worth weighting.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
		"from", "has", "have", "he", "her", "his", "i", "if", "in", "is",
		"it", "its", "my", "no", "not", "of", "on", "or", "our", "she",
		"so", "that", "the", "their", "then", "there", "they", "this",
		"to", "was", "we", "were", "what", "which", "who", "will", "with",
		"you", "your",
	} {
		stopwords[w] = struct{}{}
	}
}
