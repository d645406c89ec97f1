// Package summarizer produces the short corpus summary shown after indexing.
package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"docqa/internal/textutil"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Frequency ranks sentences by normalized word frequency, stopwords
// filtered, and keeps the best ones in their original order.
type Frequency struct{}

// NewFrequency creates a frequency-based sentence ranker.
func NewFrequency() *Frequency { return &Frequency{} }

// Summarize returns up to maxSentences sentences of text, selected by token
// frequency. Text without sentence punctuation comes back trimmed as-is.
func (*Frequency) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	freq := map[string]float64{}
	peak := 0.0
	for _, sentence := range sentences {
		for _, token := range textutil.Tokens(sentence) {
			if textutil.IsStopword(token) {
				continue
			}
			freq[token]++
			if freq[token] > peak {
				peak = freq[token]
			}
		}
	}
	if peak > 0 {
		for token := range freq {
			freq[token] /= peak
		}
	}

	type ranked struct {
		idx   int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i, sentence := range sentences {
		tokens := textutil.Tokens(sentence)
		score := 0.0
		for _, token := range tokens {
			score += freq[token]
		}
		// Dampen the long-sentence advantage.
		if n := float64(len(tokens)); n > 0 {
			score /= math.Sqrt(n)
		}
		scores[i] = ranked{idx: i, score: score}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	keep := make([]int, maxSentences)
	for i := range keep {
		keep[i] = scores[i].idx
	}
	sort.Ints(keep)

	parts := make([]string, 0, len(keep))
	for _, idx := range keep {
		parts = append(parts, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(parts, " "), nil
}
