// Package sentiment implements a bag-of-words sentiment scan over fixed
// positive/negative lexicons. Like the crisis detector it is pure: no
// I/O, immutable tables, safe for concurrent use.
package sentiment

import (
	"strings"

	"github.com/quietharbor/quietharbor/internal/model"
)

// labelThreshold is the score magnitude above which a message stops
// being neutral.
const labelThreshold = 0.2

// Analyzer counts lexicon hits and scores the balance.
type Analyzer struct {
	positive map[string]bool
	negative map[string]bool
}

// New creates an Analyzer from raw word lists.
func New(positive, negative []string) *Analyzer {
	return &Analyzer{
		positive: toSet(positive),
		negative: toSet(negative),
	}
}

// NewDefault creates an Analyzer with the built-in lexicons.
func NewDefault() *Analyzer {
	return New(DefaultPositive, DefaultNegative)
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = true
		}
	}
	return set
}

// Analyze scores text in [-1, 1] as (positive-negative)/(positive+negative)
// over whitespace-separated tokens, labeling positive above +0.2 and
// negative below -0.2. No lexicon hits yields a neutral 0.0.
func (a *Analyzer) Analyze(text string) model.Sentiment {
	var positive, negative int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if a.positive[word] {
			positive++
		}
		if a.negative[word] {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return model.Sentiment{Label: model.SentimentNeutral}
	}

	score := float64(positive-negative) / float64(total)
	label := model.SentimentNeutral
	switch {
	case score > labelThreshold:
		label = model.SentimentPositive
	case score < -labelThreshold:
		label = model.SentimentNegative
	}

	return model.Sentiment{
		Score:         score,
		Label:         label,
		PositiveCount: positive,
		NegativeCount: negative,
	}
}
